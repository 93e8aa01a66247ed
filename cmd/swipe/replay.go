// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"swipe.dev/internal/store"
	"swipe.dev/trace"
)

func newReplayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE...",
		Short: "Replay trace files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			traces := make([]trace.Trace, len(args))
			for i, path := range args {
				tr, err := trace.Load(path)
				if err != nil {
					return err
				}
				if tr.Name == "" {
					tr.Name = filepath.Base(path)
				}
				traces[i] = tr
			}
			return replay(cmd.OutOrStdout(), opts, traces)
		},
	}
}

func newTraceCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Manage the trace database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save NAME FILE",
		Short: "Store a trace file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := trace.Load(args[1])
			if err != nil {
				return err
			}
			tr.Name = args[0]
			return withStore(opts, func(st *store.Store) error {
				return st.Put(tr)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored traces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(opts, func(st *store.Store) error {
				names, err := st.Names()
				if err != nil {
					return err
				}
				for _, name := range names {
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
						return fmt.Errorf("failed to write output: %w", err)
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Print a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(st *store.Store) error {
				tr, err := st.Get(args[0])
				if err != nil {
					return err
				}
				return trace.Encode(cmd.OutOrStdout(), tr)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "replay NAME...",
		Short: "Replay stored traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var traces []trace.Trace
			err := withStore(opts, func(st *store.Store) error {
				for _, name := range args {
					tr, err := st.Get(name)
					if err != nil {
						return err
					}
					traces = append(traces, tr)
				}
				return nil
			})
			if err != nil {
				return err
			}
			return replay(cmd.OutOrStdout(), opts, traces)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME...",
		Short: "Delete stored traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(st *store.Store) error {
				for _, name := range args {
					if err := st.Delete(name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	})
	return cmd
}

// replay runs traces concurrently and prints the results in
// argument order.
func replay(out io.Writer, opts *options, traces []trace.Trace) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	results := make([]trace.Result, len(traces))
	var replays errgroup.Group
	for i := range traces {
		i := i
		if cfg != nil {
			traces[i].Config = *cfg
		}
		replays.Go(func() error {
			res, err := trace.Replay(traces[i])
			if err != nil {
				return fmt.Errorf("%s: %w", traces[i].Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := replays.Wait(); err != nil {
		return err
	}
	p := newPrinter(out, isTerminal(out))
	for i, res := range results {
		p.result(traces[i].Name, res)
	}
	return p.err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty(f.Fd())
}
