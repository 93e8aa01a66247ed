// SPDX-License-Identifier: Unlicense OR MIT

// Command swipe replays recorded pointer traces against gesture and
// menu configurations, and manages a database of traces.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"swipe.dev/config"
	"swipe.dev/internal/logutil"
	"swipe.dev/internal/store"
)

var logger = logutil.GetLogger("[swipe] ")

// options are the persistent flags.
type options struct {
	db      string
	config  string
	verbose bool
	format  string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "swipe: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:           "swipe",
		Short:         "Replay and manage pointer traces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				logutil.SetOutput(os.Stderr)
			} else {
				logutil.SetOutput(io.Discard)
			}
		},
	}
	root.SetOut(out)
	flags := root.PersistentFlags()
	flags.StringVar(&opts.db, "db", config.DefaultDBPath(), "trace database path")
	flags.StringVar(&opts.config, "config", "", "configuration file replacing the configuration of traces")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(newReplayCmd(opts))
	root.AddCommand(newTraceCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [FILE]",
		Short: "Print a configuration file, or the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.config
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = config.DefaultConfigPath()
			}
			f, err := config.Load(path)
			if err != nil {
				return err
			}
			format := config.YAML
			switch opts.format {
			case "yaml":
			case "toml":
				format = config.TOML
			default:
				return fmt.Errorf("invalid --format %s", opts.format)
			}
			return config.Encode(cmd.OutOrStdout(), f, format)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "output format (yaml, toml)")
	return cmd
}

// loadConfig returns the --config file, if set.
func loadConfig(opts *options) (*config.File, error) {
	if opts.config == "" {
		return nil, nil
	}
	f, err := config.Load(opts.config)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// withStore runs f with the trace database open.
func withStore(opts *options, f func(st *store.Store) error) error {
	st, err := store.Open(opts.db)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Printf("failed to close db: %v", err)
		}
	}()
	return f(st)
}
