// SPDX-License-Identifier: Unlicense OR MIT

package menu

import (
	"golang.org/x/exp/slices"
)

// Controller tracks the menus of an application, so that opening
// one menu closes the others.
type Controller struct {
	menus []*Menu
}

// NewController returns a Controller without menus.
func NewController() *Controller {
	return new(Controller)
}

// Register adds m. Menus register themselves when created with a
// Controller.
func (c *Controller) Register(m *Menu) {
	if !slices.Contains(c.menus, m) {
		c.menus = append(c.menus, m)
	}
}

// Unregister removes m.
func (c *Controller) Unregister(m *Menu) {
	if i := slices.Index(c.menus, m); i != -1 {
		c.menus = slices.Delete(c.menus, i, i+1)
	}
}

// Menus returns the registered menus in registration order.
func (c *Controller) Menus() []*Menu {
	return slices.Clone(c.menus)
}

// Get returns the menu with the given ID. The empty ID selects the
// first enabled menu, or the first menu if none is enabled.
func (c *Controller) Get(id string) *Menu {
	if id == "" {
		for _, m := range c.menus {
			if m.enabled {
				return m
			}
		}
		if len(c.menus) > 0 {
			return c.menus[0]
		}
		return nil
	}
	for _, m := range c.menus {
		if m.cfg.ID == id {
			return m
		}
	}
	return nil
}

// GetBySide returns the first enabled menu on side, or nil.
func (c *Controller) GetBySide(side Side) *Menu {
	for _, m := range c.menus {
		if m.cfg.Side == side && m.enabled {
			return m
		}
	}
	return nil
}

// GetOpen returns the open menu, or nil.
func (c *Controller) GetOpen() *Menu {
	for _, m := range c.menus {
		if m.isOpen {
			return m
		}
	}
	return nil
}

// Open closes any other open menu and opens the menu with the
// given ID. It is ignored while any menu is in transition, or when
// an open menu refuses to close, so at most one menu is open.
// Ignored requests and unknown IDs return a closed channel.
func (c *Controller) Open(id string) <-chan struct{} {
	m := c.Get(id)
	if m == nil || c.IsAnimating() {
		return settled()
	}
	for _, o := range c.menus {
		if o == m || !o.isOpen {
			continue
		}
		o.Close()
		if o.state != Closing && o.isOpen {
			return settled()
		}
	}
	return m.Open()
}

// Close closes the menu with the given ID. The empty ID closes
// the open menu.
func (c *Controller) Close(id string) <-chan struct{} {
	var m *Menu
	if id == "" {
		m = c.GetOpen()
	} else {
		m = c.Get(id)
	}
	if m == nil {
		return settled()
	}
	return m.Close()
}

// Toggle opens the menu with the given ID if it is closed, closing
// the others, or closes it if it is open.
func (c *Controller) Toggle(id string) <-chan struct{} {
	m := c.Get(id)
	if m == nil {
		return settled()
	}
	if m.isOpen {
		return m.Close()
	}
	return c.Open(m.cfg.ID)
}

// Enable enables or disables the menu with the given ID. Enabling
// a menu disables the other menus on the same side.
func (c *Controller) Enable(id string, enable bool) *Menu {
	m := c.Get(id)
	if m == nil {
		return nil
	}
	if enable {
		for _, o := range c.menus {
			if o != m && o.cfg.Side == m.cfg.Side {
				o.Enabled(false)
			}
		}
	}
	m.Enabled(enable)
	return m
}

// IsOpen reports whether the menu with the given ID is open. The
// empty ID reports whether any menu is open.
func (c *Controller) IsOpen(id string) bool {
	if id == "" {
		return c.GetOpen() != nil
	}
	m := c.Get(id)
	return m != nil && m.isOpen
}

// IsAnimating reports whether any menu is in transition.
func (c *Controller) IsAnimating() bool {
	for _, m := range c.menus {
		if m.transitioning {
			return true
		}
	}
	return false
}
