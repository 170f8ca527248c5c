// Package state holds the in-memory model of managed windows: clients,
// monitors, tag bitmasks, and the two per-monitor orderings (arrangement
// list and focus stack). Everything here is pure bookkeeping; the wm
// package owns all X side effects.
package state

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// MaxNameLen bounds a client's display name.
const MaxNameLen = 255

// Geom is a window geometry including its border width.
type Geom struct {
	X, Y, W, H int
	BW         int
}

// Hints are the WM_NORMAL_HINTS constraints a client asked for.
// Zero fields mean "unconstrained".
type Hints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64
}

// Client is one managed top-level window.
type Client struct {
	Win  xp.Window
	Name string

	Geom    Geom
	OldGeom Geom
	OldBW   int

	Hints Hints

	Tags uint32

	IsFixed      bool
	IsFloating   bool
	IsUrgent     bool
	NeverFocus   bool
	IsFullscreen bool
	// OldState remembers the floating flag from before fullscreen.
	OldState bool

	Mon *Monitor
}

// TotalW is the outer width, borders included.
func (c *Client) TotalW() int { return c.Geom.W + 2*c.Geom.BW }

// TotalH is the outer height, borders included.
func (c *Client) TotalH() int { return c.Geom.H + 2*c.Geom.BW }

// IsVisible reports whether the client is shown under its monitor's
// active tag set.
func (c *Client) IsVisible() bool {
	return c.Tags&c.Mon.TagSet[c.Mon.SelTags] != 0
}

// SetName stores a display name, truncating to MaxNameLen bytes.
func (c *Client) SetName(name string) {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	c.Name = name
}

// SetTags replaces the client's tag mask. A zero mask is silently
// rejected so a client can never become invisible by construction.
func (c *Client) SetTags(mask uint32) bool {
	if mask == 0 {
		return false
	}
	c.Tags = mask
	return true
}

// ToggleTags XORs mask into the client's tag mask, rejecting a zero
// result the same way SetTags does.
func (c *Client) ToggleTags(mask uint32) bool {
	nt := c.Tags ^ mask
	if nt == 0 {
		return false
	}
	c.Tags = nt
	return true
}

// UpdateFixed derives the fixed-size flag from the hints: a client
// whose min and max dimensions coincide can never be resized.
func (c *Client) UpdateFixed() {
	h := &c.Hints
	c.IsFixed = h.MaxW != 0 && h.MaxH != 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
}

// ApplySizeHints implements the resize policy: the proposed geometry is
// clamped onto the screen (interact) or the owning monitor's window
// area, forced to a minimum of minDim per side, and, when resizeHints
// is set or the client floats (or the whole layout floats), snapped to
// the client's base/increment/min/max/aspect constraints. It returns
// the adjusted geometry and whether it differs from the current one.
func (c *Client) ApplySizeHints(x, y, w, h int, interact bool, screenW, screenH, minDim int, resizeHints, floatingLayout bool) (int, int, int, int, bool) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	bw := c.Geom.BW
	if interact {
		if x > screenW {
			x = screenW - c.TotalW()
		}
		if y > screenH {
			y = screenH - c.TotalH()
		}
		if x+w+2*bw < 0 {
			x = 0
		}
		if y+h+2*bw < 0 {
			y = 0
		}
	} else {
		m := c.Mon
		if x >= m.WX+m.WW {
			x = m.WX + m.WW - c.TotalW()
		}
		if y >= m.WY+m.WH {
			y = m.WY + m.WH - c.TotalH()
		}
		if x+w+2*bw <= m.WX {
			x = m.WX
		}
		if y+h+2*bw <= m.WY {
			y = m.WY
		}
	}
	if h < minDim {
		h = minDim
	}
	if w < minDim {
		w = minDim
	}
	if resizeHints || c.IsFloating || floatingLayout {
		hi := &c.Hints
		baseIsMin := hi.BaseW == hi.MinW && hi.BaseH == hi.MinH
		if !baseIsMin {
			// Temporarily remove base dimensions for aspect math.
			w -= hi.BaseW
			h -= hi.BaseH
		}
		if hi.MinA > 0 && hi.MaxA > 0 {
			switch {
			case hi.MaxA < float64(w)/float64(h):
				w = int(float64(h)*hi.MaxA + 0.5)
			case hi.MinA < float64(h)/float64(w):
				h = int(float64(w)*hi.MinA + 0.5)
			}
		}
		if baseIsMin {
			w -= hi.BaseW
			h -= hi.BaseH
		}
		if hi.IncW > 0 {
			w -= w % hi.IncW
		}
		if hi.IncH > 0 {
			h -= h % hi.IncH
		}
		w += hi.BaseW
		h += hi.BaseH
		if w < hi.MinW {
			w = hi.MinW
		}
		if h < hi.MinH {
			h = hi.MinH
		}
		if hi.MaxW > 0 && w > hi.MaxW {
			w = hi.MaxW
		}
		if hi.MaxH > 0 && h > hi.MaxH {
			h = hi.MaxH
		}
	}
	changed := x != c.Geom.X || y != c.Geom.Y || w != c.Geom.W || h != c.Geom.H
	return x, y, w, h, changed
}
