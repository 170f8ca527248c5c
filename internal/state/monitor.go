package state

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// LayoutKind selects how a monitor arranges its visible clients.
type LayoutKind int

const (
	LayoutTile LayoutKind = iota
	LayoutFloat
	LayoutMonocle
)

// Symbol is the short indicator for a layout.
func (k LayoutKind) Symbol() string {
	switch k {
	case LayoutTile:
		return "[]="
	case LayoutMonocle:
		return "[M]"
	}
	return "><>"
}

// Monitor is one screen region, owning an ordered arrangement list of
// clients and a separate focus-recency stack over the same set.
type Monitor struct {
	Num int

	MFact   float64
	NMaster int

	// TagSet holds two tag selections; SelTags picks the active one,
	// the other remembers the previous view for quick toggling.
	SelTags int
	TagSet  [2]uint32

	// Lt holds two layout selectors indexed by SelLt, mirroring the
	// tag-set pair: setlayout with no argument flips between them.
	SelLt int
	Lt    [2]LayoutKind

	ShowBar bool
	TopBar  bool

	// MX/MY/MW/MH is the full screen area, WX/WY/WW/WH the window
	// placement area (screen minus bar), BY the bar's Y coordinate.
	MX, MY, MW, MH int
	WX, WY, WW, WH int
	BY             int

	BarWin xp.Window

	// Clients is the arrangement order, most recently managed first.
	// Stack is the focus order, most recently focused first. A managed
	// client is in both, an unmanaged one in neither.
	Clients []*Client
	Stack   []*Client

	Sel *Client
}

// NewMonitor returns a monitor with the given defaults and tag 1 active
// in both tag-set slots.
func NewMonitor(num int, mfact float64, nmaster int, showBar, topBar bool, lt LayoutKind) *Monitor {
	return &Monitor{
		Num:     num,
		MFact:   mfact,
		NMaster: nmaster,
		TagSet:  [2]uint32{1, 1},
		ShowBar: showBar,
		TopBar:  topBar,
		Lt:      [2]LayoutKind{lt, LayoutFloat},
	}
}

// Layout is the active layout selector.
func (m *Monitor) Layout() LayoutKind { return m.Lt[m.SelLt] }

// Attach inserts c at the head of the arrangement list and takes
// ownership of it.
func (m *Monitor) Attach(c *Client) {
	c.Mon = m
	m.Clients = append([]*Client{c}, m.Clients...)
}

// Detach removes c from the arrangement list, leaving all other
// relative order unchanged. Detaching an absent client is a bug in the
// caller and panics.
func (m *Monitor) Detach(c *Client) {
	m.Clients = remove(m.Clients, c, "arrangement list")
}

// AttachStack pushes c onto the focus stack.
func (m *Monitor) AttachStack(c *Client) {
	m.Stack = append([]*Client{c}, m.Stack...)
}

// DetachStack removes c from the focus stack. If c was the selected
// client, selection falls back to the most recently focused client
// that is still visible, or nil.
func (m *Monitor) DetachStack(c *Client) {
	m.Stack = remove(m.Stack, c, "focus stack")
	if c == m.Sel {
		m.Sel = m.FirstVisibleInStack()
	}
}

func remove(s []*Client, c *Client, what string) []*Client {
	for i, x := range s {
		if x == c {
			return append(s[:i:i], s[i+1:]...)
		}
	}
	panic("state: client not in " + what)
}

// FirstVisibleInStack returns the most recently focused visible client.
func (m *Monitor) FirstVisibleInStack() *Client {
	for _, c := range m.Stack {
		if c.IsVisible() {
			return c
		}
	}
	return nil
}

// Pop moves c to the head of the arrangement list (the zoom operation).
func (m *Monitor) Pop(c *Client) {
	m.Detach(c)
	m.Attach(c)
}

// TiledClients returns the visible, non-floating clients in arrangement
// order. These are the clients a layout assigns geometry to.
func (m *Monitor) TiledClients() []*Client {
	var out []*Client
	for _, c := range m.Clients {
		if c.IsVisible() && !c.IsFloating {
			out = append(out, c)
		}
	}
	return out
}

// VisibleClients returns all visible clients in arrangement order.
func (m *Monitor) VisibleClients() []*Client {
	var out []*Client
	for _, c := range m.Clients {
		if c.IsVisible() {
			out = append(out, c)
		}
	}
	return out
}

// View activates mask as the current tag set, keeping the previous set
// in the spare slot for toggling back. Viewing the already-active set
// is a no-op; a zero mask only flips back to the spare slot.
func (m *Monitor) View(mask uint32) bool {
	if mask == m.TagSet[m.SelTags] {
		return false
	}
	m.SelTags ^= 1
	if mask != 0 {
		m.TagSet[m.SelTags] = mask
	}
	return true
}

// ToggleView XORs mask into the active tag set. A monitor must never
// show zero tags, so a zero result leaves the state unchanged.
func (m *Monitor) ToggleView(mask uint32) bool {
	nt := m.TagSet[m.SelTags] ^ mask
	if nt == 0 {
		return false
	}
	m.TagSet[m.SelTags] = nt
	return true
}

// CycleVisible returns the client focusstack lands on: the next
// (dir > 0) or previous (dir < 0) visible client relative to the
// selection, wrapping around the arrangement order. Nil when nothing
// is selected or nothing is visible.
func (m *Monitor) CycleVisible(dir int) *Client {
	if m.Sel == nil {
		return nil
	}
	vis := m.VisibleClients()
	if len(vis) == 0 {
		return nil
	}
	i := 0
	for j, c := range vis {
		if c == m.Sel {
			i = j
			break
		}
	}
	if dir > 0 {
		i = (i + 1) % len(vis)
	} else {
		i = (i + len(vis) - 1) % len(vis)
	}
	return vis[i]
}

// SetBarPos recomputes the window area from the screen area and the
// bar visibility/position, given the bar height.
func (m *Monitor) SetBarPos(barH int) {
	m.WX, m.WY, m.WW, m.WH = m.MX, m.MY, m.MW, m.MH
	if m.ShowBar {
		m.WH -= barH
		if m.TopBar {
			m.BY = m.WY
			m.WY += barH
		} else {
			m.BY = m.WY + m.WH
		}
	} else {
		m.BY = -barH
	}
}

// Intersect is the overlap area between a rectangle and the monitor's
// window area, used to pick the monitor containing a rectangle.
func (m *Monitor) Intersect(x, y, w, h int) int {
	iw := min(x+w, m.WX+m.WW) - max(x, m.WX)
	ih := min(y+h, m.WY+m.WH) - max(y, m.WY)
	return max(0, iw) * max(0, ih)
}
