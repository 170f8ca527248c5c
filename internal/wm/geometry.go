package wm

import (
	"github.com/BurntSushi/xgb/xinerama"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/dtwm/dtwm/internal/layout"
	"github.com/dtwm/dtwm/internal/state"
)

func layoutKind(name string) state.LayoutKind {
	switch name {
	case "float":
		return state.LayoutFloat
	case "monocle":
		return state.LayoutMonocle
	}
	return state.LayoutTile
}

func (wm *WM) newMonitor(num int) *state.Monitor {
	cfg := wm.cfg
	return state.NewMonitor(num, cfg.MFact, cfg.NMaster, cfg.ShowBar, cfg.TopBar, layoutKind(cfg.Layout))
}

// updateGeometry re-probes physical outputs and reshapes the monitor
// list to match. Clients on a removed monitor migrate to the first
// remaining one, keeping their tag masks.
func (wm *WM) updateGeometry() bool {
	geoms := wm.probeScreens()
	dirty := false

	for len(wm.mons) < len(geoms) {
		wm.mons = append(wm.mons, wm.newMonitor(len(wm.mons)))
		dirty = true
	}
	for i, g := range geoms {
		m := wm.mons[i]
		if m.MX != g.X || m.MY != g.Y || m.MW != g.W || m.MH != g.H {
			m.Num = i
			m.MX, m.MY, m.MW, m.MH = g.X, g.Y, g.W, g.H
			m.SetBarPos(wm.cfg.BarHeight)
			dirty = true
		}
	}
	for len(wm.mons) > len(geoms) {
		last := wm.mons[len(wm.mons)-1]
		first := wm.mons[0]
		for len(last.Clients) > 0 {
			c := last.Clients[0]
			last.Detach(c)
			last.DetachStack(c)
			first.Attach(c)
			first.AttachStack(c)
		}
		if last.BarWin != 0 {
			wm.check(xp.DestroyWindowChecked(wm.conn, last.BarWin))
		}
		wm.mons = wm.mons[:len(wm.mons)-1]
		dirty = true
	}

	if wm.sel == nil {
		wm.sel = wm.mons[0]
	} else {
		found := false
		for _, m := range wm.mons {
			if m == wm.sel {
				found = true
				break
			}
		}
		if !found {
			wm.sel = wm.mons[0]
		}
	}
	wm.updateBars()
	return dirty
}

type screenGeom struct {
	X, Y, W, H int
}

func (wm *WM) probeScreens() []screenGeom {
	reply, err := xinerama.QueryScreens(wm.conn).Reply()
	if err == nil && len(reply.ScreenInfo) > 0 {
		var geoms []screenGeom
		for _, si := range reply.ScreenInfo {
			g := screenGeom{int(si.XOrg), int(si.YOrg), int(si.Width), int(si.Height)}
			if !containsGeom(geoms, g) {
				geoms = append(geoms, g)
			}
		}
		return geoms
	}
	return []screenGeom{{0, 0, wm.screenW, wm.screenH}}
}

func containsGeom(geoms []screenGeom, g screenGeom) bool {
	for _, have := range geoms {
		if have == g {
			return true
		}
	}
	return false
}

// updateBars creates or repositions the per-monitor bar windows. The
// bars reserve space and receive clicks; nothing is drawn on them.
func (wm *WM) updateBars() {
	for _, m := range wm.mons {
		if m.BarWin == 0 {
			win, err := xp.NewWindowId(wm.conn)
			if err != nil {
				wm.log.Errorf("cannot allocate bar window: %v", err)
				continue
			}
			m.BarWin = win
			wm.check(xp.CreateWindowChecked(wm.conn, 0, win, wm.root,
				int16(m.WX), int16(m.BY), uint16(m.WW), uint16(wm.cfg.BarHeight), 0,
				xp.WindowClassInputOutput, xp.WindowNone,
				xp.CwOverrideRedirect|xp.CwEventMask,
				[]uint32{1, xp.EventMaskButtonPress | xp.EventMaskExposure}))
			if m.ShowBar {
				wm.check(xp.MapWindowChecked(wm.conn, win))
			}
			continue
		}
		wm.check(xp.ConfigureWindowChecked(wm.conn, m.BarWin,
			xp.ConfigWindowX|xp.ConfigWindowY|xp.ConfigWindowWidth|xp.ConfigWindowHeight,
			[]uint32{uint32(uint16(int16(m.WX))), uint32(uint16(int16(m.BY))), uint32(uint16(m.WW)), uint32(uint16(wm.cfg.BarHeight))}))
		if m.ShowBar {
			wm.check(xp.MapWindowChecked(wm.conn, m.BarWin))
		} else {
			wm.check(xp.UnmapWindowChecked(wm.conn, m.BarWin))
		}
	}
}

func (wm *WM) monAt(x, y int) *state.Monitor {
	return wm.monForRect(x, y, 1, 1)
}

// monForRect returns the monitor with the largest overlap with the
// rectangle, defaulting to the selected monitor.
func (wm *WM) monForRect(x, y, w, h int) *state.Monitor {
	best, area := wm.sel, 0
	for _, m := range wm.mons {
		if a := m.Intersect(x, y, w, h); a > area {
			best, area = m, a
		}
	}
	return best
}

func (wm *WM) monFor(win xp.Window) *state.Monitor {
	if win == wm.root {
		if p, err := xp.QueryPointer(wm.conn, wm.root).Reply(); err == nil {
			return wm.monAt(int(p.RootX), int(p.RootY))
		}
		return wm.sel
	}
	for _, m := range wm.mons {
		if m.BarWin == win {
			return m
		}
	}
	if c := wm.findClient(win); c != nil {
		return c.Mon
	}
	return wm.sel
}

// monInDirection resolves a focusmon/tagmon argument: +1 the next
// monitor, -1 the previous, wrapping.
func (wm *WM) monInDirection(dir int) *state.Monitor {
	n := len(wm.mons)
	i := 0
	for j, m := range wm.mons {
		if m == wm.sel {
			i = j
			break
		}
	}
	if dir > 0 {
		return wm.mons[(i+1)%n]
	}
	return wm.mons[(i+n-1)%n]
}

// arrange recomputes visibility and geometry for one monitor, or for
// all monitors when m is nil.
func (wm *WM) arrange(m *state.Monitor) {
	if m == nil {
		for _, m := range wm.mons {
			wm.arrange(m)
		}
		return
	}
	wm.showHide(m)
	wm.arrangeMon(m)
	wm.restack(m)
}

func (wm *WM) arrangeMon(m *state.Monitor) {
	tiled := m.TiledClients()
	if len(tiled) == 0 {
		return
	}
	area := layout.Rect{X: m.WX, Y: m.WY, W: m.WW, H: m.WH}
	borders := make([]int, len(tiled))
	for i, c := range tiled {
		borders[i] = c.Geom.BW
	}
	var rects []layout.Rect
	switch m.Layout() {
	case state.LayoutTile:
		rects = layout.Tile(area, borders, m.NMaster, m.MFact)
	case state.LayoutMonocle:
		rects = layout.Monocle(area, borders)
	default:
		return
	}
	for i, c := range tiled {
		r := rects[i]
		wm.resize(c, r.X, r.Y, r.W, r.H, false)
	}
}

// showHide walks the focus stack: visible clients move to their
// on-screen position (floating ones get their geometry re-applied,
// since layouts skip them), invisible ones move off-screen to the left
// instead of being unmapped, avoiding map/unmap churn on tag switches.
func (wm *WM) showHide(m *state.Monitor) {
	floatLayout := m.Layout() == state.LayoutFloat
	for _, c := range m.Stack {
		if !c.IsVisible() {
			continue
		}
		wm.moveWindow(c.Win, c.Geom.X, c.Geom.Y)
		if (floatLayout || c.IsFloating) && !c.IsFullscreen {
			wm.resize(c, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H, false)
		}
	}
	for i := len(m.Stack) - 1; i >= 0; i-- {
		c := m.Stack[i]
		if !c.IsVisible() {
			wm.moveWindow(c.Win, -2*c.TotalW(), c.Geom.Y)
		}
	}
}

func (wm *WM) moveWindow(win xp.Window, x, y int) {
	wm.check(xp.ConfigureWindowChecked(wm.conn, win,
		xp.ConfigWindowX|xp.ConfigWindowY,
		[]uint32{uint32(uint16(int16(x))), uint32(uint16(int16(y)))}))
}

// restack fixes the server-side stacking order: the selected floating
// client on top, then tiled clients in focus order below the bar.
func (wm *WM) restack(m *state.Monitor) {
	if m.Sel == nil {
		return
	}
	floatLayout := m.Layout() == state.LayoutFloat
	if m.Sel.IsFloating || floatLayout {
		wm.check(xp.ConfigureWindowChecked(wm.conn, m.Sel.Win,
			xp.ConfigWindowStackMode, []uint32{xp.StackModeAbove}))
	}
	if floatLayout {
		return
	}
	sibling := m.BarWin
	for _, c := range m.Stack {
		if c.IsFloating || !c.IsVisible() {
			continue
		}
		wm.check(xp.ConfigureWindowChecked(wm.conn, c.Win,
			xp.ConfigWindowSibling|xp.ConfigWindowStackMode,
			[]uint32{uint32(sibling), xp.StackModeBelow}))
		sibling = c.Win
	}
}

// sendToMonitor moves a client to another monitor, re-tagging it with
// the target's active tag set.
func (wm *WM) sendToMonitor(c *state.Client, m *state.Monitor) {
	if c.Mon == m {
		return
	}
	wm.unfocus(c, true)
	c.Mon.Detach(c)
	c.Mon.DetachStack(c)
	m.Attach(c)
	m.AttachStack(c)
	c.Tags = m.TagSet[m.SelTags]
	wm.focus(nil)
	wm.arrange(nil)
}
