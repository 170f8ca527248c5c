package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/dtwm/dtwm/internal/rules"
	"github.com/dtwm/dtwm/internal/state"
)

// manage adopts a window: it builds the client record, applies rules
// and hints, registers event interest and button grabs, and maps it
// into the arrangement. focusNew is false when adopting pre-existing
// windows at startup.
func (wm *WM) manage(win xp.Window, focusNew bool) {
	if wm.findClient(win) != nil {
		return
	}
	geom, err := xp.GetGeometry(wm.conn, xp.Drawable(win)).Reply()
	if err != nil {
		return
	}

	c := &state.Client{Win: win}
	c.Geom.X, c.Geom.Y = int(geom.X), int(geom.Y)
	c.Geom.W, c.Geom.H = int(geom.Width), int(geom.Height)
	c.OldGeom = c.Geom
	c.OldBW = int(geom.BorderWidth)
	c.Geom.BW = wm.cfg.BorderPx

	wm.updateTitle(c)

	if parent, err := icccm.WmTransientForGet(wm.xu, win); err == nil {
		if p := wm.findClient(parent); p != nil {
			c.Mon = p.Mon
			c.Tags = p.Tags
			c.IsFloating = true
		}
	}
	if c.Mon == nil {
		c.Mon = wm.sel
		wm.applyRules(c)
	}

	// Clamp into the monitor so off-screen windows become reachable.
	m := c.Mon
	if c.Geom.X+c.TotalW() > m.WX+m.WW {
		c.Geom.X = m.WX + m.WW - c.TotalW()
	}
	if c.Geom.Y+c.TotalH() > m.WY+m.WH {
		c.Geom.Y = m.WY + m.WH - c.TotalH()
	}
	if c.Geom.X < m.WX {
		c.Geom.X = m.WX
	}
	if c.Geom.Y < m.WY {
		c.Geom.Y = m.WY
	}

	wm.check(xp.ConfigureWindowChecked(wm.conn, win,
		xp.ConfigWindowBorderWidth, []uint32{uint32(c.Geom.BW)}))
	wm.configure(c)
	wm.updateWindowType(c)
	wm.updateSizeHints(c)
	wm.updateWMHints(c)
	wm.check(xp.ChangeWindowAttributesChecked(wm.conn, win, xp.CwEventMask, []uint32{
		xp.EventMaskEnterWindow |
			xp.EventMaskFocusChange |
			xp.EventMaskPropertyChange |
			xp.EventMaskStructureNotify,
	}))
	wm.grabButtons(c, false)
	if !c.IsFloating {
		c.IsFloating = c.IsFixed
		c.OldState = c.IsFloating
	}
	if c.IsFloating {
		wm.check(xp.ConfigureWindowChecked(wm.conn, win,
			xp.ConfigWindowStackMode, []uint32{xp.StackModeAbove}))
	}

	m.Attach(c)
	m.AttachStack(c)

	wm.updateClientList()
	// Park it before mapping so the map is not visible mid-move.
	wm.moveWindow(win, c.Geom.X+2*wm.screenW, c.Geom.Y)
	wm.setClientState(c, icccm.StateNormal)
	if c.Mon == wm.sel && focusNew {
		wm.unfocus(wm.sel.Sel, false)
	}
	m.Sel = c
	wm.arrange(m)
	wm.check(xp.MapWindowChecked(wm.conn, win))
	wm.focus(nil)
}

func (wm *WM) applyRules(c *state.Client) {
	class, instance := "", ""
	if wc, err := icccm.WmClassGet(wm.xu, c.Win); err == nil {
		class, instance = wc.Class, wc.Instance
	}
	res := rules.Apply(wm.rules, class, instance, c.Name)
	c.IsFloating = res.Floating
	c.Tags |= res.Tags
	if res.Monitor >= 0 && res.Monitor < len(wm.mons) {
		c.Mon = wm.mons[res.Monitor]
	}
	if c.Tags&wm.cfg.TagMask() == 0 {
		c.Tags = c.Mon.TagSet[c.Mon.SelTags]
	} else {
		c.Tags &= wm.cfg.TagMask()
	}
}

// unmanage releases a client. destroyed is true when the window is
// already gone; otherwise the window survives and is restored to its
// pre-managed border and the withdrawn state.
func (wm *WM) unmanage(c *state.Client, destroyed bool) {
	m := c.Mon
	m.Detach(c)
	m.DetachStack(c)
	if !destroyed {
		wm.check(xp.ConfigureWindowChecked(wm.conn, c.Win,
			xp.ConfigWindowBorderWidth, []uint32{uint32(c.OldBW)}))
		wm.check(xp.UngrabButtonChecked(wm.conn, xp.ButtonIndexAny, c.Win, xp.ModMaskAny))
		wm.setClientState(c, icccm.StateWithdrawn)
	}
	if wm.drag != nil && wm.drag.c == c {
		wm.endDrag()
	}
	wm.focus(nil)
	wm.updateClientList()
	wm.arrange(m)
}

// resize applies size hints and then reconfigures the window if the
// hinted geometry differs from the current one.
func (wm *WM) resize(c *state.Client, x, y, w, h int, interact bool) {
	fx, fy, fw, fh, ok := c.ApplySizeHints(x, y, w, h, interact,
		wm.screenW, wm.screenH, wm.cfg.BarHeight,
		wm.cfg.ResizeHints, c.Mon.Layout() == state.LayoutFloat)
	if ok {
		wm.resizeClient(c, fx, fy, fw, fh)
	}
}

func (wm *WM) resizeClient(c *state.Client, x, y, w, h int) {
	c.OldGeom = c.Geom
	c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H = x, y, w, h
	wm.check(xp.ConfigureWindowChecked(wm.conn, c.Win,
		xp.ConfigWindowX|xp.ConfigWindowY|
			xp.ConfigWindowWidth|xp.ConfigWindowHeight|
			xp.ConfigWindowBorderWidth,
		[]uint32{
			uint32(uint16(int16(x))),
			uint32(uint16(int16(y))),
			uint32(uint16(w)),
			uint32(uint16(h)),
			uint32(c.Geom.BW),
		}))
	wm.configure(c)
}

// configure sends the synthetic ConfigureNotify ICCCM requires after a
// manager-side geometry decision.
func (wm *WM) configure(c *state.Client) {
	ev := xp.ConfigureNotifyEvent{
		Event:            c.Win,
		Window:           c.Win,
		X:                int16(c.Geom.X),
		Y:                int16(c.Geom.Y),
		Width:            uint16(c.Geom.W),
		Height:           uint16(c.Geom.H),
		BorderWidth:      uint16(c.Geom.BW),
		AboveSibling:     xp.WindowNone,
		OverrideRedirect: false,
	}
	wm.check(xp.SendEventChecked(wm.conn, false, c.Win,
		xp.EventMaskStructureNotify, string(ev.Bytes())))
}

// focus moves input focus to c, or to the first visible client on the
// selected monitor when c is nil (or not visible).
func (wm *WM) focus(c *state.Client) {
	if c == nil || !c.IsVisible() {
		c = wm.sel.FirstVisibleInStack()
	}
	if wm.sel.Sel != nil && wm.sel.Sel != c {
		wm.unfocus(wm.sel.Sel, false)
	}
	if c != nil {
		if c.Mon != wm.sel {
			wm.sel = c.Mon
		}
		if c.IsUrgent {
			wm.setUrgent(c, false)
		}
		c.Mon.DetachStack(c)
		c.Mon.AttachStack(c)
		wm.grabButtons(c, true)
		wm.setFocus(c)
	} else {
		wm.check(xp.SetInputFocusChecked(wm.conn, xp.InputFocusPointerRoot,
			wm.root, wm.eventTime))
		wm.check(xp.DeletePropertyChecked(wm.conn, wm.root, wm.atoms.netActiveWindow))
	}
	wm.sel.Sel = c
}

func (wm *WM) unfocus(c *state.Client, setRoot bool) {
	if c == nil {
		return
	}
	wm.grabButtons(c, false)
	if setRoot {
		wm.check(xp.SetInputFocusChecked(wm.conn, xp.InputFocusPointerRoot,
			wm.root, wm.eventTime))
		wm.check(xp.DeletePropertyChecked(wm.conn, wm.root, wm.atoms.netActiveWindow))
	}
}

func (wm *WM) setFocus(c *state.Client) {
	if !c.NeverFocus {
		wm.check(xp.SetInputFocusChecked(wm.conn, xp.InputFocusPointerRoot,
			c.Win, wm.eventTime))
		if err := ewmh.ActiveWindowSet(wm.xu, c.Win); err != nil {
			wm.log.Debugf("set active window: %v", err)
		}
	}
	wm.sendProtocol(c, wm.atoms.wmTakeFocus)
}

// sendProtocol delivers a WM_PROTOCOLS client message if the client
// advertises the protocol, reporting whether it did.
func (wm *WM) sendProtocol(c *state.Client, proto xp.Atom) bool {
	protocols, err := icccm.WmProtocolsGet(wm.xu, c.Win)
	if err != nil {
		return false
	}
	name, err := xprotoAtomName(wm, proto)
	if err != nil {
		return false
	}
	supported := false
	for _, p := range protocols {
		if p == name {
			supported = true
			break
		}
	}
	if !supported {
		return false
	}
	ev := xp.ClientMessageEvent{
		Format: 32,
		Window: c.Win,
		Type:   wm.atoms.wmProtocols,
		Data: xp.ClientMessageDataUnionData32New([]uint32{
			uint32(proto), uint32(wm.eventTime), 0, 0, 0,
		}),
	}
	wm.check(xp.SendEventChecked(wm.conn, false, c.Win,
		xp.EventMaskNoEvent, string(ev.Bytes())))
	return true
}

func xprotoAtomName(wm *WM, a xp.Atom) (string, error) {
	switch a {
	case wm.atoms.wmTakeFocus:
		return "WM_TAKE_FOCUS", nil
	case wm.atoms.wmDeleteWindow:
		return "WM_DELETE_WINDOW", nil
	}
	reply, err := xp.GetAtomName(wm.conn, a).Reply()
	if err != nil {
		return "", err
	}
	return reply.Name, nil
}

func (wm *WM) setClientState(c *state.Client, st uint) {
	if err := icccm.WmStateSet(wm.xu, c.Win, &icccm.WmState{State: st}); err != nil {
		wm.log.Debugf("set WM_STATE on %#x: %v", c.Win, err)
	}
}

// setFullscreen toggles the EWMH fullscreen state: borderless,
// floating, covering the whole monitor, restored from the saved
// geometry on the way back.
func (wm *WM) setFullscreen(c *state.Client, fullscreen bool) {
	if fullscreen && !c.IsFullscreen {
		if err := ewmh.WmStateSet(wm.xu, c.Win, []string{"_NET_WM_STATE_FULLSCREEN"}); err != nil {
			wm.log.Debugf("set fullscreen state: %v", err)
		}
		c.IsFullscreen = true
		c.OldState = c.IsFloating
		c.OldBW = c.Geom.BW
		c.Geom.BW = 0
		c.IsFloating = true
		wm.resizeClient(c, c.Mon.MX, c.Mon.MY, c.Mon.MW, c.Mon.MH)
		wm.check(xp.ConfigureWindowChecked(wm.conn, c.Win,
			xp.ConfigWindowStackMode, []uint32{xp.StackModeAbove}))
	} else if !fullscreen && c.IsFullscreen {
		if err := ewmh.WmStateSet(wm.xu, c.Win, nil); err != nil {
			wm.log.Debugf("clear fullscreen state: %v", err)
		}
		c.IsFullscreen = false
		c.IsFloating = c.OldState
		c.Geom.BW = c.OldBW
		c.Geom = state.Geom{
			X: c.OldGeom.X, Y: c.OldGeom.Y,
			W: c.OldGeom.W, H: c.OldGeom.H,
			BW: c.Geom.BW,
		}
		wm.resizeClient(c, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H)
		wm.arrange(c.Mon)
	}
}

func (wm *WM) setUrgent(c *state.Client, urgent bool) {
	c.IsUrgent = urgent
	hints, err := icccm.WmHintsGet(wm.xu, c.Win)
	if err != nil {
		return
	}
	if urgent {
		hints.Flags |= icccm.HintUrgency
	} else {
		hints.Flags &^= icccm.HintUrgency
	}
	if err := icccm.WmHintsSet(wm.xu, c.Win, hints); err != nil {
		wm.log.Debugf("set WM_HINTS on %#x: %v", c.Win, err)
	}
}

func (wm *WM) updateTitle(c *state.Client) {
	if name, err := ewmh.WmNameGet(wm.xu, c.Win); err == nil && name != "" {
		c.SetName(name)
		return
	}
	if name, err := icccm.WmNameGet(wm.xu, c.Win); err == nil && name != "" {
		c.SetName(name)
		return
	}
	c.SetName("broken")
}

func (wm *WM) updateWindowType(c *state.Client) {
	if states, err := ewmh.WmStateGet(wm.xu, c.Win); err == nil {
		for _, s := range states {
			if s == "_NET_WM_STATE_FULLSCREEN" {
				wm.setFullscreen(c, true)
			}
		}
	}
	if types, err := ewmh.WmWindowTypeGet(wm.xu, c.Win); err == nil {
		for _, t := range types {
			if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
				c.IsFloating = true
			}
		}
	}
}

func (wm *WM) updateSizeHints(c *state.Client) {
	nh, err := icccm.WmNormalHintsGet(wm.xu, c.Win)
	if err != nil {
		c.Hints = state.Hints{}
		c.UpdateFixed()
		return
	}
	h := state.Hints{}
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.BaseW, h.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.BaseW, h.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinW, h.MinH = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.MinW, h.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 {
		if nh.MinAspectNum > 0 {
			h.MinA = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		}
		if nh.MaxAspectDen > 0 {
			h.MaxA = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
		}
	}
	c.Hints = h
	c.UpdateFixed()
}

func (wm *WM) updateWMHints(c *state.Client) {
	hints, err := icccm.WmHintsGet(wm.xu, c.Win)
	if err != nil {
		return
	}
	if c == wm.sel.Sel && hints.Flags&icccm.HintUrgency != 0 {
		// The focused window never stays urgent.
		hints.Flags &^= icccm.HintUrgency
		if err := icccm.WmHintsSet(wm.xu, c.Win, hints); err != nil {
			wm.log.Debugf("clear urgency on %#x: %v", c.Win, err)
		}
	} else {
		c.IsUrgent = hints.Flags&icccm.HintUrgency != 0
	}
	if hints.Flags&icccm.HintInput != 0 {
		c.NeverFocus = hints.Input == 0
	} else {
		c.NeverFocus = false
	}
}

func (wm *WM) updateClientList() {
	var wins []xp.Window
	for _, m := range wm.mons {
		for _, c := range m.Clients {
			wins = append(wins, c.Win)
		}
	}
	if err := ewmh.ClientListSet(wm.xu, wins); err != nil {
		wm.log.Debugf("set client list: %v", err)
	}
}
