package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/dtwm/dtwm/internal/state"
)

func (wm *WM) handleMapRequest(e xp.MapRequestEvent) {
	attrs, err := xp.GetWindowAttributes(wm.conn, e.Window).Reply()
	if err != nil || attrs.OverrideRedirect {
		return
	}
	wm.manage(e.Window, true)
}

// An UnmapNotify for a managed window means the client withdrew it.
// xgb strips the send-event bit from the event code, so synthetic
// unmaps (ICCCM 4.1.4 withdrawal requests) cannot be told apart from
// server ones; both release the client in the withdrawn state.
func (wm *WM) handleUnmapNotify(e xp.UnmapNotifyEvent) {
	if c := wm.findClient(e.Window); c != nil {
		wm.unmanage(c, false)
	}
}

func (wm *WM) handleDestroyNotify(e xp.DestroyNotifyEvent) {
	if c := wm.findClient(e.Window); c != nil {
		wm.unmanage(c, true)
	}
}

func (wm *WM) handleConfigureRequest(e xp.ConfigureRequestEvent) {
	c := wm.findClient(e.Window)
	if c == nil {
		// Not ours: grant the request verbatim.
		mask := uint16(0)
		var values []uint32
		if e.ValueMask&xp.ConfigWindowX != 0 {
			mask |= xp.ConfigWindowX
			values = append(values, uint32(uint16(e.X)))
		}
		if e.ValueMask&xp.ConfigWindowY != 0 {
			mask |= xp.ConfigWindowY
			values = append(values, uint32(uint16(e.Y)))
		}
		if e.ValueMask&xp.ConfigWindowWidth != 0 {
			mask |= xp.ConfigWindowWidth
			values = append(values, uint32(e.Width))
		}
		if e.ValueMask&xp.ConfigWindowHeight != 0 {
			mask |= xp.ConfigWindowHeight
			values = append(values, uint32(e.Height))
		}
		if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
			mask |= xp.ConfigWindowBorderWidth
			values = append(values, uint32(e.BorderWidth))
		}
		if e.ValueMask&xp.ConfigWindowSibling != 0 {
			mask |= xp.ConfigWindowSibling
			values = append(values, uint32(e.Sibling))
		}
		if e.ValueMask&xp.ConfigWindowStackMode != 0 {
			mask |= xp.ConfigWindowStackMode
			values = append(values, uint32(e.StackMode))
		}
		wm.check(xp.ConfigureWindowChecked(wm.conn, e.Window, mask, values))
		return
	}

	if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		c.Geom.BW = int(e.BorderWidth)
		return
	}
	floatLayout := c.Mon.Layout() == state.LayoutFloat
	if !c.IsFloating && !floatLayout {
		// Tiled clients do not get to choose geometry.
		wm.configure(c)
		return
	}
	m := c.Mon
	c.OldGeom = c.Geom
	if e.ValueMask&xp.ConfigWindowX != 0 {
		c.Geom.X = m.MX + int(e.X)
	}
	if e.ValueMask&xp.ConfigWindowY != 0 {
		c.Geom.Y = m.MY + int(e.Y)
	}
	if e.ValueMask&xp.ConfigWindowWidth != 0 {
		c.Geom.W = int(e.Width)
	}
	if e.ValueMask&xp.ConfigWindowHeight != 0 {
		c.Geom.H = int(e.Height)
	}
	if c.Geom.X+c.Geom.W > m.MX+m.MW && c.IsFloating {
		c.Geom.X = m.MX + (m.MW-c.TotalW())/2
	}
	if c.Geom.Y+c.Geom.H > m.MY+m.MH && c.IsFloating {
		c.Geom.Y = m.MY + (m.MH-c.TotalH())/2
	}
	if e.ValueMask&(xp.ConfigWindowX|xp.ConfigWindowY) != 0 &&
		e.ValueMask&(xp.ConfigWindowWidth|xp.ConfigWindowHeight) == 0 {
		wm.configure(c)
	}
	if c.IsVisible() {
		wm.check(xp.ConfigureWindowChecked(wm.conn, c.Win,
			xp.ConfigWindowX|xp.ConfigWindowY|
				xp.ConfigWindowWidth|xp.ConfigWindowHeight,
			[]uint32{
				uint32(uint16(int16(c.Geom.X))),
				uint32(uint16(int16(c.Geom.Y))),
				uint32(uint16(c.Geom.W)),
				uint32(uint16(c.Geom.H)),
			}))
	}
}

// A root ConfigureNotify means the screen itself changed size.
func (wm *WM) handleConfigureNotify(e xp.ConfigureNotifyEvent) {
	if e.Window != wm.root {
		return
	}
	dirty := wm.screenW != int(e.Width) || wm.screenH != int(e.Height)
	wm.screenW, wm.screenH = int(e.Width), int(e.Height)
	if wm.updateGeometry() || dirty {
		wm.focus(nil)
		wm.arrange(nil)
	}
}

func (wm *WM) handleKeyPress(e xp.KeyPressEvent) {
	k := keyChord{mods: cleanMask(e.State), code: e.Detail}
	bk, ok := wm.keys[k]
	if !ok {
		return
	}
	cmd, ok := wm.commands[bk.command]
	if !ok {
		wm.log.Warnf("key %q bound to unknown command %q", bk.chord, bk.command)
		return
	}
	cmd(wm, bk.arg)
}

func (wm *WM) handleMappingNotify(e xp.MappingNotifyEvent) {
	if e.Request != xp.MappingKeyboard {
		return
	}
	keybind.Initialize(wm.xu)
	if err := wm.initBindings(); err != nil {
		wm.log.Errorf("rebinding keys after mapping change: %v", err)
		return
	}
	wm.grabKeys()
}

func (wm *WM) handleEnterNotify(e xp.EnterNotifyEvent) {
	if (e.Mode != xp.NotifyModeNormal || e.Detail == xp.NotifyDetailInferior) && e.Event != wm.root {
		return
	}
	c := wm.findClient(e.Event)
	var m *state.Monitor
	if c != nil {
		m = c.Mon
	} else {
		m = wm.monFor(e.Event)
	}
	if m != wm.sel {
		wm.unfocus(wm.sel.Sel, true)
		wm.sel = m
	} else if c == nil || c == wm.sel.Sel {
		return
	}
	wm.focus(c)
}

func (wm *WM) handleMotionNotify(e xp.MotionNotifyEvent) {
	if wm.drag != nil {
		wm.stepDrag(int(e.RootX), int(e.RootY))
		return
	}
	if e.Event != wm.root {
		return
	}
	m := wm.monAt(int(e.RootX), int(e.RootY))
	if m != wm.motionMon && wm.motionMon != nil {
		wm.unfocus(wm.sel.Sel, true)
		wm.sel = m
		wm.focus(nil)
	}
	wm.motionMon = m
}

func (wm *WM) handleButtonPress(e xp.ButtonPressEvent) {
	m := wm.monFor(e.Event)
	if m != wm.sel {
		wm.unfocus(wm.sel.Sel, true)
		wm.sel = m
		wm.focus(nil)
	}
	c := wm.findClient(e.Event)
	if c != nil {
		wm.focus(c)
		wm.restack(c.Mon)
		wm.check(xp.AllowEventsChecked(wm.conn, xp.AllowReplayPointer, e.Time))
	}
	if c == nil {
		return
	}
	mods := cleanMask(e.State)
	for _, b := range wm.buttons {
		if b.button != e.Detail || b.mods != mods {
			continue
		}
		cmd, ok := wm.commands[b.command]
		if !ok {
			wm.log.Warnf("button %d bound to unknown command %q", b.button, b.command)
			continue
		}
		cmd(wm, b.arg)
	}
}

func (wm *WM) handleButtonRelease(e xp.ButtonReleaseEvent) {
	if wm.drag == nil {
		return
	}
	c := wm.drag.c
	wm.endDrag()
	if m := wm.monForRect(c.Geom.X, c.Geom.Y, c.TotalW(), c.TotalH()); m != c.Mon {
		wm.sendToMonitor(c, m)
		wm.sel = m
		wm.focus(nil)
	}
}

func (wm *WM) handlePropertyNotify(e xp.PropertyNotifyEvent) {
	if e.Window == wm.root && e.Atom == xp.AtomWmName {
		wm.updateStatus()
		return
	}
	if e.State == xp.PropertyDelete {
		return
	}
	c := wm.findClient(e.Window)
	if c == nil {
		return
	}
	switch e.Atom {
	case xp.AtomWmTransientFor:
		if !c.IsFloating {
			if parent, err := icccm.WmTransientForGet(wm.xu, c.Win); err == nil && wm.findClient(parent) != nil {
				c.IsFloating = true
				wm.arrange(c.Mon)
			}
		}
	case xp.AtomWmNormalHints:
		wm.updateSizeHints(c)
	case xp.AtomWmHints:
		wm.updateWMHints(c)
	case xp.AtomWmName, wm.atoms.netWMName:
		wm.updateTitle(c)
	case wm.atoms.netWMWindowType:
		wm.updateWindowType(c)
	}
}

func (wm *WM) handleClientMessage(e xp.ClientMessageEvent) {
	c := wm.findClient(e.Window)
	if c == nil {
		return
	}
	switch e.Type {
	case wm.atoms.netWMState:
		data := e.Data.Data32
		if xp.Atom(data[1]) == wm.atoms.netWMFullscreen ||
			xp.Atom(data[2]) == wm.atoms.netWMFullscreen {
			// 1 = add, 2 = toggle.
			wm.setFullscreen(c, data[0] == 1 || (data[0] == 2 && !c.IsFullscreen))
		}
	case wm.atoms.netActiveWindow:
		if c != wm.sel.Sel && !c.IsUrgent {
			wm.setUrgent(c, true)
		}
	}
}

// Some clients grab focus for themselves; push it back to the
// selection.
func (wm *WM) handleFocusIn(e xp.FocusInEvent) {
	if wm.sel.Sel != nil && e.Event != wm.sel.Sel.Win {
		wm.setFocus(wm.sel.Sel)
	}
}
