package wm

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
)

type atoms struct {
	wmProtocols    xp.Atom
	wmDeleteWindow xp.Atom
	wmState        xp.Atom
	wmTakeFocus    xp.Atom

	netSupported          xp.Atom
	netWMName             xp.Atom
	netWMState            xp.Atom
	netWMCheck            xp.Atom
	netWMFullscreen       xp.Atom
	netActiveWindow       xp.Atom
	netWMWindowType       xp.Atom
	netWMWindowTypeDialog xp.Atom
	netClientList         xp.Atom
}

// Setup claims substructure redirect on the root window and initializes
// atoms, cursors, monitors, bindings, and the EWMH check window. It
// must run once, before Scan and Run.
func (wm *WM) Setup() error {
	if err := wm.becomeTheWM(); err != nil {
		return err
	}
	keybind.Initialize(wm.xu)
	if err := wm.initAtoms(); err != nil {
		return err
	}
	if err := wm.initCursors(); err != nil {
		return err
	}
	if err := wm.initCheckWindow(); err != nil {
		return err
	}
	wm.updateGeometry()
	wm.updateStatus()
	if err := wm.initBindings(); err != nil {
		return err
	}
	wm.grabKeys()
	wm.focus(nil)
	return nil
}

// becomeTheWM selects substructure redirect on the root window. Only
// one client at a time may do so; losing the race is fatal.
func (wm *WM) becomeTheWM() error {
	err := xp.ChangeWindowAttributesChecked(wm.conn, wm.root, xp.CwEventMask, []uint32{
		xp.EventMaskSubstructureRedirect |
			xp.EventMaskSubstructureNotify |
			xp.EventMaskButtonPress |
			xp.EventMaskPointerMotion |
			xp.EventMaskEnterWindow |
			xp.EventMaskLeaveWindow |
			xp.EventMaskStructureNotify |
			xp.EventMaskPropertyChange,
	}).Check()
	if err != nil {
		if _, ok := err.(xp.AccessError); ok {
			return fmt.Errorf("another window manager is already running")
		}
		return fmt.Errorf("cannot select root window events: %w", err)
	}
	return nil
}

func (wm *WM) initAtoms() error {
	named := []struct {
		name string
		dst  *xp.Atom
	}{
		{"WM_PROTOCOLS", &wm.atoms.wmProtocols},
		{"WM_DELETE_WINDOW", &wm.atoms.wmDeleteWindow},
		{"WM_STATE", &wm.atoms.wmState},
		{"WM_TAKE_FOCUS", &wm.atoms.wmTakeFocus},
		{"_NET_SUPPORTED", &wm.atoms.netSupported},
		{"_NET_WM_NAME", &wm.atoms.netWMName},
		{"_NET_WM_STATE", &wm.atoms.netWMState},
		{"_NET_SUPPORTING_WM_CHECK", &wm.atoms.netWMCheck},
		{"_NET_WM_STATE_FULLSCREEN", &wm.atoms.netWMFullscreen},
		{"_NET_ACTIVE_WINDOW", &wm.atoms.netActiveWindow},
		{"_NET_WM_WINDOW_TYPE", &wm.atoms.netWMWindowType},
		{"_NET_WM_WINDOW_TYPE_DIALOG", &wm.atoms.netWMWindowTypeDialog},
		{"_NET_CLIENT_LIST", &wm.atoms.netClientList},
	}
	for _, na := range named {
		a, err := xprop.Atm(wm.xu, na.name)
		if err != nil {
			return fmt.Errorf("intern atom %s: %w", na.name, err)
		}
		*na.dst = a
	}
	return nil
}

// Glyphs from X11's cursor font, cursorfont.h.
const (
	xcFleur   = 52
	xcLeftPtr = 68
	xcSizing  = 120
)

func (wm *WM) initCursors() error {
	font, err := xp.NewFontId(wm.conn)
	if err != nil {
		return err
	}
	if err := xp.OpenFontChecked(wm.conn, font, uint16(len("cursor")), "cursor").Check(); err != nil {
		return fmt.Errorf("open cursor font: %w", err)
	}
	newCursor := func(glyph uint16) (xp.Cursor, error) {
		cur, err := xp.NewCursorId(wm.conn)
		if err != nil {
			return 0, err
		}
		err = xp.CreateGlyphCursorChecked(wm.conn, cur, font, font, glyph, glyph+1,
			0, 0, 0, 0xffff, 0xffff, 0xffff).Check()
		return cur, err
	}
	if wm.cursorNormal, err = newCursor(xcLeftPtr); err != nil {
		return err
	}
	if wm.cursorMove, err = newCursor(xcFleur); err != nil {
		return err
	}
	if wm.cursorResize, err = newCursor(xcSizing); err != nil {
		return err
	}
	if err := xp.CloseFontChecked(wm.conn, font).Check(); err != nil {
		return err
	}
	return xp.ChangeWindowAttributesChecked(wm.conn, wm.root, xp.CwCursor,
		[]uint32{uint32(wm.cursorNormal)}).Check()
}

// initCheckWindow creates the 1x1 window other clients use to verify
// an EWMH-compliant manager is present.
func (wm *WM) initCheckWindow() error {
	win, err := xp.NewWindowId(wm.conn)
	if err != nil {
		return err
	}
	wm.checkWin = win
	if err := xp.CreateWindowChecked(wm.conn, 0, win, wm.root,
		0, 0, 1, 1, 0, xp.WindowClassInputOutput, xp.WindowNone,
		xp.CwOverrideRedirect, []uint32{1}).Check(); err != nil {
		return fmt.Errorf("create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(wm.xu, win, win); err != nil {
		return err
	}
	if err := ewmh.SupportingWmCheckSet(wm.xu, wm.root, win); err != nil {
		return err
	}
	if err := ewmh.WmNameSet(wm.xu, win, "dtwm"); err != nil {
		return err
	}
	if err := ewmh.SupportedSet(wm.xu, []string{
		"_NET_SUPPORTED",
		"_NET_WM_NAME",
		"_NET_WM_STATE",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WM_STATE_FULLSCREEN",
		"_NET_ACTIVE_WINDOW",
		"_NET_WM_WINDOW_TYPE",
		"_NET_WM_WINDOW_TYPE_DIALOG",
		"_NET_CLIENT_LIST",
	}); err != nil {
		return err
	}
	return xp.DeletePropertyChecked(wm.conn, wm.root, wm.atoms.netClientList).Check()
}

// Scan adopts windows that already exist: regular windows first, then
// transients, so a transient's parent is always managed before it.
func (wm *WM) Scan() error {
	tree, err := xp.QueryTree(wm.conn, wm.root).Reply()
	if err != nil {
		return fmt.Errorf("query window tree: %w", err)
	}
	var transients []xp.Window
	for _, child := range tree.Children {
		if wm.isOwnWindow(child) {
			continue
		}
		attrs, err := xp.GetWindowAttributes(wm.conn, child).Reply()
		if err != nil || attrs.OverrideRedirect {
			continue
		}
		if _, terr := icccm.WmTransientForGet(wm.xu, child); terr == nil {
			transients = append(transients, child)
			continue
		}
		if attrs.MapState == xp.MapStateViewable || wm.wmState(child) == icccm.StateIconic {
			wm.manage(child, false)
		}
	}
	for _, child := range transients {
		attrs, err := xp.GetWindowAttributes(wm.conn, child).Reply()
		if err != nil {
			continue
		}
		if attrs.MapState == xp.MapStateViewable || wm.wmState(child) == icccm.StateIconic {
			wm.manage(child, false)
		}
	}
	return nil
}

func (wm *WM) wmState(win xp.Window) uint {
	s, err := icccm.WmStateGet(wm.xu, win)
	if err != nil {
		return icccm.StateWithdrawn
	}
	return s.State
}

// Close tears the manager down: every remaining client is released
// back to the server unharmed, grabs are dropped, and the connection
// is closed.
func (wm *WM) Close() {
	for _, m := range wm.mons {
		m.TagSet[m.SelTags] = wm.cfg.TagMask()
		for len(m.Stack) > 0 {
			wm.unmanage(m.Stack[0], false)
		}
	}
	xp.UngrabKey(wm.conn, 0, wm.root, xp.ModMaskAny)
	for _, m := range wm.mons {
		xp.DestroyWindow(wm.conn, m.BarWin)
	}
	xp.DestroyWindow(wm.conn, wm.checkWin)
	xp.SetInputFocus(wm.conn, xp.InputFocusPointerRoot, xp.Window(xp.InputFocusPointerRoot), wm.eventTime)
	xp.DeleteProperty(wm.conn, wm.root, wm.atoms.netActiveWindow)
	wm.drainChecks()
	wm.conn.Close()
}
