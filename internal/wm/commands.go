package wm

import (
	"os/exec"
	"syscall"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/dtwm/dtwm/internal/config"
	"github.com/dtwm/dtwm/internal/state"
)

// A Command is a user-triggered action, bound to keys and buttons
// through the configuration.
type Command func(wm *WM, arg config.Arg)

func builtinCommands() map[string]Command {
	return map[string]Command{
		"view":           cmdView,
		"toggleview":     cmdToggleView,
		"tag":            cmdTag,
		"toggletag":      cmdToggleTag,
		"focusstack":     cmdFocusStack,
		"setmfact":       cmdSetMFact,
		"setlayout":      cmdSetLayout,
		"killclient":     cmdKillClient,
		"togglefloating": cmdToggleFloating,
		"spawn":          cmdSpawn,
		"quit":           cmdQuit,
		"zoom":           cmdZoom,
		"incnmaster":     cmdIncNMaster,
		"focusmon":       cmdFocusMon,
		"tagmon":         cmdTagMon,
		"togglebar":      cmdToggleBar,
		"movemouse":      cmdMoveMouse,
		"resizemouse":    cmdResizeMouse,
	}
}

func cmdView(wm *WM, arg config.Arg) {
	if wm.sel.View(arg.Mask & wm.cfg.TagMask()) {
		wm.focus(nil)
		wm.arrange(wm.sel)
	}
}

func cmdToggleView(wm *WM, arg config.Arg) {
	if wm.sel.ToggleView(arg.Mask & wm.cfg.TagMask()) {
		wm.focus(nil)
		wm.arrange(wm.sel)
	}
}

func cmdTag(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil {
		return
	}
	if c.SetTags(arg.Mask & wm.cfg.TagMask()) {
		wm.focus(nil)
		wm.arrange(wm.sel)
	}
}

func cmdToggleTag(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil {
		return
	}
	if c.ToggleTags(arg.Mask & wm.cfg.TagMask()) {
		wm.focus(nil)
		wm.arrange(wm.sel)
	}
}

func cmdFocusStack(wm *WM, arg config.Arg) {
	if wm.sel.Sel == nil || wm.sel.Sel.IsFullscreen {
		return
	}
	if c := wm.sel.CycleVisible(arg.Int); c != nil {
		wm.focus(c)
		wm.restack(wm.sel)
	}
}

func cmdSetMFact(wm *WM, arg config.Arg) {
	m := wm.sel
	if m.Layout() == state.LayoutFloat {
		return
	}
	f := arg.Float
	if f < 1.0 {
		f += m.MFact
	} else {
		f -= 1.0
	}
	if f < 0.1 || f > 0.9 {
		return
	}
	m.MFact = f
	wm.arrange(m)
}

func cmdSetLayout(wm *WM, arg config.Arg) {
	m := wm.sel
	if arg.Str == "" {
		m.SelLt ^= 1
	} else {
		lt := layoutKind(arg.Str)
		if lt != m.Lt[m.SelLt] {
			m.SelLt ^= 1
		}
		m.Lt[m.SelLt] = lt
	}
	if m.Sel != nil {
		wm.arrange(m)
	}
}

// cmdKillClient asks the focused client to close itself, falling back
// to severing its connection when it does not speak WM_DELETE_WINDOW.
func cmdKillClient(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil {
		return
	}
	if !wm.sendProtocol(c, wm.atoms.wmDeleteWindow) {
		wm.check(xp.KillClientChecked(wm.conn, uint32(c.Win)))
	}
}

func cmdToggleFloating(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil || c.IsFullscreen {
		return
	}
	c.IsFloating = !c.IsFloating || c.IsFixed
	if c.IsFloating {
		wm.resize(c, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H, false)
	}
	wm.arrange(wm.sel)
}

// cmdSpawn launches an external command in its own session, so it
// survives the manager and never becomes our controlling terminal's
// problem. A goroutine reaps it.
func cmdSpawn(wm *WM, arg config.Arg) {
	if len(arg.Cmd) == 0 {
		return
	}
	cmd := exec.Command(arg.Cmd[0], arg.Cmd[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		wm.log.Errorf("spawn %q: %v", arg.Cmd[0], err)
		return
	}
	log := wm.log
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debugf("%q exited: %v", arg.Cmd[0], err)
		}
	}()
}

func cmdQuit(wm *WM, arg config.Arg) {
	wm.running = false
}

// cmdZoom makes the focused tiled client the new master, or refocuses
// the previous master if it already is.
func cmdZoom(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil || c.IsFloating || wm.sel.Layout() == state.LayoutFloat {
		return
	}
	tiled := wm.sel.TiledClients()
	if len(tiled) > 0 && c == tiled[0] {
		if len(tiled) < 2 {
			return
		}
		c = tiled[1]
	}
	wm.sel.Pop(c)
	wm.focus(c)
	wm.arrange(wm.sel)
}

func cmdIncNMaster(wm *WM, arg config.Arg) {
	m := wm.sel
	m.NMaster = max(m.NMaster+arg.Int, 0)
	wm.arrange(m)
}

func cmdFocusMon(wm *WM, arg config.Arg) {
	if len(wm.mons) < 2 {
		return
	}
	m := wm.monInDirection(arg.Int)
	if m == wm.sel {
		return
	}
	wm.unfocus(wm.sel.Sel, true)
	wm.sel = m
	wm.focus(nil)
}

func cmdTagMon(wm *WM, arg config.Arg) {
	if wm.sel.Sel == nil || len(wm.mons) < 2 {
		return
	}
	wm.sendToMonitor(wm.sel.Sel, wm.monInDirection(arg.Int))
}

func cmdToggleBar(wm *WM, arg config.Arg) {
	m := wm.sel
	m.ShowBar = !m.ShowBar
	m.SetBarPos(wm.cfg.BarHeight)
	wm.updateBars()
	wm.arrange(m)
}

type dragMode int

const (
	dragMove dragMode = iota
	dragResize
)

// drag is an in-progress pointer move or resize. Button-press starts
// it, motion events advance it, button-release finishes it.
type drag struct {
	c     *state.Client
	mode  dragMode
	px    int // pointer position at drag start
	py    int
	start state.Geom
}

func cmdMoveMouse(wm *WM, arg config.Arg) {
	wm.startDrag(dragMove, wm.cursorMove)
}

func cmdResizeMouse(wm *WM, arg config.Arg) {
	c := wm.sel.Sel
	if c == nil {
		return
	}
	if wm.startDrag(dragResize, wm.cursorResize) {
		// Warp to the bottom-right corner so the resize feels anchored.
		wm.check(xp.WarpPointerChecked(wm.conn, xp.WindowNone, c.Win, 0, 0, 0, 0,
			int16(c.Geom.W+c.Geom.BW-1), int16(c.Geom.H+c.Geom.BW-1)))
		wm.drag.px = c.Geom.X + c.Geom.W + c.Geom.BW - 1
		wm.drag.py = c.Geom.Y + c.Geom.H + c.Geom.BW - 1
	}
}

func (wm *WM) startDrag(mode dragMode, cursor xp.Cursor) bool {
	c := wm.sel.Sel
	if c == nil || c.IsFullscreen {
		return false
	}
	wm.restack(wm.sel)
	reply, err := xp.GrabPointer(wm.conn, false, wm.root,
		xp.EventMaskButtonPress|xp.EventMaskButtonRelease|xp.EventMaskPointerMotion,
		xp.GrabModeAsync, xp.GrabModeAsync,
		xp.WindowNone, cursor, wm.eventTime).Reply()
	if err != nil || reply.Status != xp.GrabStatusSuccess {
		return false
	}
	pointer, err := xp.QueryPointer(wm.conn, wm.root).Reply()
	if err != nil {
		wm.check(xp.UngrabPointerChecked(wm.conn, wm.eventTime))
		return false
	}
	wm.drag = &drag{
		c:     c,
		mode:  mode,
		px:    int(pointer.RootX),
		py:    int(pointer.RootY),
		start: c.Geom,
	}
	return true
}

func (wm *WM) stepDrag(rootX, rootY int) {
	d := wm.drag
	c := d.c
	m := wm.sel
	snap := wm.cfg.SnapPx
	floatLayout := m.Layout() == state.LayoutFloat

	switch d.mode {
	case dragMove:
		x := d.start.X + rootX - d.px
		y := d.start.Y + rootY - d.py
		if abs(m.WX-x) < snap {
			x = m.WX
		} else if abs(m.WX+m.WW-(x+c.TotalW())) < snap {
			x = m.WX + m.WW - c.TotalW()
		}
		if abs(m.WY-y) < snap {
			y = m.WY
		} else if abs(m.WY+m.WH-(y+c.TotalH())) < snap {
			y = m.WY + m.WH - c.TotalH()
		}
		if !c.IsFloating && !floatLayout &&
			(abs(x-c.Geom.X) > snap || abs(y-c.Geom.Y) > snap) {
			wm.toggleFloatingForDrag(c)
		}
		if c.IsFloating || floatLayout {
			wm.resize(c, x, y, c.Geom.W, c.Geom.H, true)
		}
	case dragResize:
		w := max(rootX-d.start.X-2*d.start.BW+1, 1)
		h := max(rootY-d.start.Y-2*d.start.BW+1, 1)
		inWorkArea := c.Mon.WX+w >= m.WX && c.Mon.WX+w <= m.WX+m.WW &&
			c.Mon.WY+h >= m.WY && c.Mon.WY+h <= m.WY+m.WH
		if inWorkArea && !c.IsFloating && !floatLayout &&
			(abs(w-c.Geom.W) > snap || abs(h-c.Geom.H) > snap) {
			wm.toggleFloatingForDrag(c)
		}
		if c.IsFloating || floatLayout {
			wm.resize(c, c.Geom.X, c.Geom.Y, w, h, true)
		}
	}
}

func (wm *WM) toggleFloatingForDrag(c *state.Client) {
	c.IsFloating = true
	wm.resize(c, c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H, false)
	wm.arrange(c.Mon)
}

func (wm *WM) endDrag() {
	wm.drag = nil
	wm.check(xp.UngrabPointerChecked(wm.conn, wm.eventTime))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
