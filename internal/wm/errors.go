package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Core protocol request opcodes appearing in the benign-error
// allow-list, from Xproto.h.
const (
	opConfigureWindow = 12
	opGrabButton      = 28
	opGrabKey         = 33
	opSetInputFocus   = 42
)

// checker is a pending checked X request whose error is collected at
// the top of the next loop iteration instead of blocking the handler.
type checker interface {
	Check() error
}

func (wm *WM) check(c checker) {
	wm.pending = append(wm.pending, c)
}

func (wm *WM) drainChecks() {
	for i, c := range wm.pending {
		if err := c.Check(); err != nil {
			wm.xError(err)
		}
		wm.pending[i] = nil
	}
	wm.pending = wm.pending[:0]
}

// xError filters protocol errors. Known races with disappearing
// windows and competing grabs are dropped; anything else is a bug in
// us or the server and stops the manager.
func (wm *WM) xError(err error) {
	if benignXError(err) {
		wm.log.Debugf("ignoring X error: %v", err)
		return
	}
	wm.log.Errorf("fatal X error: %v", err)
	wm.running = false
}

// benignXError reports whether err is an expected race: operating on a
// window that was destroyed mid-request, or a grab already held by a
// client.
func benignXError(err error) bool {
	switch e := err.(type) {
	case xp.WindowError:
		return true
	case xp.DrawableError:
		return true
	case xp.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xp.AccessError:
		return e.MajorOpcode == opGrabButton || e.MajorOpcode == opGrabKey
	}
	return false
}
