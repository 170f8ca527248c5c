package wm

import (
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// updateStatus re-reads the status text convention: whatever string
// an external tool stores in the root window's name. No bar rendering
// happens here; the text is kept for the bar and for logging.
func (wm *WM) updateStatus() {
	name, err := ewmh.WmNameGet(wm.xu, wm.root)
	if err != nil || name == "" {
		name, err = icccm.WmNameGet(wm.xu, wm.root)
		if err != nil {
			name = ""
		}
	}
	if name == "" {
		name = "dtwm"
	}
	if len(name) > 255 {
		name = name[:255]
	}
	if name != wm.status {
		wm.status = name
		wm.log.Debugf("status: %s", name)
	}
}
