package wm

import (
	"fmt"
	"strings"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/dtwm/dtwm/internal/config"
	"github.com/dtwm/dtwm/internal/state"
)

type keyChord struct {
	mods uint16
	code xp.Keycode
}

type boundKey struct {
	chord   string
	command string
	arg     config.Arg
}

type boundButton struct {
	button  xp.Button
	mods    uint16
	command string
	arg     config.Arg
}

// ignoreMods are the modifier combinations a grab is repeated with, so
// that bindings keep working with Caps Lock or Num Lock held.
var ignoreMods = []uint16{
	0,
	xp.ModMaskLock,
	xp.ModMask2,
	xp.ModMaskLock | xp.ModMask2,
}

// cleanMask strips lock modifiers from an event state, leaving only
// the modifiers bindings are declared with.
func cleanMask(state uint16) uint16 {
	return state &^ (xp.ModMaskLock | xp.ModMask2) &
		(xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 | xp.ModMask2 |
			xp.ModMask3 | xp.ModMask4 | xp.ModMask5)
}

func modMask(name string) (uint16, error) {
	switch strings.ToLower(name) {
	case "shift":
		return xp.ModMaskShift, nil
	case "control", "ctrl":
		return xp.ModMaskControl, nil
	case "mod1", "alt":
		return xp.ModMask1, nil
	case "mod2":
		return xp.ModMask2, nil
	case "mod3":
		return xp.ModMask3, nil
	case "mod4", "super":
		return xp.ModMask4, nil
	case "mod5":
		return xp.ModMask5, nil
	}
	return 0, fmt.Errorf("unknown modifier %q", name)
}

// resolveBindings parses cfg's key chords to keycodes and its button
// bindings to modifier masks, without touching the installed bindings.
// Chord strings substitute "mod" for the configured modkey before
// parsing. Chord validity depends on the server's keyboard mapping, so
// config validation cannot catch a bad chord; it surfaces here.
func (wm *WM) resolveBindings(cfg *config.Config) (map[keyChord]boundKey, []boundButton, error) {
	keys := map[keyChord]boundKey{}
	for _, kc := range cfg.Keys {
		chord := strings.ReplaceAll(kc.Chord, "mod-", cfg.ModKey+"-")
		mods, codes, err := wm.parseChord(chord)
		if err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", kc.Chord, err)
		}
		bk := boundKey{chord: kc.Chord, command: kc.Command, arg: kc.Arg}
		for _, code := range codes {
			keys[keyChord{mods: mods, code: code}] = bk
		}
	}

	modKey, err := modMask(cfg.ModKey)
	if err != nil {
		return nil, nil, err
	}
	buttons := make([]boundButton, 0, len(cfg.Buttons))
	for _, bc := range cfg.Buttons {
		buttons = append(buttons, boundButton{
			button:  xp.Button(bc.Button),
			mods:    modKey,
			command: bc.Command,
			arg:     bc.Arg,
		})
	}
	return keys, buttons, nil
}

// initBindings installs the bindings for the current configuration.
// On failure the previously installed bindings stay in place.
func (wm *WM) initBindings() error {
	keys, buttons, err := wm.resolveBindings(wm.cfg)
	if err != nil {
		return err
	}
	wm.keys = keys
	wm.buttons = buttons
	return nil
}

// grabKeys re-registers every bound key chord on the root window. It
// runs at startup, after a config reload, and after a keyboard mapping
// change.
func (wm *WM) grabKeys() {
	wm.check(xp.UngrabKeyChecked(wm.conn, 0, wm.root, xp.ModMaskAny))
	for k := range wm.keys {
		for _, extra := range ignoreMods {
			wm.check(xp.GrabKeyChecked(wm.conn, true, wm.root,
				k.mods|extra, k.code,
				xp.GrabModeAsync, xp.GrabModeAsync))
		}
	}
}

// grabButtons sets up the per-client button grabs. An unfocused client
// grabs every button synchronously so the press both focuses it and is
// replayed to the application; a focused client grabs only the
// configured window-management bindings.
func (wm *WM) grabButtons(c *state.Client, focused bool) {
	wm.check(xp.UngrabButtonChecked(wm.conn, xp.ButtonIndexAny, c.Win, xp.ModMaskAny))
	if !focused {
		wm.check(xp.GrabButtonChecked(wm.conn, false, c.Win,
			xp.EventMaskButtonPress|xp.EventMaskButtonRelease,
			xp.GrabModeSync, xp.GrabModeSync,
			xp.WindowNone, xp.CursorNone,
			xp.ButtonIndexAny, xp.ModMaskAny))
		return
	}
	for _, b := range wm.buttons {
		for _, extra := range ignoreMods {
			wm.check(xp.GrabButtonChecked(wm.conn, false, c.Win,
				xp.EventMaskButtonPress|xp.EventMaskButtonRelease,
				xp.GrabModeAsync, xp.GrabModeSync,
				xp.WindowNone, xp.CursorNone,
				byte(b.button), b.mods|extra))
		}
	}
}
