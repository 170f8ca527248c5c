package wm

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
)

func TestCleanMaskStripsLockModifiers(t *testing.T) {
	in := uint16(xp.ModMask4 | xp.ModMaskShift | xp.ModMaskLock | xp.ModMask2)
	want := uint16(xp.ModMask4 | xp.ModMaskShift)
	if got := cleanMask(in); got != want {
		t.Fatalf("cleanMask(%#x) = %#x, want %#x", in, got, want)
	}
	if got := cleanMask(xp.ModMaskLock | xp.ModMask2); got != 0 {
		t.Fatalf("pure lock state must clean to zero, got %#x", got)
	}
}

func TestModMask(t *testing.T) {
	tests := map[string]uint16{
		"shift":   xp.ModMaskShift,
		"control": xp.ModMaskControl,
		"ctrl":    xp.ModMaskControl,
		"alt":     xp.ModMask1,
		"mod1":    xp.ModMask1,
		"mod4":    xp.ModMask4,
		"super":   xp.ModMask4,
		"Mod4":    xp.ModMask4,
	}
	for name, want := range tests {
		got, err := modMask(name)
		if err != nil {
			t.Fatalf("modMask(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("modMask(%q) = %#x, want %#x", name, got, want)
		}
	}
	if _, err := modMask("hyper"); err == nil {
		t.Fatalf("unknown modifier must be an error")
	}
}

func TestBuiltinCommandsCoverDefaultBindings(t *testing.T) {
	cmds := builtinCommands()
	for _, name := range []string{
		"view", "toggleview", "tag", "toggletag",
		"focusstack", "setmfact", "setlayout", "killclient",
		"togglefloating", "spawn", "quit",
		"zoom", "incnmaster", "focusmon", "tagmon", "togglebar",
		"movemouse", "resizemouse",
	} {
		if _, ok := cmds[name]; !ok {
			t.Errorf("command %q missing from the table", name)
		}
	}
}
