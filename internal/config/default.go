package config

import "fmt"

// Default returns the built-in configuration, used directly when no
// config file exists and as the base document a file is decoded over.
func Default() *Config {
	cfg := &Config{
		Tags:        []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		BorderPx:    1,
		SnapPx:      32,
		BarHeight:   20,
		ShowBar:     true,
		TopBar:      true,
		ResizeHints: true,
		MFact:       0.55,
		NMaster:     1,
		Layout:      "tile",
		ModKey:      "mod4",
		LogLevel:    "info",
		Buttons: []ButtonConfig{
			{Button: 1, Command: "movemouse"},
			{Button: 2, Command: "togglefloating"},
			{Button: 3, Command: "resizemouse"},
		},
	}
	mod := cfg.ModKey
	keys := []KeyConfig{
		{Chord: mod + "-p", Command: "spawn", Arg: Arg{Cmd: []string{"dmenu_run"}}},
		{Chord: mod + "-shift-Return", Command: "spawn", Arg: Arg{Cmd: []string{"xterm"}}},
		{Chord: mod + "-b", Command: "togglebar"},
		{Chord: mod + "-j", Command: "focusstack", Arg: Arg{Int: 1}},
		{Chord: mod + "-k", Command: "focusstack", Arg: Arg{Int: -1}},
		{Chord: mod + "-i", Command: "incnmaster", Arg: Arg{Int: 1}},
		{Chord: mod + "-d", Command: "incnmaster", Arg: Arg{Int: -1}},
		{Chord: mod + "-h", Command: "setmfact", Arg: Arg{Float: -0.05}},
		{Chord: mod + "-l", Command: "setmfact", Arg: Arg{Float: 0.05}},
		{Chord: mod + "-Return", Command: "zoom"},
		{Chord: mod + "-Tab", Command: "view", Arg: Arg{Mask: 0}},
		{Chord: mod + "-shift-c", Command: "killclient"},
		{Chord: mod + "-t", Command: "setlayout", Arg: Arg{Str: "tile"}},
		{Chord: mod + "-f", Command: "setlayout", Arg: Arg{Str: "float"}},
		{Chord: mod + "-m", Command: "setlayout", Arg: Arg{Str: "monocle"}},
		{Chord: mod + "-space", Command: "setlayout"},
		{Chord: mod + "-shift-space", Command: "togglefloating"},
		{Chord: mod + "-0", Command: "view", Tag: "all"},
		{Chord: mod + "-shift-0", Command: "tag", Tag: "all"},
		{Chord: mod + "-comma", Command: "focusmon", Arg: Arg{Int: -1}},
		{Chord: mod + "-period", Command: "focusmon", Arg: Arg{Int: 1}},
		{Chord: mod + "-shift-comma", Command: "tagmon", Arg: Arg{Int: -1}},
		{Chord: mod + "-shift-period", Command: "tagmon", Arg: Arg{Int: 1}},
		{Chord: mod + "-shift-q", Command: "quit"},
	}
	for i := range cfg.Tags {
		n := fmt.Sprintf("%d", i+1)
		keys = append(keys,
			KeyConfig{Chord: mod + "-" + n, Command: "view", Tag: n},
			KeyConfig{Chord: mod + "-control-" + n, Command: "toggleview", Tag: n},
			KeyConfig{Chord: mod + "-shift-" + n, Command: "tag", Tag: n},
			KeyConfig{Chord: mod + "-control-shift-" + n, Command: "toggletag", Tag: n},
		)
	}
	cfg.Keys = keys
	return cfg
}
