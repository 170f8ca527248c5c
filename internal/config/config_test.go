package config

import (
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
	if len(cfg.Tags) != 9 {
		t.Fatalf("expected 9 default tags, got %d", len(cfg.Tags))
	}
	if cfg.MFact != 0.55 || cfg.NMaster != 1 {
		t.Fatalf("unexpected defaults: mfact=%v nmaster=%d", cfg.MFact, cfg.NMaster)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
tags: ["web", "code", "misc"]
mfact: 0.6
layout: monocle
modKey: mod1
keys:
  - chord: mod-Return
    command: zoom
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Tags) != 3 || cfg.Tags[1] != "code" {
		t.Fatalf("tags not overridden: %v", cfg.Tags)
	}
	if cfg.MFact != 0.6 || cfg.Layout != "monocle" || cfg.ModKey != "mod1" {
		t.Fatalf("scalar overrides not applied")
	}
	if cfg.BarHeight != Default().BarHeight {
		t.Fatalf("unset fields must keep their defaults")
	}
	if len(cfg.Keys) != 1 || cfg.Keys[0].Command != "zoom" {
		t.Fatalf("keys not replaced: %v", cfg.Keys)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"mfact too small", "mfact: 0.05", "mfact"},
		{"mfact too large", "mfact: 0.95", "mfact"},
		{"unknown layout", "layout: spiral", "layout"},
		{"no tags", "tags: []", "tags"},
		{"negative nmaster", "nmaster: -1", "nmaster"},
		{"button out of range", "buttons: [{button: 9, command: zoom}]", "out of range"},
		{"key without command", "keys: [{chord: mod-x}]", "chord and command"},
		{"empty rule", "rules: [{floating: true}]", "matches nothing"},
		{"unknown tag in key", "keys: [{chord: mod-x, command: view, tag: nope}]", "unknown tag"},
	}
	for _, tc := range cases {
		if _, err := Parse([]byte(tc.yaml)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		} else if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateResolvesKeyTagToMask(t *testing.T) {
	cfg, err := Parse([]byte(`
keys:
  - chord: mod-3
    command: view
    tag: "3"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Keys[0].Arg.Mask != 1<<2 {
		t.Fatalf("tag 3 resolved to mask %b, want 100", cfg.Keys[0].Arg.Mask)
	}
}

func TestArgUnmarshalVariants(t *testing.T) {
	cfg, err := Parse([]byte(`
keys:
  - {chord: mod-j, command: focusstack, arg: 1}
  - {chord: mod-l, command: setmfact, arg: 0.05}
  - {chord: mod-h, command: setmfact, arg: -0.05}
  - {chord: mod-p, command: spawn, arg: [dmenu_run, -i]}
  - {chord: mod-t, command: setlayout, arg: tile}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Keys[0].Arg.Int != 1 || cfg.Keys[0].Arg.Float != 1 {
		t.Fatalf("int arg = %+v", cfg.Keys[0].Arg)
	}
	// Fractional scalars must survive as floats, not truncate to int 0.
	if cfg.Keys[1].Arg.Float != 0.05 {
		t.Fatalf("float arg = %v", cfg.Keys[1].Arg.Float)
	}
	if cfg.Keys[2].Arg.Float != -0.05 {
		t.Fatalf("negative float arg = %v", cfg.Keys[2].Arg.Float)
	}
	if got := cfg.Keys[3].Arg.Cmd; len(got) != 2 || got[0] != "dmenu_run" {
		t.Fatalf("cmd arg = %v", got)
	}
	if cfg.Keys[4].Arg.Str != "tile" {
		t.Fatalf("string arg = %q", cfg.Keys[4].Arg.Str)
	}
}

func TestResolveTag(t *testing.T) {
	cfg := Default()
	cfg.Tags = []string{"web", "code", "misc"}
	if mask, err := cfg.ResolveTag("code"); err != nil || mask != 2 {
		t.Fatalf("by name: mask=%b err=%v", mask, err)
	}
	if mask, err := cfg.ResolveTag("3"); err != nil || mask != 4 {
		t.Fatalf("by number: mask=%b err=%v", mask, err)
	}
	if mask, err := cfg.ResolveTag("all"); err != nil || mask != 7 {
		t.Fatalf("all: mask=%b err=%v", mask, err)
	}
	if _, err := cfg.ResolveTag("4"); err == nil {
		t.Fatalf("out-of-range tag number must fail")
	}
	if _, err := cfg.ResolveTag("nope"); err == nil {
		t.Fatalf("unknown tag name must fail")
	}
}

func TestTagMask(t *testing.T) {
	cfg := Default()
	if cfg.TagMask() != 0x1ff {
		t.Fatalf("mask for 9 tags = %#x", cfg.TagMask())
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/dtwm/config.yaml")
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.MFact != Default().MFact {
		t.Fatalf("expected defaults for a missing file")
	}
}
