package rules

import (
	"testing"

	"github.com/dtwm/dtwm/internal/config"
)

func testConfig(rules ...config.RuleConfig) *config.Config {
	cfg := config.Default()
	cfg.Rules = rules
	return cfg
}

func TestApplyNoRules(t *testing.T) {
	res := Apply(nil, "Firefox", "Navigator", "Mozilla Firefox")
	if res.Tags != 0 || res.Floating || res.Monitor != -1 {
		t.Fatalf("expected the empty result, got %+v", res)
	}
}

func TestApplyMatchesSubstrings(t *testing.T) {
	rules := Compile(testConfig(
		config.RuleConfig{Class: "fox", Tags: []string{"2"}},
	))
	res := Apply(rules, "Firefox", "Navigator", "")
	if res.Tags != 2 {
		t.Fatalf("substring class match failed: %+v", res)
	}
	res = Apply(rules, "Chromium", "chromium", "")
	if res.Tags != 0 {
		t.Fatalf("non-matching class wrongly matched: %+v", res)
	}
}

func TestApplyAllFieldsMustMatch(t *testing.T) {
	rules := Compile(testConfig(
		config.RuleConfig{Class: "Gimp", Title: "Toolbox", Floating: true},
	))
	if res := Apply(rules, "Gimp", "gimp", "Layers"); res.Floating {
		t.Fatalf("rule matched despite a non-matching title")
	}
	if res := Apply(rules, "Gimp", "gimp", "Toolbox - Gimp"); !res.Floating {
		t.Fatalf("rule failed to match on all fields")
	}
}

func TestApplyTagsAccumulateAcrossRules(t *testing.T) {
	rules := Compile(testConfig(
		config.RuleConfig{Class: "term", Tags: []string{"1"}},
		config.RuleConfig{Instance: "scratch", Tags: []string{"9"}},
	))
	res := Apply(rules, "xterm", "scratchpad", "")
	if res.Tags != 1|1<<8 {
		t.Fatalf("tags = %b, want the union of both rules", res.Tags)
	}
}

func TestApplyLastMatchWinsForPlacement(t *testing.T) {
	one := 1
	rules := Compile(testConfig(
		config.RuleConfig{Class: "mpv", Floating: true, Monitor: &one},
		config.RuleConfig{Title: "fullscreen", Floating: false},
	))
	res := Apply(rules, "mpv", "gl", "mpv fullscreen")
	if res.Floating {
		t.Fatalf("later matching rule must win the floating flag")
	}
	if res.Monitor != 1 {
		t.Fatalf("monitor preference must survive later silent rules, got %d", res.Monitor)
	}
}

func TestCompileDefaultsMonitorToCurrent(t *testing.T) {
	rules := Compile(testConfig(config.RuleConfig{Class: "x"}))
	if rules[0].Monitor != -1 {
		t.Fatalf("unset monitor must compile to -1, got %d", rules[0].Monitor)
	}
}
