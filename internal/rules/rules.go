// Package rules compiles the configured client rules and applies them
// to newly managed windows. Rules run exactly once per client, at
// manage time.
package rules

import (
	"strings"

	"github.com/dtwm/dtwm/internal/config"
)

// Rule is a compiled matcher. Empty fields match anything.
type Rule struct {
	Class    string
	Instance string
	Title    string
	Tags     uint32
	Floating bool
	Monitor  int
}

// Result is the placement decision for one client.
type Result struct {
	Tags     uint32
	Floating bool
	// Monitor is a monitor index, or -1 for the current monitor.
	Monitor int
}

// Compile resolves tag names against the configured tag list. The
// config must already have been validated.
func Compile(cfg *config.Config) []Rule {
	out := make([]Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		r := Rule{
			Class:    rc.Class,
			Instance: rc.Instance,
			Title:    rc.Title,
			Floating: rc.Floating,
			Monitor:  -1,
		}
		if rc.Monitor != nil {
			r.Monitor = *rc.Monitor
		}
		for _, t := range rc.Tags {
			mask, err := cfg.ResolveTag(t)
			if err != nil {
				continue
			}
			r.Tags |= mask
		}
		out = append(out, r)
	}
	return out
}

// Apply matches a client's class, instance, and title against every
// rule. Matching rules OR their tag masks together and the last
// matching rule wins for the floating flag and monitor preference.
// Monitor is -1 when no rule states a preference.
func Apply(rules []Rule, class, instance, title string) Result {
	res := Result{Monitor: -1}
	for _, r := range rules {
		if !matches(r, class, instance, title) {
			continue
		}
		res.Tags |= r.Tags
		res.Floating = r.Floating
		if r.Monitor >= 0 {
			res.Monitor = r.Monitor
		}
	}
	return res
}

func matches(r Rule, class, instance, title string) bool {
	return (r.Title == "" || strings.Contains(title, r.Title)) &&
		(r.Class == "" || strings.Contains(class, r.Class)) &&
		(r.Instance == "" || strings.Contains(instance, r.Instance))
}
