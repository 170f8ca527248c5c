package state

import (
	"strings"
	"testing"
)

func TestSetTagsRejectsZero(t *testing.T) {
	c := &Client{Tags: 1}
	if c.SetTags(0) {
		t.Fatalf("zero tag mask must be rejected")
	}
	if c.Tags != 1 {
		t.Fatalf("rejected retag changed tags to %b", c.Tags)
	}
	if !c.SetTags(6) {
		t.Fatalf("nonzero retag must succeed")
	}
	if c.Tags != 6 {
		t.Fatalf("tags = %b, want 110", c.Tags)
	}
}

func TestToggleTagsRejectsEmptyResult(t *testing.T) {
	c := &Client{Tags: 2}
	if c.ToggleTags(2) {
		t.Fatalf("toggling away the last tag must be rejected")
	}
	if c.Tags != 2 {
		t.Fatalf("rejected toggle changed tags to %b", c.Tags)
	}
	if !c.ToggleTags(5) {
		t.Fatalf("toggle with a surviving bit must succeed")
	}
	if c.Tags != 7 {
		t.Fatalf("tags = %b, want 111", c.Tags)
	}
}

func TestSetNameTruncates(t *testing.T) {
	c := &Client{}
	c.SetName(strings.Repeat("x", MaxNameLen+40))
	if len(c.Name) != MaxNameLen {
		t.Fatalf("name length = %d, want %d", len(c.Name), MaxNameLen)
	}
}

func TestIsVisibleFollowsActiveTagSet(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 2)
	if c.IsVisible() {
		t.Fatalf("client on tag 2 must not be visible under tag 1")
	}
	m.View(2)
	if !c.IsVisible() {
		t.Fatalf("client must be visible after viewing its tag")
	}
}

func TestUpdateFixed(t *testing.T) {
	c := &Client{}
	c.Hints = Hints{MinW: 300, MinH: 200, MaxW: 300, MaxH: 200}
	c.UpdateFixed()
	if !c.IsFixed {
		t.Fatalf("equal min and max dimensions must mark the client fixed")
	}
	c.Hints.MaxW = 400
	c.UpdateFixed()
	if c.IsFixed {
		t.Fatalf("resizable client wrongly marked fixed")
	}
}

func TestApplySizeHintsClampsToMonitor(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 1)
	c.Geom = Geom{X: 0, Y: 0, W: 400, H: 300, BW: 2}

	x, _, _, _, _ := c.ApplySizeHints(5000, 100, 400, 300, false, 1280, 800, 20, false, false)
	if x != m.WX+m.WW-c.TotalW() {
		t.Fatalf("x = %d, want clamped against the right edge", x)
	}
	x, y, _, _, _ := c.ApplySizeHints(-1000, -1000, 400, 300, false, 1280, 800, 20, false, false)
	if x != m.WX || y != m.WY {
		t.Fatalf("got (%d,%d), want the work-area origin", x, y)
	}
}

func TestApplySizeHintsMinimumDimension(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 1)
	_, _, w, h, _ := c.ApplySizeHints(10, 30, 3, 3, false, 1280, 800, 20, false, false)
	if w != 20 || h != 20 {
		t.Fatalf("got %dx%d, want the 20px floor on both sides", w, h)
	}
}

func TestApplySizeHintsIncrementAndBounds(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 1)
	c.IsFloating = true
	c.Hints = Hints{BaseW: 10, BaseH: 10, IncW: 7, IncH: 7, MinW: 100, MinH: 100, MaxW: 500, MaxH: 500}

	_, _, w, h, _ := c.ApplySizeHints(50, 50, 333, 333, false, 1280, 800, 20, false, false)
	if (w-10)%7 != 0 || (h-10)%7 != 0 {
		t.Fatalf("%dx%d does not sit on the increment grid", w, h)
	}
	_, _, w, h, _ = c.ApplySizeHints(50, 50, 30, 30, false, 1280, 800, 20, false, false)
	if w != 100 || h != 100 {
		t.Fatalf("got %dx%d, want the 100px minimum", w, h)
	}
	_, _, w, h, _ = c.ApplySizeHints(50, 50, 900, 900, false, 1280, 800, 20, false, false)
	if w != 500 || h != 500 {
		t.Fatalf("got %dx%d, want the 500px maximum", w, h)
	}
}

func TestApplySizeHintsSkippedWhenTiled(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 1)
	c.Hints = Hints{IncW: 100, IncH: 100, MinW: 500, MinH: 500}
	_, _, w, h, _ := c.ApplySizeHints(0, 20, 633, 377, false, 1280, 800, 20, false, false)
	if w != 633 || h != 377 {
		t.Fatalf("tiled resize must ignore hints, got %dx%d", w, h)
	}
}

func TestApplySizeHintsReportsChange(t *testing.T) {
	m := newTestMonitor()
	c := addClient(m, 1, 1)
	c.Geom = Geom{X: 100, Y: 100, W: 400, H: 300}
	if _, _, _, _, changed := c.ApplySizeHints(100, 100, 400, 300, false, 1280, 800, 20, false, false); changed {
		t.Fatalf("identical geometry must not report a change")
	}
	if _, _, _, _, changed := c.ApplySizeHints(100, 100, 401, 300, false, 1280, 800, 20, false, false); !changed {
		t.Fatalf("different geometry must report a change")
	}
}
