package state

import (
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
)

func newTestMonitor() *Monitor {
	m := NewMonitor(0, 0.55, 1, true, true, LayoutTile)
	m.MX, m.MY, m.MW, m.MH = 0, 0, 1280, 800
	m.SetBarPos(20)
	return m
}

func addClient(m *Monitor, win xp.Window, tags uint32) *Client {
	c := &Client{Win: win, Tags: tags}
	m.Attach(c)
	m.AttachStack(c)
	return c
}

func TestAttachPrependsArrangement(t *testing.T) {
	m := newTestMonitor()
	a := addClient(m, 1, 1)
	b := addClient(m, 2, 1)
	if m.Clients[0] != b || m.Clients[1] != a {
		t.Fatalf("expected most recently attached client first")
	}
	if a.Mon != m || b.Mon != m {
		t.Fatalf("attach must take ownership of the client")
	}
}

func TestDetachKeepsRelativeOrder(t *testing.T) {
	m := newTestMonitor()
	a := addClient(m, 1, 1)
	b := addClient(m, 2, 1)
	c := addClient(m, 3, 1)
	m.Detach(b)
	if len(m.Clients) != 2 || m.Clients[0] != c || m.Clients[1] != a {
		t.Fatalf("detach changed relative order: %v", m.Clients)
	}
}

func TestDetachAbsentClientPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for detaching an unmanaged client")
		}
	}()
	m := newTestMonitor()
	m.Detach(&Client{})
}

func TestDetachStackReselectsVisible(t *testing.T) {
	m := newTestMonitor()
	hidden := addClient(m, 1, 2) // on tag 2, not visible
	visible := addClient(m, 2, 1)
	sel := addClient(m, 3, 1)
	m.Sel = sel
	m.DetachStack(sel)
	if m.Sel != visible {
		t.Fatalf("expected selection to fall back to the visible client")
	}
	m.Sel = visible
	m.DetachStack(visible)
	if m.Sel != nil {
		t.Fatalf("expected nil selection when nothing visible remains, got %v", m.Sel)
	}
	_ = hidden
}

func TestViewSwapsAndRemembers(t *testing.T) {
	m := newTestMonitor()
	if m.View(1) {
		t.Fatalf("viewing the active tag set must be a no-op")
	}
	if !m.View(4) {
		t.Fatalf("viewing a new tag set must report a change")
	}
	if got := m.TagSet[m.SelTags]; got != 4 {
		t.Fatalf("active tag set = %b, want 100", got)
	}
	// A zero mask flips back to the previous view.
	if !m.View(0) {
		t.Fatalf("zero-mask view must flip to the previous set")
	}
	if got := m.TagSet[m.SelTags]; got != 1 {
		t.Fatalf("active tag set = %b, want 1", got)
	}
}

func TestToggleViewRejectsEmptyResult(t *testing.T) {
	m := newTestMonitor()
	if m.ToggleView(1) {
		t.Fatalf("toggling away the last tag must be rejected")
	}
	if got := m.TagSet[m.SelTags]; got != 1 {
		t.Fatalf("rejected toggle changed state to %b", got)
	}
	if !m.ToggleView(2) {
		t.Fatalf("adding a tag must succeed")
	}
	if got := m.TagSet[m.SelTags]; got != 3 {
		t.Fatalf("active tag set = %b, want 11", got)
	}
}

func TestCycleVisibleWraps(t *testing.T) {
	m := newTestMonitor()
	d := addClient(m, 4, 1)
	hidden := addClient(m, 3, 2)
	b := addClient(m, 2, 1)
	a := addClient(m, 1, 1)
	// Arrangement order is now a, b, hidden, d.
	m.Sel = a
	if got := m.CycleVisible(+1); got != b {
		t.Fatalf("next from head should be the second visible client")
	}
	m.Sel = d
	if got := m.CycleVisible(+1); got != a {
		t.Fatalf("next from tail should wrap to the head")
	}
	m.Sel = a
	if got := m.CycleVisible(-1); got != d {
		t.Fatalf("previous from head should wrap to the tail")
	}
	_ = hidden
}

func TestCycleVisibleNoSelection(t *testing.T) {
	m := newTestMonitor()
	addClient(m, 1, 1)
	if got := m.CycleVisible(+1); got != nil {
		t.Fatalf("expected nil without a selection, got %v", got)
	}
}

func TestPopMovesClientToHead(t *testing.T) {
	m := newTestMonitor()
	a := addClient(m, 1, 1)
	b := addClient(m, 2, 1)
	c := addClient(m, 3, 1)
	m.Pop(a)
	if m.Clients[0] != a || m.Clients[1] != c || m.Clients[2] != b {
		t.Fatalf("pop order wrong: %v", m.Clients)
	}
}

func TestTiledClientsSkipsFloatingAndHidden(t *testing.T) {
	m := newTestMonitor()
	tiled := addClient(m, 1, 1)
	floating := addClient(m, 2, 1)
	floating.IsFloating = true
	addClient(m, 3, 2)
	got := m.TiledClients()
	if len(got) != 1 || got[0] != tiled {
		t.Fatalf("expected only the visible tiled client, got %v", got)
	}
}

func TestSetBarPosTopAndBottom(t *testing.T) {
	m := newTestMonitor()
	if m.WY != 20 || m.WH != 780 || m.BY != 0 {
		t.Fatalf("top bar: wy=%d wh=%d by=%d", m.WY, m.WH, m.BY)
	}
	m.TopBar = false
	m.SetBarPos(20)
	if m.WY != 0 || m.WH != 780 || m.BY != 780 {
		t.Fatalf("bottom bar: wy=%d wh=%d by=%d", m.WY, m.WH, m.BY)
	}
	m.ShowBar = false
	m.SetBarPos(20)
	if m.WH != 800 || m.BY != -20 {
		t.Fatalf("hidden bar: wh=%d by=%d", m.WH, m.BY)
	}
}

func TestIntersectPicksContainingMonitor(t *testing.T) {
	m := newTestMonitor()
	if a := m.Intersect(100, 100, 200, 200); a != 200*200 {
		t.Fatalf("full overlap area = %d", a)
	}
	if a := m.Intersect(1280, 0, 100, 100); a != 0 {
		t.Fatalf("expected zero overlap off the right edge, got %d", a)
	}
	if a := m.Intersect(1230, 100, 100, 100); a != 50*100 {
		t.Fatalf("partial overlap area = %d", a)
	}
}
