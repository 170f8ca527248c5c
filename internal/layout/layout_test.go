package layout

import (
	"reflect"
	"testing"
)

func TestTileMasterAndStack(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 1280, H: 800}
	got := Tile(area, []int{2, 2, 2}, 1, 0.55)
	want := []Rect{
		{X: 0, Y: 0, W: 700, H: 796},
		{X: 704, Y: 0, W: 572, H: 396},
		{X: 704, Y: 400, W: 572, H: 396},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tile geometry mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestTileSingleClientFillsArea(t *testing.T) {
	area := Rect{X: 10, Y: 20, W: 1000, H: 600}
	got := Tile(area, []int{1}, 1, 0.55)
	want := []Rect{{X: 10, Y: 20, W: 998, H: 598}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTileAllClientsInMaster(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 800, H: 900}
	got := Tile(area, []int{0, 0, 0}, 5, 0.5)
	for i, r := range got {
		if r.W != 800 {
			t.Fatalf("client %d: width %d, want full 800", i, r.W)
		}
		if r.X != 0 {
			t.Fatalf("client %d: x %d, want 0", i, r.X)
		}
	}
	if got[0].H+got[1].H+got[2].H != 900 {
		t.Fatalf("master rows do not cover the area: %v", got)
	}
}

func TestTileZeroMasterUsesFullWidthStack(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 640, H: 480}
	got := Tile(area, []int{0, 0}, 0, 0.55)
	for i, r := range got {
		if r.X != 0 || r.W != 640 {
			t.Fatalf("client %d: got %v, want full-width stack column", i, r)
		}
	}
}

func TestTileRowsCoverHeightExactly(t *testing.T) {
	area := Rect{X: 0, Y: 0, W: 1920, H: 1077}
	for n := 1; n <= 7; n++ {
		borders := make([]int, n)
		got := Tile(area, borders, 2, 0.6)
		my, ty := 0, 0
		for i, r := range got {
			if i < 2 {
				my += r.H
			} else {
				ty += r.H
			}
		}
		if my != area.H {
			t.Fatalf("n=%d: master rows sum to %d, want %d", n, my, area.H)
		}
		if n > 2 && ty != area.H {
			t.Fatalf("n=%d: stack rows sum to %d, want %d", n, ty, area.H)
		}
	}
}

func TestTileEmpty(t *testing.T) {
	if got := Tile(Rect{W: 100, H: 100}, nil, 1, 0.5); got != nil {
		t.Fatalf("expected nil for zero clients, got %v", got)
	}
}

func TestMonocleEveryClientFullArea(t *testing.T) {
	area := Rect{X: 5, Y: 25, W: 1280, H: 775}
	got := Monocle(area, []int{2, 0, 3})
	want := []Rect{
		{X: 5, Y: 25, W: 1276, H: 771},
		{X: 5, Y: 25, W: 1280, H: 775},
		{X: 5, Y: 25, W: 1274, H: 769},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
