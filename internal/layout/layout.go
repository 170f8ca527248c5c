// Package layout computes window geometries for the tiled layouts. The
// functions here are pure: they map a usable screen area and an ordered
// set of clients (represented by their border widths) to rectangles, and
// never talk to the X server.
package layout

// Rect is an on-screen rectangle in pixels. W and H are the interior
// dimensions a client will be resized to; borders come on top of them.
type Rect struct {
	X, Y, W, H int
}

// Tile arranges n clients into a master column and a stack column. The
// first min(nmaster, n) clients share the master column, which spans
// mfact of the area's width when a stack exists; the rest share the
// column to its right. Row heights are recomputed as
// remaining-height / remaining-count per row, so earlier rows round
// down and the last row absorbs the slack. Border widths are
// subtracted twice (both sides) from every assigned dimension.
func Tile(area Rect, borders []int, nmaster int, mfact float64) []Rect {
	n := len(borders)
	if n == 0 {
		return nil
	}
	mw := area.W
	if n > nmaster {
		mw = 0
		if nmaster > 0 {
			mw = int(float64(area.W) * mfact)
		}
	}
	rects := make([]Rect, n)
	my, ty := 0, 0
	for i, bw := range borders {
		if i < nmaster {
			h := (area.H - my) / (min(n, nmaster) - i)
			rects[i] = Rect{
				X: area.X,
				Y: area.Y + my,
				W: mw - 2*bw,
				H: h - 2*bw,
			}
			my += h
		} else {
			h := (area.H - ty) / (n - i)
			rects[i] = Rect{
				X: area.X + mw,
				Y: area.Y + ty,
				W: area.W - mw - 2*bw,
				H: h - 2*bw,
			}
			ty += h
		}
	}
	return rects
}

// Monocle gives every client the full usable area minus its borders.
// Stacking order, not geometry, decides which one is seen.
func Monocle(area Rect, borders []int) []Rect {
	rects := make([]Rect, len(borders))
	for i, bw := range borders {
		rects[i] = Rect{
			X: area.X,
			Y: area.Y,
			W: area.W - 2*bw,
			H: area.H - 2*bw,
		}
	}
	return rects
}
