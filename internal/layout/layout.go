package layout

type Dim struct{ X, Y int }

type Serpentine struct {
	XFlipEveryRow bool
}

// Layout describes a flat LED matrix wired row after row.
type Layout struct {
	Dim   Dim
	Order Serpentine
}

// WordClock is the 12 x 10 face: row 0 runs 0..11, row 1 runs back 23..12,
// and so on.
func WordClock() Layout {
	return Layout{
		Dim:   Dim{X: 12, Y: 10},
		Order: Serpentine{XFlipEveryRow: true},
	}
}

// Index maps x,y -> linear LED index (0..N-1)
func (l Layout) Index(x, y int) int {
	xx := x
	if (y%2 == 1) && l.Order.XFlipEveryRow {
		xx = l.Dim.X - 1 - x
	}
	return y*l.Dim.X + xx
}

// Coord is the inverse of Index.
func (l Layout) Coord(i int) (x, y int) {
	y = i / l.Dim.X
	x = i % l.Dim.X
	if (y%2 == 1) && l.Order.XFlipEveryRow {
		x = l.Dim.X - 1 - x
	}
	return x, y
}

func (l Layout) Count() int {
	return l.Dim.X * l.Dim.Y
}

// Rings returns the concentric rectangles of the matrix, outermost first.
// Ring k holds every cell whose distance to the nearest edge is k.
func (l Layout) Rings() [][]int {
	n := min(l.Dim.X, l.Dim.Y)
	rings := make([][]int, (n+1)/2)
	for y := 0; y < l.Dim.Y; y++ {
		for x := 0; x < l.Dim.X; x++ {
			d := min(min(x, l.Dim.X-1-x), min(y, l.Dim.Y-1-y))
			rings[d] = append(rings[d], l.Index(x, y))
		}
	}
	return rings
}

// Spiral walks every cell once, starting top right: left along the top
// row, down the left column, right along the bottom row, up the right
// column, then the same on the next rectangle in.
func (l Layout) Spiral() []int {
	out := make([]int, 0, l.Count())
	top, bottom := 0, l.Dim.Y-1
	left, right := 0, l.Dim.X-1
	for top <= bottom && left <= right {
		for x := right; x >= left; x-- {
			out = append(out, l.Index(x, top))
		}
		for y := top + 1; y <= bottom; y++ {
			out = append(out, l.Index(left, y))
		}
		if top < bottom {
			for x := left + 1; x <= right; x++ {
				out = append(out, l.Index(x, bottom))
			}
		}
		if left < right {
			for y := bottom - 1; y > top; y-- {
				out = append(out, l.Index(right, y))
			}
		}
		top++
		bottom--
		left++
		right--
	}
	return out
}
