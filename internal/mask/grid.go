package mask

// gridFinder buckets points into cellSize×cellSize cells. A query visits
// cells in square rings of growing Chebyshev distance around the query's
// cell and stops once the nearest possible point of the next ring is
// strictly farther than the best match, so equally distant points in
// later rings still get a chance to win the scan-order tie-break.
type gridFinder struct {
	pts       []Point
	removed   []bool
	buckets   [][]int
	cellSize  int
	rows      int
	cols      int
	remaining int
}

func newGridFinder(pts []Point, width, height, cellSize int) *gridFinder {
	if cellSize < 1 {
		cellSize = DefaultCellSize
	}
	rows := (height + cellSize - 1) / cellSize
	cols := (width + cellSize - 1) / cellSize
	g := &gridFinder{
		pts:       pts,
		removed:   make([]bool, len(pts)),
		buckets:   make([][]int, rows*cols),
		cellSize:  cellSize,
		rows:      rows,
		cols:      cols,
		remaining: len(pts),
	}
	// pts arrive in scan order, so every bucket stays sorted by index.
	for i, p := range pts {
		c := g.cellOf(p)
		g.buckets[c] = append(g.buckets[c], i)
	}
	return g
}

func (g *gridFinder) cellOf(p Point) int {
	return (p.Row/g.cellSize)*g.cols + p.Col/g.cellSize
}

func (g *gridFinder) remove(idx int) {
	if !g.removed[idx] {
		g.removed[idx] = true
		g.remaining--
	}
}

func (g *gridFinder) nearest(from Point) (int, bool) {
	if g.remaining == 0 {
		return -1, false
	}

	cr, cc := from.Row/g.cellSize, from.Col/g.cellSize
	maxRing := max(cr, g.rows-1-cr, cc, g.cols-1-cc)

	best, bestD := -1, 0
	for k := 0; k <= maxRing; k++ {
		if best >= 0 && k > 0 {
			gap := (k-1)*g.cellSize + 1
			if gap*gap > bestD {
				break
			}
		}
		for r := cr - k; r <= cr+k; r++ {
			if r < 0 || r >= g.rows {
				continue
			}
			if r == cr-k || r == cr+k {
				for c := cc - k; c <= cc+k; c++ {
					best, bestD = g.scan(r, c, from, best, bestD)
				}
				continue
			}
			best, bestD = g.scan(r, cc-k, from, best, bestD)
			if k > 0 {
				best, bestD = g.scan(r, cc+k, from, best, bestD)
			}
		}
	}
	return best, best >= 0
}

// scan compares every live point of cell (r, c) against the current best,
// compacting removed points out of the bucket as it goes.
func (g *gridFinder) scan(r, c int, from Point, best, bestD int) (int, int) {
	if c < 0 || c >= g.cols {
		return best, bestD
	}
	ci := r*g.cols + c
	b := g.buckets[ci]
	n := 0
	for _, idx := range b {
		if g.removed[idx] {
			continue
		}
		b[n] = idx
		n++
		d := dist2(from, g.pts[idx])
		if best < 0 || d < bestD || (d == bestD && idx < best) {
			best, bestD = idx, d
		}
	}
	g.buckets[ci] = b[:n]
	return best, bestD
}
