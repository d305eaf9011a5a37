package mask

import (
	"strings"

	"github.com/pkg/errors"
)

// Path is an ordered sequence of mask coordinates. A Path built from a mask
// visits each of its On cells exactly once.
type Path []Point

// Segment is a straight stroke between two consecutive path points.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Segments returns the consecutive point pairs of the path, which is what
// a renderer draws to turn the path into a single continuous line.
func (p Path) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segs = append(segs, Segment{A: p[i-1], B: p[i]})
	}
	return segs
}

// Jumps counts consecutive pairs that are not 8-adjacent, i.e. the places
// where the single stroke bridges a gap between separate edges.
func (p Path) Jumps() int {
	n := 0
	for i := 1; i < len(p); i++ {
		if !adjacent(p[i-1], p[i]) {
			n++
		}
	}
	return n
}

func adjacent(a, b Point) bool {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}

// dist2 is the squared Euclidean distance between two points.
func dist2(a, b Point) int {
	dr, dc := a.Row-b.Row, a.Col-b.Col
	return dr*dr + dc*dc
}

// Search selects the nearest-neighbor strategy used by BuildPath.
type Search int

const (
	// SearchGrid buckets points into square cells and searches outward in
	// rings, stopping once no unsearched cell can hold a closer point.
	SearchGrid Search = iota
	// SearchLinear scans every unvisited point on each step. It is O(N²)
	// and serves as the reference ordering.
	SearchLinear
)

// DefaultCellSize is the bucket edge length used by SearchGrid.
const DefaultCellSize = 8

func (s Search) String() string {
	switch s {
	case SearchGrid:
		return "grid"
	case SearchLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseSearch converts a strategy name ("grid" or "linear") to a Search.
// The empty string selects SearchGrid.
func ParseSearch(name string) (Search, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "grid":
		return SearchGrid, nil
	case "linear":
		return SearchLinear, nil
	default:
		return SearchGrid, errors.Errorf("unknown search strategy %q", name)
	}
}

type pathOptions struct {
	search   Search
	cellSize int
}

// Option configures BuildPath.
type Option func(*pathOptions)

// WithSearch selects the nearest-neighbor strategy.
func WithSearch(s Search) Option {
	return func(o *pathOptions) {
		o.search = s
	}
}

// WithCellSize sets the SearchGrid bucket size. Values below 1 fall back to
// DefaultCellSize.
func WithCellSize(n int) Option {
	return func(o *pathOptions) {
		o.cellSize = n
	}
}

// nearestFinder yields the closest not-yet-removed point to a query,
// breaking distance ties by the lowest scan index.
type nearestFinder interface {
	nearest(from Point) (int, bool)
	remove(idx int)
}

// BuildPath orders the On cells of m into a single greedy tour.
//
// Points are enumerated in row-major order and the first one seeds the
// path. Each step appends the unvisited point nearest to the current end by
// squared Euclidean distance; among equally near points the one earliest in
// scan order wins. The result is a permutation of m.Points().
//
// A nil mask yields an error wrapping ErrInvalidState. A mask with no On
// cells yields an empty Path.
func BuildPath(m *Mask, opts ...Option) (Path, error) {
	if m == nil {
		return nil, errNoMaskToTrace
	}

	o := pathOptions{search: SearchGrid, cellSize: DefaultCellSize}
	for _, opt := range opts {
		opt(&o)
	}

	pts := m.Points()
	path := make(Path, 0, len(pts))
	if len(pts) == 0 {
		return path, nil
	}

	var finder nearestFinder
	switch o.search {
	case SearchLinear:
		finder = newLinearFinder(pts)
	default:
		finder = newGridFinder(pts, m.Width, m.Height, o.cellSize)
	}

	cur := 0
	finder.remove(cur)
	path = append(path, pts[cur])

	for len(path) < len(pts) {
		next, ok := finder.nearest(pts[cur])
		if !ok {
			break
		}
		finder.remove(next)
		path = append(path, pts[next])
		cur = next
	}

	return path, nil
}

type linearFinder struct {
	pts     []Point
	visited []bool
}

func newLinearFinder(pts []Point) *linearFinder {
	return &linearFinder{pts: pts, visited: make([]bool, len(pts))}
}

func (f *linearFinder) remove(idx int) {
	f.visited[idx] = true
}

func (f *linearFinder) nearest(from Point) (int, bool) {
	best, bestD := -1, 0
	for i, p := range f.pts {
		if f.visited[i] {
			continue
		}
		// Strict less keeps the earliest index on ties.
		if d := dist2(from, p); best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}
