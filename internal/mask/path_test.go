package mask

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildPath_NilMask(t *testing.T) {
	for _, s := range []Search{SearchGrid, SearchLinear} {
		t.Run(s.String(), func(t *testing.T) {
			_, err := BuildPath(nil, WithSearch(s))
			if err == nil {
				t.Fatal("expected error for nil mask")
			}
			if !errors.Is(err, ErrInvalidState) {
				t.Errorf("error should wrap ErrInvalidState, got %v", err)
			}
			if !strings.Contains(err.Error(), "no mask to trace") {
				t.Errorf("error message: got %q", err.Error())
			}
		})
	}
}

func TestBuildPath_EmptyMask(t *testing.T) {
	path, err := BuildPath(New(8, 8))
	if err != nil {
		t.Fatalf("empty mask should not error: %v", err)
	}
	if len(path) != 0 {
		t.Errorf("expected empty path, got %v", path)
	}
	if path == nil {
		t.Error("empty path should be non-nil so it encodes as []")
	}
}

func TestBuildPath_TwoPoints(t *testing.T) {
	m := FromPoints(8, 2, Point{0, 0}, Point{0, 5})

	path, err := BuildPath(m)
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	want := Path{{0, 0}, {0, 5}}
	if diff := cmp.Diff(want, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPath_SeedIsFirstInScanOrder(t *testing.T) {
	m := FromPoints(10, 10, Point{9, 0}, Point{4, 7}, Point{4, 2})

	path, err := BuildPath(m)
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	if path[0] != (Point{4, 2}) {
		t.Errorf("seed: got %v, want (4,2)", path[0])
	}
}

func TestBuildPath_TieBreakByScanOrder(t *testing.T) {
	// A plus shape with arm length 2 forces equal-distance choices.
	m := FromPoints(5, 5,
		Point{0, 2},
		Point{2, 0}, Point{2, 2}, Point{2, 4},
		Point{4, 2},
	)

	tests := []struct {
		name     string
		search   Search
		cellSize int
	}{
		{"linear", SearchLinear, 0},
		{"grid", SearchGrid, DefaultCellSize},
		{"grid cell 1", SearchGrid, 1},
	}

	// Seed (0,2). Nearest: (2,2) d=4. From (2,2): (2,0),(2,4),(4,2) all d=4,
	// earliest is (2,0). From (2,0): (2,4) d=16, (4,2) d=8 -> (4,2). Last (2,4).
	want := Path{{0, 2}, {2, 2}, {2, 0}, {4, 2}, {2, 4}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := BuildPath(m, WithSearch(tt.search), WithCellSize(tt.cellSize))
			if err != nil {
				t.Fatalf("BuildPath failed: %v", err)
			}
			if diff := cmp.Diff(want, path); diff != "" {
				t.Errorf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildPath_IsPermutation(t *testing.T) {
	m := randomMask(7, 60, 40, 0.1)

	path, err := BuildPath(m)
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}

	want := m.Points()
	if len(path) != len(want) {
		t.Fatalf("length: got %d, want %d", len(path), len(want))
	}

	got := append(Path(nil), path...)
	sort.Slice(got, func(i, j int) bool {
		if got[i].Row != got[j].Row {
			return got[i].Row < got[j].Row
		}
		return got[i].Col < got[j].Col
	})
	if diff := cmp.Diff(want, []Point(got)); diff != "" {
		t.Errorf("path is not a permutation of the on pixels (-want +got):\n%s", diff)
	}
}

func TestBuildPath_Deterministic(t *testing.T) {
	m := randomMask(11, 50, 50, 0.08)

	first, err := BuildPath(m)
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	second, err := BuildPath(m.Clone())
	if err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two runs differ (-first +second):\n%s", diff)
	}
}

func TestBuildPath_GridMatchesLinear(t *testing.T) {
	tests := []struct {
		seed          int64
		width, height int
		density       float64
		cellSize      int
	}{
		{1, 30, 30, 0.05, DefaultCellSize},
		{2, 64, 48, 0.02, DefaultCellSize},
		{3, 17, 91, 0.3, 3},
		{4, 100, 10, 0.01, 1},
		{5, 40, 40, 0.5, 16},
		{6, 1, 50, 0.4, DefaultCellSize},
		{7, 123, 77, 0.004, 5},
	}

	for _, tt := range tests {
		m := randomMask(tt.seed, tt.width, tt.height, tt.density)

		linear, err := BuildPath(m, WithSearch(SearchLinear))
		if err != nil {
			t.Fatalf("linear BuildPath failed: %v", err)
		}
		grid, err := BuildPath(m, WithSearch(SearchGrid), WithCellSize(tt.cellSize))
		if err != nil {
			t.Fatalf("grid BuildPath failed: %v", err)
		}
		if diff := cmp.Diff(linear, grid); diff != "" {
			t.Errorf("seed %d: grid search diverges from linear (-linear +grid):\n%s", tt.seed, diff)
		}
	}
}

func TestBuildPath_GridMatchesLinearOnLattice(t *testing.T) {
	// A regular lattice produces many exact distance ties.
	m := New(33, 33)
	for r := 0; r < m.Height; r += 4 {
		for c := 0; c < m.Width; c += 4 {
			m.Set(r, c, true)
		}
	}

	linear, err := BuildPath(m, WithSearch(SearchLinear))
	if err != nil {
		t.Fatalf("linear BuildPath failed: %v", err)
	}
	for _, cell := range []int{1, 2, 3, 4, 8} {
		grid, err := BuildPath(m, WithCellSize(cell))
		if err != nil {
			t.Fatalf("grid BuildPath failed: %v", err)
		}
		if diff := cmp.Diff(linear, grid); diff != "" {
			t.Errorf("cell %d: grid search diverges from linear (-linear +grid):\n%s", cell, diff)
		}
	}
}

func TestPath_SegmentsAndJumps(t *testing.T) {
	p := Path{{0, 0}, {0, 1}, {1, 2}, {5, 5}}

	segs := p.Segments()
	want := []Segment{
		{A: Point{0, 0}, B: Point{0, 1}},
		{A: Point{0, 1}, B: Point{1, 2}},
		{A: Point{1, 2}, B: Point{5, 5}},
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}

	if got := p.Jumps(); got != 1 {
		t.Errorf("Jumps: got %d, want 1", got)
	}

	if got := (Path{{3, 3}}).Segments(); got != nil {
		t.Errorf("single point path should have no segments, got %v", got)
	}
}

func TestParseSearch(t *testing.T) {
	tests := []struct {
		in      string
		want    Search
		wantErr bool
	}{
		{"", SearchGrid, false},
		{"grid", SearchGrid, false},
		{"Linear", SearchLinear, false},
		{" linear ", SearchLinear, false},
		{"kdtree", SearchGrid, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSearch(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSearch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSearch(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
