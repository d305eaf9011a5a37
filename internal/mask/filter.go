package mask

// Labeling assigns every On cell of a mask to an 8-connected component.
//
// Labels has one entry per cell: 0 for background, otherwise a component
// label in 1..len(Areas)-1. Labels are numbered in the scan order of each
// component's first cell. Areas[l] is the pixel count of component l;
// Areas[0] is always 0 so background never counts as a component.
type Labeling struct {
	Labels []int32
	Areas  []int
}

// Components returns the number of labelled components.
func (l Labeling) Components() int {
	return len(l.Areas) - 1
}

// Label computes the 8-connected components of m in a single pass over
// the grid. Each unlabelled On cell starts an iterative flood fill, so the
// whole pass is O(Width·Height).
func Label(m *Mask) Labeling {
	labels := make([]int32, len(m.Pix))
	areas := []int{0}
	stack := make([]int, 0, 64)

	for start, v := range m.Pix {
		if v == Off || labels[start] != 0 {
			continue
		}

		label := int32(len(areas))
		area := 0
		labels[start] = label
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			row, col := idx/m.Width, idx%m.Width

			// 8-connected neighbors
			for dr := -1; dr <= 1; dr++ {
				r := row + dr
				if r < 0 || r >= m.Height {
					continue
				}
				for dc := -1; dc <= 1; dc++ {
					c := col + dc
					if (dr == 0 && dc == 0) || c < 0 || c >= m.Width {
						continue
					}
					n := r*m.Width + c
					if m.Pix[n] != Off && labels[n] == 0 {
						labels[n] = label
						stack = append(stack, n)
					}
				}
			}
		}

		areas = append(areas, area)
	}

	return Labeling{Labels: labels, Areas: areas}
}

// FilterSmallComponents returns a new mask keeping only the On cells whose
// 8-connected component has at least minSize pixels. Components with area
// exactly minSize are kept. Background is never altered, and the input
// mask is not modified.
//
// A nil mask yields an error wrapping ErrInvalidState. A mask with no On
// cells filters to an equal, empty mask.
func FilterSmallComponents(m *Mask, minSize int) (*Mask, error) {
	out, _, err := FilterSmallComponentsWithStats(m, minSize)
	return out, err
}

// FilterStats summarizes one FilterSmallComponents pass.
type FilterStats struct {
	Components        int `json:"components"`
	RemovedComponents int `json:"removed_components"`
	RemovedPixels     int `json:"removed_pixels"`
	KeptPixels        int `json:"kept_pixels"`
}

// FilterSmallComponentsWithStats is FilterSmallComponents that also
// reports how many components and pixels were dropped.
func FilterSmallComponentsWithStats(m *Mask, minSize int) (*Mask, FilterStats, error) {
	if m == nil {
		return nil, FilterStats{}, errNoMaskToFilter
	}

	lab := Label(m)
	keep := make([]bool, len(lab.Areas))
	stats := FilterStats{Components: lab.Components()}
	for l := 1; l < len(lab.Areas); l++ {
		if lab.Areas[l] >= minSize {
			keep[l] = true
			stats.KeptPixels += lab.Areas[l]
		} else {
			stats.RemovedComponents++
			stats.RemovedPixels += lab.Areas[l]
		}
	}

	out := New(m.Width, m.Height)
	for i, l := range lab.Labels {
		if l != 0 && keep[l] {
			out.Pix[i] = On
		}
	}
	return out, stats, nil
}
