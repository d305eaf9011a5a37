package session

import (
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ironsheep/line-trace-mcp/internal/imaging"
	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

var (
	errNoImageLoaded  = errors.Wrap(mask.ErrInvalidState, "no image loaded")
	errNoEdges        = errors.Wrap(mask.ErrInvalidState, "no edges detected")
	errNoImageToSave  = errors.Wrap(mask.ErrInvalidState, "no image to save")
	errNothingToTrace = errors.Wrap(mask.ErrInvalidState, "no edges to vectorize")
)

// Session is the editing state of one image.
type Session struct {
	// ID is a random UUID assigned at creation.
	ID string

	// Created is the creation time.
	Created time.Time

	mu       sync.Mutex
	source   string
	original image.Image
	current  image.Image
	edges    *mask.Mask
	path     mask.Path
	drawing  *mask.Mask
	rendered image.Image
	stage    Stage
}

// New returns an empty session with a fresh ID.
func New() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Created: time.Now(),
	}
}

// Stage returns the current stage.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Source returns the path the image was loaded from, if any.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Size returns the dimensions of the current image, or zeros when empty.
func (s *Session) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0, 0
	}
	b := s.current.Bounds()
	return b.Dx(), b.Dy()
}

// Path returns the built path, or nil before BuildLineDrawing.
func (s *Session) Path() mask.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Edges returns a copy of the edge mask, or nil before FindEdges.
func (s *Session) Edges() *mask.Mask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edges == nil {
		return nil
	}
	return s.edges.Clone()
}

// Load replaces the session image. source is recorded for reporting only.
func (s *Session) Load(img image.Image, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.source = source
	s.original = img
	s.current = img
	s.dropEdges()
	s.stage = StageImageLoaded
}

// Crop crops the current image to the rectangle spanned by the two corners.
// Edges and any built path are discarded since they no longer line up with
// the image.
func (s *Session) Crop(x1, y1, x2, y2 int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return errNoImageLoaded
	}
	cropped, err := imaging.Crop(s.current, x1, y1, x2, y2)
	if err != nil {
		return err
	}
	s.current = cropped
	s.dropEdges()
	s.stage = StageImageLoaded
	return nil
}

// FindEdges runs edge detection on the current image and returns the
// number of edge pixels found.
func (s *Session) FindEdges(low, high int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return 0, errNoImageLoaded
	}
	s.dropEdges()
	s.edges = mask.FromGray(imaging.DetectEdges(s.current, low, high))
	s.stage = StageEdgesFound
	return s.edges.Count(), nil
}

// ClearEdgeRegion turns off every edge pixel in the rectangle spanned by the
// two corners and returns the remaining edge count.
func (s *Session) ClearEdgeRegion(x1, y1, x2, y2 int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.edges == nil {
		return 0, errNoEdges
	}
	mask.ClearRegion(s.edges, x1, y1, x2, y2)
	s.dropPath()
	return s.edges.Count(), nil
}

// RemoveSmallEdges drops edge components with fewer than minSize pixels.
func (s *Session) RemoveSmallEdges(minSize int) (mask.FilterStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered, stats, err := mask.FilterSmallComponentsWithStats(s.edges, minSize)
	if err != nil {
		return stats, err
	}
	s.edges = filtered
	s.dropPath()
	return stats, nil
}

// DrawOptions controls BuildLineDrawing.
type DrawOptions struct {
	Search   mask.Search
	CellSize int
	Stroke   imaging.Stroke
}

// DrawingStats summarises a built line drawing.
type DrawingStats struct {
	Points      int    `json:"points"`
	Segments    int    `json:"segments"`
	Jumps       int    `json:"jumps"`
	Search      string `json:"search"`
	DrawnPixels int    `json:"drawn_pixels"`
}

// BuildLineDrawing orders the edge pixels into a single path and renders it
// as a connected line drawing.
func (s *Session) BuildLineDrawing(opts DrawOptions) (DrawingStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats DrawingStats

	buildOpts := []mask.Option{mask.WithSearch(opts.Search)}
	if opts.CellSize > 0 {
		buildOpts = append(buildOpts, mask.WithCellSize(opts.CellSize))
	}
	path, err := mask.BuildPath(s.edges, buildOpts...)
	if err != nil {
		return stats, err
	}

	rendered, err := imaging.RenderPath(path, s.edges.Width, s.edges.Height, opts.Stroke)
	if err != nil {
		return stats, err
	}
	drawing, err := imaging.RenderPathMask(path, s.edges.Width, s.edges.Height, opts.Stroke.Width)
	if err != nil {
		return stats, err
	}

	s.path = path
	s.rendered = rendered
	s.drawing = drawing
	s.stage = StagePathBuilt

	return DrawingStats{
		Points:      len(path),
		Segments:    len(path.Segments()),
		Jumps:       path.Jumps(),
		Search:      opts.Search.String(),
		DrawnPixels: drawing.Count(),
	}, nil
}

// Display returns the artifact for the current stage.
func (s *Session) Display() Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display()
}

func (s *Session) display() Artifact {
	switch s.stage {
	case StagePathBuilt:
		return Artifact{Kind: ArtifactDrawing, Image: s.rendered, Mask: s.drawing}
	case StageEdgesFound:
		return Artifact{Kind: ArtifactEdges, Image: s.edges.Gray(), Mask: s.edges}
	case StageImageLoaded:
		return Artifact{Kind: ArtifactImage, Image: s.current}
	}
	return Artifact{Kind: ArtifactNone}
}

// Save writes the displayed artifact to path.
func (s *Session) Save(path string) (Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.display()
	if a.Empty() {
		return a, errNoImageToSave
	}
	return a, imaging.Save(a.Image, path)
}

// ExportSVG vectorizes the line drawing, or the edge mask when no drawing
// has been built.
func (s *Session) ExportSVG() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stage {
	case StagePathBuilt:
		return imaging.TraceSVG(s.drawing)
	case StageEdgesFound:
		return imaging.TraceSVG(s.edges)
	}
	return "", errNothingToTrace
}

// Reset discards crops, edges and drawings and returns to the image as
// loaded. It does nothing on an empty session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.original == nil {
		return
	}
	s.current = s.original
	s.dropEdges()
	s.stage = StageImageLoaded
}

func (s *Session) dropEdges() {
	s.edges = nil
	s.path = nil
	s.drawing = nil
	s.rendered = nil
}

// dropPath returns to EdgesFound after an edit to the edge mask.
func (s *Session) dropPath() {
	s.path = nil
	s.drawing = nil
	s.rendered = nil
	s.stage = StageEdgesFound
}
