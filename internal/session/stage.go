package session

import (
	"image"

	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

// Stage is the processing stage of a session.
type Stage int

const (
	StageEmpty Stage = iota
	StageImageLoaded
	StageEdgesFound
	StagePathBuilt
)

func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageImageLoaded:
		return "image_loaded"
	case StageEdgesFound:
		return "edges_found"
	case StagePathBuilt:
		return "path_built"
	}
	return "unknown"
}

// ArtifactKind says what an Artifact holds.
type ArtifactKind int

const (
	ArtifactNone ArtifactKind = iota
	ArtifactImage
	ArtifactEdges
	ArtifactDrawing
)

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactNone:
		return "none"
	case ArtifactImage:
		return "image"
	case ArtifactEdges:
		return "edges"
	case ArtifactDrawing:
		return "drawing"
	}
	return "unknown"
}

// Artifact is the displayable result of the current stage.
//
// Image is set for every kind except ArtifactNone. Mask is set for
// ArtifactEdges and ArtifactDrawing.
type Artifact struct {
	Kind  ArtifactKind
	Image image.Image
	Mask  *mask.Mask
}

// Empty reports whether there is nothing to display.
func (a Artifact) Empty() bool {
	return a.Kind == ArtifactNone
}
