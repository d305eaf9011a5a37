// Package session holds the editing state of one image as it moves through
// the line-tracing pipeline.
//
// A Session is always in exactly one Stage:
//
//	Empty → ImageLoaded → EdgesFound → PathBuilt
//
// Loading or cropping returns to ImageLoaded, detecting edges moves to
// EdgesFound, and edits to the edge mask drop any built path. Display maps
// every stage to the artifact a viewer should show, so callers never need
// to check which fields are set.
//
// Methods are safe for concurrent use; calls on one session are serialised.
package session
