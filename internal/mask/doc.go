// Package mask implements the binary-mask operations behind the line-drawing
// pipeline: small-component removal, greedy single-stroke path construction,
// and rectangular region clearing.
//
// # Mask Layout
//
// A Mask is a Height × Width grid stored row-major in Pix. Every cell is
// either On (255) or Off (0). Coordinates are addressed as (row, col) via
// Point; rectangle operations take image-style x (column) and y (row)
// arguments so they line up with pointer coordinates from a display.
//
// # Absent vs Empty
//
// A nil *Mask means no mask has been produced yet. Operations that need a
// mask return an error wrapping ErrInvalidState in that case. A mask with
// zero On pixels is valid: filtering returns it unchanged and BuildPath
// returns an empty Path.
//
// # Determinism
//
// All operations are pure and single-threaded. BuildPath enumerates On
// pixels in row-major order, seeds the path with the first one, and breaks
// nearest-distance ties by the earliest scan index. Every search strategy
// produces the same Path for the same mask.
package mask
