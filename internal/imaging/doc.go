// Package imaging provides the image-side collaborators of the line-drawing
// pipeline: loading and caching source images, Canny edge detection,
// cropping, PNG encoding, rendering a traced path back into a picture, and
// vectorizing a mask to SVG.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel), the mask column
//   - Y: vertical position (0 = topmost pixel), the mask row
//   - For regions, corners may be given in any order; the smaller corner is
//     inclusive and the larger one exclusive
//
// # Edge Masks
//
// DetectEdges returns a *image.Gray holding only 0 and 255, which
// mask.FromGray turns into a binary mask without further thresholding.
// RenderPath and TraceSVG consume the path and mask types from the mask
// package and never modify them.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Crop regions that do not overlap the image
//   - Unparseable stroke colors
//   - File I/O errors during image loading or saving
//   - Encoding errors during image output
package imaging
