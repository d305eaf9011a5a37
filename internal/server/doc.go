// Package server implements the MCP (Model Context Protocol) server for
// turning images into single-line drawings.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Sessions
//
// image_load creates a session and returns its ID. Every other tool takes
// that session_id and works on the session's current state, so a client can
// load, crop, detect edges, clean them up and draw in separate calls.
//
// # Available Tools
//
// Image:
//   - image_load: Load an image into a session
//   - image_crop: Crop the session image
//
// Edges:
//   - edges_find: Canny edge detection
//   - edges_clear_region: Erase edges inside a rectangle
//   - edges_remove_small: Drop small connected edge components
//   - edges_export_svg: Vectorize the edges or drawing as SVG
//
// Line drawing:
//   - line_drawing_build: Order edge pixels into one path and draw it
//
// Output:
//   - image_current: Current artifact as base64 PNG
//   - image_save: Write the current artifact to a file
//
// Session:
//   - session_reset: Return to the image as loaded
//   - session_close: Release a session
//
// # Image Caching
//
// Decoded images are cached by path and shared across sessions. Pass
// reload to image_load to re-read a file that changed on disk.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32602 for bad arguments, -32000 for tool failures
//   - message: Human-readable error description
//   - data: The Go error string
//
// Calling a tool out of order, such as edges_clear_region before edges_find,
// is a tool failure whose data names the missing step.
package server
