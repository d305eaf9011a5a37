package server

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/ironsheep/line-trace-mcp/internal/imaging"
	"github.com/ironsheep/line-trace-mcp/internal/mask"
	"github.com/ironsheep/line-trace-mcp/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "edges_find").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramsError marks a failure caused by the caller's arguments rather than
// by the tool itself.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string { return e.err.Error() }
func (e *paramsError) Unwrap() error { return e.err }

func invalidParams(err error) error {
	return &paramsError{err: err}
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Argument errors return code -32602 and tool execution errors return
// code -32000, both with the error string in data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warnw("tool failed", "tool", params.Name, "error", err)
		var pe *paramsError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}
	s.logger.Debugw("tool call", "tool", params.Name, "duration", time.Since(start))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image
	case "image_load":
		return s.handleImageLoad(args)
	case "image_crop":
		return s.handleImageCrop(args)

	// Edges
	case "edges_find":
		return s.handleEdgesFind(args)
	case "edges_clear_region":
		return s.handleEdgesClearRegion(args)
	case "edges_remove_small":
		return s.handleEdgesRemoveSmall(args)
	case "edges_export_svg":
		return s.handleEdgesExportSVG(args)

	// Line drawing
	case "line_drawing_build":
		return s.handleLineDrawingBuild(args)

	// Output
	case "image_current":
		return s.handleImageCurrent(args)
	case "image_save":
		return s.handleImageSave(args)

	// Session
	case "session_reset":
		return s.handleSessionReset(args)
	case "session_close":
		return s.handleSessionClose(args)

	default:
		return nil, invalidParams(errors.Errorf("unknown tool: %s", name))
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting failures as bad params.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return invalidParams(errors.Wrap(err, "invalid arguments"))
	}
	return nil
}

// sessionResult is embedded in every per-session tool result.
type sessionResult struct {
	SessionID string `json:"session_id"`
	Stage     string `json:"stage"`
}

func resultFor(sess *session.Session) sessionResult {
	return sessionResult{SessionID: sess.ID, Stage: sess.Stage().String()}
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) sessionFromArgs(args json.RawMessage, v interface{ sessionID() string }) (*session.Session, error) {
	if err := decodeArgs(args, v); err != nil {
		return nil, err
	}
	return s.lookupSession(v.sessionID())
}

func (a *sessionArgs) sessionID() string { return a.SessionID }

// === Image Handlers ===

type imageLoadArgs struct {
	Path      string `json:"path"`
	SessionID string `json:"session_id"`
	Reload    bool   `json:"reload"`
}

type imageLoadResult struct {
	sessionResult
	Image *imaging.ImageInfo `json:"image"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams(errors.New("path is required"))
	}

	var sess *session.Session
	if a.SessionID != "" {
		var err error
		if sess, err = s.lookupSession(a.SessionID); err != nil {
			return nil, err
		}
	}

	if a.Reload {
		s.cache.Evict(a.Path)
	}
	info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if sess == nil {
		sess = s.newSession()
	}
	sess.Load(img, a.Path)
	s.logger.Debugw("image loaded", "session_id", sess.ID, "path", a.Path,
		"width", info.Width, "height", info.Height)

	return imageLoadResult{sessionResult: resultFor(sess), Image: info}, nil
}

type rectArgs struct {
	sessionArgs
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type imageCropResult struct {
	sessionResult
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a rectArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	if err := sess.Crop(a.X1, a.Y1, a.X2, a.Y2); err != nil {
		return nil, err
	}
	w, h := sess.Size()
	return imageCropResult{sessionResult: resultFor(sess), Width: w, Height: h}, nil
}

// === Edge Handlers ===

type edgesFindArgs struct {
	sessionArgs
	Low  *int `json:"low"`
	High *int `json:"high"`
}

type edgesResult struct {
	sessionResult
	EdgePixels int `json:"edge_pixels"`
}

type edgesFindResult struct {
	edgesResult
	Low  int `json:"low"`
	High int `json:"high"`
}

func (s *Server) handleEdgesFind(args json.RawMessage) (interface{}, error) {
	var a edgesFindArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	low, high := s.cfg.LowThreshold, s.cfg.HighThreshold
	if a.Low != nil {
		low = *a.Low
	}
	if a.High != nil {
		high = *a.High
	}
	if low < 0 || high < 0 {
		return nil, invalidParams(errors.Errorf("thresholds must not be negative, got %d and %d", low, high))
	}

	n, err := sess.FindEdges(low, high)
	if err != nil {
		return nil, err
	}
	return edgesFindResult{
		edgesResult: edgesResult{sessionResult: resultFor(sess), EdgePixels: n},
		Low:         low,
		High:        high,
	}, nil
}

func (s *Server) handleEdgesClearRegion(args json.RawMessage) (interface{}, error) {
	var a rectArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	n, err := sess.ClearEdgeRegion(a.X1, a.Y1, a.X2, a.Y2)
	if err != nil {
		return nil, err
	}
	return edgesResult{sessionResult: resultFor(sess), EdgePixels: n}, nil
}

type edgesRemoveSmallArgs struct {
	sessionArgs
	MinSize *int `json:"min_size"`
}

type edgesRemoveSmallResult struct {
	sessionResult
	MinSize int `json:"min_size"`
	mask.FilterStats
}

func (s *Server) handleEdgesRemoveSmall(args json.RawMessage) (interface{}, error) {
	var a edgesRemoveSmallArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	minSize := s.cfg.MinSize
	if a.MinSize != nil {
		minSize = *a.MinSize
	}

	stats, err := sess.RemoveSmallEdges(minSize)
	if err != nil {
		return nil, err
	}
	return edgesRemoveSmallResult{sessionResult: resultFor(sess), MinSize: minSize, FilterStats: stats}, nil
}

type edgesExportSVGArgs struct {
	sessionArgs
	Path string `json:"path"`
}

type edgesExportSVGResult struct {
	sessionResult
	Path string `json:"path,omitempty"`
	SVG  string `json:"svg"`
}

func (s *Server) handleEdgesExportSVG(args json.RawMessage) (interface{}, error) {
	var a edgesExportSVGArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	svg, err := sess.ExportSVG()
	if err != nil {
		return nil, err
	}
	if a.Path != "" {
		if err := os.WriteFile(a.Path, []byte(svg), 0o644); err != nil {
			return nil, errors.Wrapf(err, "failed to write svg to %s", a.Path)
		}
	}
	return edgesExportSVGResult{sessionResult: resultFor(sess), Path: a.Path, SVG: svg}, nil
}

// === Line Drawing Handlers ===

type lineDrawingArgs struct {
	sessionArgs
	Search      string   `json:"search"`
	StrokeColor string   `json:"stroke_color"`
	StrokeWidth *float64 `json:"stroke_width"`
}

type lineDrawingResult struct {
	sessionResult
	session.DrawingStats
}

func (s *Server) handleLineDrawingBuild(args json.RawMessage) (interface{}, error) {
	var a lineDrawingArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}

	opts := session.DrawOptions{
		Search:   s.cfg.SearchStrategy(),
		CellSize: s.cfg.CellSize,
		Stroke:   s.cfg.Stroke(),
	}
	if a.Search != "" {
		if opts.Search, err = mask.ParseSearch(a.Search); err != nil {
			return nil, invalidParams(err)
		}
	}
	if a.StrokeColor != "" {
		if _, err := imaging.ParseStrokeColor(a.StrokeColor); err != nil {
			return nil, invalidParams(err)
		}
		opts.Stroke.Color = a.StrokeColor
	}
	if a.StrokeWidth != nil {
		if *a.StrokeWidth <= 0 {
			return nil, invalidParams(errors.Errorf("stroke_width must be positive, got %g", *a.StrokeWidth))
		}
		opts.Stroke.Width = *a.StrokeWidth
	}

	stats, err := sess.BuildLineDrawing(opts)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("line drawing built", "session_id", sess.ID, "points", stats.Points,
		"jumps", stats.Jumps, "search", stats.Search)
	return lineDrawingResult{sessionResult: resultFor(sess), DrawingStats: stats}, nil
}

// === Output Handlers ===

type imageCurrentResult struct {
	sessionResult
	Artifact string                `json:"artifact"`
	Image    *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageCurrent(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}

	art := sess.Display()
	res := imageCurrentResult{sessionResult: resultFor(sess), Artifact: art.Kind.String()}
	if art.Empty() {
		return res, nil
	}
	if res.Image, err = imaging.EncodePNG(art.Image); err != nil {
		return nil, err
	}
	return res, nil
}

type imageSaveArgs struct {
	sessionArgs
	Path string `json:"path"`
}

type imageSaveResult struct {
	sessionResult
	Path     string `json:"path"`
	Artifact string `json:"artifact"`
}

func (s *Server) handleImageSave(args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams(errors.New("path is required"))
	}

	art, err := sess.Save(a.Path)
	if err != nil {
		return nil, err
	}
	return imageSaveResult{sessionResult: resultFor(sess), Path: a.Path, Artifact: art.Kind.String()}, nil
}

// === Session Handlers ===

func (s *Server) handleSessionReset(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	sess, err := s.sessionFromArgs(args, &a)
	if err != nil {
		return nil, err
	}
	sess.Reset()
	return resultFor(sess), nil
}

type sessionCloseResult struct {
	SessionID string `json:"session_id"`
	Closed    bool   `json:"closed"`
}

func (s *Server) handleSessionClose(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.SessionID == "" {
		return nil, invalidParams(errors.New("session_id is required"))
	}
	if err := s.closeSession(a.SessionID); err != nil {
		return nil, err
	}
	return sessionCloseResult{SessionID: a.SessionID, Closed: true}, nil
}
