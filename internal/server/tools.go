package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID returned by image_load",
	}
}

func rectProperties(what string) map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionIDProperty(),
		"x1": map[string]interface{}{
			"type":        "integer",
			"description": "X (column) of the first corner of the " + what,
		},
		"y1": map[string]interface{}{
			"type":        "integer",
			"description": "Y (row) of the first corner of the " + what,
		},
		"x2": map[string]interface{}{
			"type":        "integer",
			"description": "X (column) of the opposite corner, exclusive",
		},
		"y2": map[string]interface{}{
			"type":        "integer",
			"description": "Y (row) of the opposite corner, exclusive",
		},
	}
}

func sessionOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": sessionIDProperty(),
		},
		"required": []string{"session_id"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "image_load",
			Description: "Load an image file into a session and return its dimensions and format. Creates a new session unless session_id is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"session_id": map[string]interface{}{
						"type":        "string",
						"description": "Optional existing session to load into",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop the session image to a rectangle. Corners may be given in any order and are clipped to the image. Discards detected edges.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": rectProperties("crop region"),
				"required":   []string{"session_id", "x1", "y1", "x2", "y2"},
			},
		},

		// Edges
		{
			Name:        "edges_find",
			Description: "Detect edges in the session image with Canny edge detection (Gaussian blur sigma 1.4, Sobel gradients, hysteresis).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"low": map[string]interface{}{
						"type":        "integer",
						"description": "Low hysteresis threshold (0-255). Default 50",
						"default":     50,
					},
					"high": map[string]interface{}{
						"type":        "integer",
						"description": "High hysteresis threshold (0-255). Default 150",
						"default":     150,
					},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "edges_clear_region",
			Description: "Erase all edge pixels inside a rectangle. Use this to delete unwanted edges before building the line drawing.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": rectProperties("region to clear"),
				"required":   []string{"session_id", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "edges_remove_small",
			Description: "Remove connected edge components (8-connected) with fewer than min_size pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"min_size": map[string]interface{}{
						"type":        "integer",
						"description": "Smallest component size kept, in pixels. Default 50",
						"default":     50,
					},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "edges_export_svg",
			Description: "Vectorize the line drawing, or the edges if no drawing was built, and return it as an SVG document.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the SVG to",
					},
				},
				"required": []string{"session_id"},
			},
		},

		// Line drawing
		{
			Name:        "line_drawing_build",
			Description: "Order all edge pixels into one nearest-neighbor path starting at the top-left pixel and draw it as a single connected line.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"search": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"grid", "linear"},
						"description": "Nearest-neighbor search strategy. Both give the same path. Default grid",
					},
					"stroke_color": map[string]interface{}{
						"type":        "string",
						"description": "Line color as #rrggbb. Default #ffffff",
					},
					"stroke_width": map[string]interface{}{
						"type":        "number",
						"description": "Line width in pixels. Default 1",
					},
				},
				"required": []string{"session_id"},
			},
		},

		// Output
		{
			Name:        "image_current",
			Description: "Return the current artifact of a session as base64-encoded PNG: the line drawing, the edges, or the image, depending on the stage.",
			InputSchema: sessionOnlySchema(),
		},
		{
			Name:        "image_save",
			Description: "Save the current artifact of a session to a file. The format follows the extension (png, jpg, gif, tif, bmp).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the output file",
					},
				},
				"required": []string{"session_id", "path"},
			},
		},

		// Session
		{
			Name:        "session_reset",
			Description: "Undo crops, edges and drawings, returning the session to the image as loaded.",
			InputSchema: sessionOnlySchema(),
		},
		{
			Name:        "session_close",
			Description: "Close a session and release its images.",
			InputSchema: sessionOnlySchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
