// Package config holds the runtime defaults for the server and the trace
// command.
package config

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/line-trace-mcp/internal/imaging"
	"github.com/ironsheep/line-trace-mcp/internal/logging"
	"github.com/ironsheep/line-trace-mcp/internal/mask"
)

// DefaultMinSize is the default smallest edge component kept.
const DefaultMinSize = 50

// Config is the tunable state shared by the CLI commands and the MCP tools.
// Tool arguments override these per call.
type Config struct {
	LowThreshold  int
	HighThreshold int
	MinSize       int
	Search        string
	CellSize      int
	StrokeColor   string
	StrokeWidth   float64
	LogLevel      string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LowThreshold:  imaging.DefaultLowThreshold,
		HighThreshold: imaging.DefaultHighThreshold,
		MinSize:       DefaultMinSize,
		Search:        mask.SearchGrid.String(),
		CellSize:      mask.DefaultCellSize,
		StrokeColor:   imaging.DefaultStrokeColor,
		StrokeWidth:   imaging.DefaultStrokeWidth,
		LogLevel:      "info",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.LowThreshold < 0 || c.LowThreshold > 255 {
		return errors.Errorf("low threshold %d out of range 0-255", c.LowThreshold)
	}
	if c.HighThreshold < 0 || c.HighThreshold > 255 {
		return errors.Errorf("high threshold %d out of range 0-255", c.HighThreshold)
	}
	if c.MinSize < 0 {
		return errors.Errorf("min size %d is negative", c.MinSize)
	}
	if _, err := mask.ParseSearch(c.Search); err != nil {
		return err
	}
	if c.CellSize < 1 {
		return errors.Errorf("cell size %d must be at least 1", c.CellSize)
	}
	if _, err := imaging.ParseStrokeColor(c.StrokeColor); err != nil {
		return err
	}
	if c.StrokeWidth <= 0 {
		return errors.Errorf("stroke width %g must be positive", c.StrokeWidth)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SearchStrategy returns the parsed search strategy. Call Validate first;
// an unknown name yields the grid search.
func (c Config) SearchStrategy() mask.Search {
	s, _ := mask.ParseSearch(c.Search)
	return s
}

// Stroke returns the configured stroke.
func (c Config) Stroke() imaging.Stroke {
	return imaging.Stroke{Color: c.StrokeColor, Width: c.StrokeWidth}
}
