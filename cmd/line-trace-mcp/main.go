package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/ironsheep/line-trace-mcp/internal/config"
	"github.com/ironsheep/line-trace-mcp/internal/logging"
	"github.com/ironsheep/line-trace-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	flagLogLevel    = "log-level"
	flagLow         = "low"
	flagHigh        = "high"
	flagMinSize     = "min-size"
	flagSearch      = "search"
	flagCellSize    = "cell-size"
	flagStrokeColor = "stroke-color"
	flagStrokeWidth = "stroke-width"
	flagIn          = "in"
	flagOut         = "out"
	flagSVG         = "svg"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "line-trace-mcp: %v\n", err)
		os.Exit(1)
	}
}

// pipelineFlags are the tunables shared by serve and trace. Their values
// become the defaults for MCP tool arguments.
func pipelineFlags() []cli.Flag {
	def := config.Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagLogLevel,
			Value:   def.LogLevel,
			Usage:   "log level (debug, info, warn, error)",
			EnvVars: []string{"LINE_TRACE_LOG_LEVEL"},
		},
		&cli.IntFlag{
			Name:    flagLow,
			Value:   def.LowThreshold,
			Usage:   "low Canny hysteresis threshold (0-255)",
			EnvVars: []string{"LINE_TRACE_LOW"},
		},
		&cli.IntFlag{
			Name:    flagHigh,
			Value:   def.HighThreshold,
			Usage:   "high Canny hysteresis threshold (0-255)",
			EnvVars: []string{"LINE_TRACE_HIGH"},
		},
		&cli.IntFlag{
			Name:    flagMinSize,
			Value:   def.MinSize,
			Usage:   "smallest edge component kept, in pixels",
			EnvVars: []string{"LINE_TRACE_MIN_SIZE"},
		},
		&cli.StringFlag{
			Name:    flagSearch,
			Value:   def.Search,
			Usage:   "nearest-neighbor search: grid or linear",
			EnvVars: []string{"LINE_TRACE_SEARCH"},
		},
		&cli.IntFlag{
			Name:    flagCellSize,
			Value:   def.CellSize,
			Usage:   "bucket size for the grid search",
			EnvVars: []string{"LINE_TRACE_CELL_SIZE"},
		},
		&cli.StringFlag{
			Name:    flagStrokeColor,
			Value:   def.StrokeColor,
			Usage:   "line color as `#rrggbb`",
			EnvVars: []string{"LINE_TRACE_STROKE_COLOR"},
		},
		&cli.Float64Flag{
			Name:    flagStrokeWidth,
			Value:   def.StrokeWidth,
			Usage:   "line width in pixels",
			EnvVars: []string{"LINE_TRACE_STROKE_WIDTH"},
		},
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:            "line-trace-mcp",
		Usage:           "MCP server that turns images into single-line drawings",
		Version:         Version,
		HideHelpCommand: true,
		Writer:          stdout,
		Flags:           pipelineFlags(),
		Action:          serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve MCP over stdin/stdout (default)",
				Flags:  pipelineFlags(),
				Action: serveAction,
			},
			{
				Name:      "trace",
				Usage:     "run the whole pipeline on one image",
				UsageText: "line-trace-mcp trace --in IMAGE --out PNG [--svg SVG]",
				Flags: append(pipelineFlags(),
					&cli.StringFlag{
						Name:     flagIn,
						Usage:    "input image `FILE`",
						Required: true,
					},
					&cli.StringFlag{
						Name:     flagOut,
						Usage:    "output image `FILE`; the format follows the extension",
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagSVG,
						Usage: "also write the drawing as SVG to `FILE`",
					},
				),
				Action: traceAction,
			},
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(c *cli.Context) error {
					printVersion(c.App.Writer)
					return nil
				},
			},
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "line-trace-mcp %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
}

// configFromContext reads the pipeline flags into a validated Config.
func configFromContext(c *cli.Context) (config.Config, error) {
	cfg := config.Config{
		LowThreshold:  c.Int(flagLow),
		HighThreshold: c.Int(flagHigh),
		MinSize:       c.Int(flagMinSize),
		Search:        c.String(flagSearch),
		CellSize:      c.Int(flagCellSize),
		StrokeColor:   c.String(flagStrokeColor),
		StrokeWidth:   c.Float64(flagStrokeWidth),
		LogLevel:      c.String(flagLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func serveAction(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger("line-trace-mcp", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	logger.Infow("starting server", "version", Version, "build_time", BuildTime, "commit", GitCommit)

	srv := server.New(cfg, logger, Version)
	defer srv.Close()
	return srv.Run()
}
