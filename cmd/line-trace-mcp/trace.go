package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ironsheep/line-trace-mcp/internal/config"
	"github.com/ironsheep/line-trace-mcp/internal/imaging"
	"github.com/ironsheep/line-trace-mcp/internal/logging"
	"github.com/ironsheep/line-trace-mcp/internal/session"
)

// traceJob is one run of the trace command.
type traceJob struct {
	In  string
	Out string
	SVG string
}

func traceAction(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger("trace", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	job := traceJob{
		In:  c.String(flagIn),
		Out: c.String(flagOut),
		SVG: c.String(flagSVG),
	}
	stats, err := runTrace(cfg, job, logger)
	if err != nil {
		return err
	}
	logger.Infow("line drawing written", "out", job.Out, "points", stats.Points,
		"jumps", stats.Jumps, "drawn_pixels", stats.DrawnPixels)
	return nil
}

// runTrace loads job.In, detects and filters edges, builds the line drawing
// and writes it to job.Out and, if set, job.SVG.
func runTrace(cfg config.Config, job traceJob, logger *zap.SugaredLogger) (session.DrawingStats, error) {
	var stats session.DrawingStats

	img, err := imaging.NewImageCache().Load(job.In)
	if err != nil {
		return stats, err
	}

	sess := session.New()
	sess.Load(img, job.In)

	n, err := sess.FindEdges(cfg.LowThreshold, cfg.HighThreshold)
	if err != nil {
		return stats, err
	}
	logger.Debugw("edges found", "edge_pixels", n, "low", cfg.LowThreshold, "high", cfg.HighThreshold)

	filter, err := sess.RemoveSmallEdges(cfg.MinSize)
	if err != nil {
		return stats, err
	}
	logger.Debugw("small edges removed", "min_size", cfg.MinSize,
		"removed_components", filter.RemovedComponents, "kept_pixels", filter.KeptPixels)

	stats, err = sess.BuildLineDrawing(session.DrawOptions{
		Search:   cfg.SearchStrategy(),
		CellSize: cfg.CellSize,
		Stroke:   cfg.Stroke(),
	})
	if err != nil {
		return stats, err
	}

	if _, err := sess.Save(job.Out); err != nil {
		return stats, err
	}

	if job.SVG != "" {
		svg, err := sess.ExportSVG()
		if err != nil {
			return stats, err
		}
		if err := os.WriteFile(job.SVG, []byte(svg), 0o644); err != nil {
			return stats, errors.Wrapf(err, "failed to write svg to %s", job.SVG)
		}
	}
	return stats, nil
}
