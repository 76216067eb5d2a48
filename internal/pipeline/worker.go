package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/isg32/bookpiler/internal/assemble"
	"github.com/isg32/bookpiler/internal/booktree"
	"github.com/isg32/bookpiler/internal/config"
	"github.com/isg32/bookpiler/internal/render"
)

// Worker processes a single compile job.
type Worker struct {
	asm *assemble.Assembler
	cfg config.Config
	log *slog.Logger
}

func NewWorker(cfg config.Config, log *slog.Logger) *Worker {
	return &Worker{
		asm: assemble.New(cfg, log),
		cfg: cfg,
		log: log,
	}
}

// Process runs the scan and render phases for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	job.SetStatus(StatusScanning, "scanning")
	res, err := w.asm.Run(w.cfg.DataDir)
	if err != nil {
		log.Error("scan failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "scanning")
		return
	}

	groups := filterGroups(res.Groups, job.Selection)
	chapters := 0
	for _, g := range groups {
		chapters += len(g.Chapters)
	}
	job.SetTotals(len(groups), chapters, len(res.Diagnostics))
	log.Info("scan complete", "groups", len(groups), "chapters", chapters, "skipped", len(res.Diagnostics))

	if len(groups) == 0 {
		job.AddError("no book groups match the selection")
		job.SetStatus(StatusFailed, "scanning")
		return
	}

	format := job.Format
	if format == "" {
		format = w.cfg.Format
	}
	renderer, err := render.New(format, render.Options{
		AssetDir: w.cfg.AssetDir,
		LogoPath: w.cfg.LogoPath,
	}, log)
	if err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	if err := os.MkdirAll(w.cfg.OutputDir, 0o755); err != nil {
		job.AddError(fmt.Sprintf("output directory: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	job.SetStatus(StatusRendering, "rendering")
	for _, group := range groups {
		select {
		case <-ctx.Done():
			job.AddError("canceled")
			job.SetStatus(StatusFailed, "rendering")
			return
		default:
		}

		out, err := renderer.Render(group, w.cfg.OutputDir)
		if err != nil {
			log.Error("render failed", "class", group.Key.ClassID, "subject", group.Key.Subject, "error", err)
			job.AddError(fmt.Sprintf("%s: %s", group.Key.Label(), err))
			continue
		}
		log.Info("book written", "path", out, "chapters", len(group.Chapters))
		job.AddOutput(out)
	}

	snap := job.Snapshot()
	switch {
	case snap.Progress.GroupsWritten == 0:
		job.SetStatus(StatusFailed, "done")
	case snap.Progress.GroupsWritten < snap.Progress.TotalGroups:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

func filterGroups(groups []booktree.BookGroup, sel Selection) []booktree.BookGroup {
	if sel.All() {
		return groups
	}
	var out []booktree.BookGroup
	for _, g := range groups {
		if sel.ClassID != "" && g.Key.ClassID != sel.ClassID {
			continue
		}
		if sel.Subject != "" && g.Key.Subject != sel.Subject {
			continue
		}
		out = append(out, g)
	}
	return out
}
