package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/xgillard/thumbnails/internal/config"
	"github.com/xgillard/thumbnails/internal/pipeline"
	"github.com/xgillard/thumbnails/internal/processor"
	"github.com/xgillard/thumbnails/internal/walker"
)

type App struct {
	cfg     *config.Config
	resizer *processor.Resizer
	workers int
}

func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	filter, err := processor.ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &App{
		cfg:     cfg,
		resizer: processor.NewResizer(cfg.Width, cfg.Height, filter),
		workers: workers,
	}, nil
}

// Run builds the work list and drives the selected strategy to completion
// or to the first unrecoverable error.
func (a *App) Run(ctx context.Context) error {
	if err := os.MkdirAll(a.cfg.Dst, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", a.cfg.Dst, err)
	}

	items, err := walker.Enumerate(a.cfg.Src, a.cfg.Dst, a.cfg.Extension)
	if err != nil {
		return fmt.Errorf("scan %s: %w", a.cfg.Src, err)
	}
	log.Printf("[thumbnails] found %d files to convert", len(items))

	storage := pipeline.Disk{}
	started := time.Now()

	if a.cfg.Asynchronous {
		log.Printf("[thumbnails] pipelined mode: %d workers, queue limit %d", a.workers, a.cfg.Limit)
		err = pipeline.NewPipeline(storage, a.resizer, a.workers, a.cfg.Limit).Run(ctx, items)
	} else {
		log.Printf("[thumbnails] fan-out mode: %d workers", a.workers)
		err = pipeline.NewFanout(storage, a.resizer, a.workers).Run(ctx, items)
	}
	if err != nil {
		return err
	}

	log.Printf("[thumbnails] converted %d files in %s", len(items), time.Since(started).Round(time.Millisecond))
	return nil
}
