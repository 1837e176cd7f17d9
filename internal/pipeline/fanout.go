package pipeline

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/xgillard/thumbnails/internal/entities"
)

// Fanout is the data-parallel strategy: the whole work list is handed to
// a dynamically scheduled pool and each task performs the complete
// read -> resize -> write sequence on its own. Overlap of I/O and CPU
// work comes from having many tasks in flight, not from staging.
type Fanout struct {
	storage Storage
	resizer Resizer
	workers int
}

func NewFanout(storage Storage, resizer Resizer, workers int) *Fanout {
	return &Fanout{storage: storage, resizer: resizer, workers: workers}
}

// Run processes every item and returns the first error. The batch is
// fail-fast: tasks that have not started when an error occurs observe the
// cancelled context and are skipped, tasks already running may still
// finish writing their file.
func (f *Fanout) Run(ctx context.Context, items []entities.WorkItem) error {
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(f.workers)

	for _, item := range items {
		item := item
		p.Go(func(ctx context.Context) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return f.processOne(item)
		})
	}
	return p.Wait()
}

func (f *Fanout) processOne(item entities.WorkItem) error {
	raw, err := f.storage.ReadFile(item.SrcPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", item.SrcPath, err)
	}
	thumb, err := f.resizer.Resize(raw)
	if err != nil {
		return fmt.Errorf("resize %s: %w", item.SrcPath, err)
	}
	if err := f.storage.WriteFile(item.DstPath, thumb); err != nil {
		return fmt.Errorf("write %s: %w", item.DstPath, err)
	}
	return nil
}
