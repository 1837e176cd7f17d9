package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/xgillard/thumbnails/internal/entities"
)

// rawImage and thumbImage travel between the stages. Whoever holds the
// value owns the buffer; ownership moves with the channel hand-off.
type rawImage struct {
	dst  string
	data []byte
}

type thumbImage struct {
	dst  string
	data []byte
}

// Pipeline is the staged strategy: one reader, a fixed pool of resize
// workers and one writer, connected by two bounded queues of capacity
// limit. The queues give backpressure: at most limit raw payloads sit
// ahead of the CPU pool and at most limit thumbnails ahead of the
// writer, whatever the batch size.
type Pipeline struct {
	storage Storage
	resizer Resizer
	workers int
	limit   int
}

func NewPipeline(storage Storage, resizer Resizer, workers, limit int) *Pipeline {
	return &Pipeline{storage: storage, resizer: resizer, workers: workers, limit: limit}
}

// Run drives the batch to completion or to the first error. On an error
// anywhere the group context is cancelled: the reader stops submitting,
// workers stop pulling new payloads, and the writer still drains the
// thumbnails that already reached the output queue before exiting.
func (p *Pipeline) Run(ctx context.Context, items []entities.WorkItem) error {
	input := make(chan rawImage, p.limit)
	output := make(chan thumbImage, p.limit)

	g, ctx := errgroup.WithContext(ctx)

	// Reader: sole producer of input, so it alone closes it, both on
	// normal exhaustion and on cancellation.
	g.Go(func() error {
		defer close(input)
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := p.storage.ReadFile(item.SrcPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", item.SrcPath, err)
			}
			select {
			case input <- rawImage{dst: item.DstPath, data: raw}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Workers: the output queue has p.workers producers, so it may only
	// be closed once the last of them is gone. Closing after the first
	// would make the others panic on send; never closing would hang the
	// writer forever. The WaitGroup is that completion barrier.
	var producers sync.WaitGroup
	producers.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			defer producers.Done()
			for raw := range input {
				thumb, err := p.resizer.Resize(raw.data)
				if err != nil {
					return fmt.Errorf("resize for %s: %w", raw.dst, err)
				}
				select {
				case output <- thumbImage{dst: raw.dst, data: thumb}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		producers.Wait()
		close(output)
	}()

	// Writer: drains until the queue is closed, so thumbnails produced
	// before a failure still make it to disk.
	g.Go(func() error {
		for thumb := range output {
			if err := p.storage.WriteFile(thumb.dst, thumb.data); err != nil {
				return fmt.Errorf("write %s: %w", thumb.dst, err)
			}
		}
		return nil
	})

	return g.Wait()
}
