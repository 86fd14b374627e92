package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is one unit of per-image ingest work.
type Job func(ctx context.Context) error

// ImagePipeline runs a batch of image jobs on a bounded pool. One upload's
// images are independent of each other, but the upload as a whole is
// all-or-nothing: the first failure cancels the remaining jobs and is
// returned to the caller.
type ImagePipeline struct {
	workers int
	logger  *slog.Logger
}

// NewImagePipeline constructs a pipeline with the given concurrency bound.
func NewImagePipeline(workers int, logger *slog.Logger) *ImagePipeline {
	if workers <= 0 {
		workers = 1
	}
	return &ImagePipeline{workers: workers, logger: logger}
}

// Run executes all jobs and returns the first error encountered, if any.
func (p *ImagePipeline) Run(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan Job)
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	workers := p.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-runCtx.Done():
					return
				case job, ok := <-queue:
					if !ok {
						return
					}
					if err := job(runCtx); err != nil {
						errOnce.Do(func() {
							firstErr = err
							cancel()
						})
						return
					}
				}
			}
		}()
	}

	for _, job := range jobs {
		select {
		case <-runCtx.Done():
			// stop dispatching once a job failed or the caller gave up
		case queue <- job:
			continue
		}
		break
	}
	close(queue)

	wg.Wait()

	if firstErr != nil {
		p.logger.Warn("image pipeline aborted", slog.String("error", firstErr.Error()))
		return firstErr
	}
	return ctx.Err()
}
