// Package dispatch runs inference requests on a fixed pool of engine
// workers. Each worker owns one engine instance; submitted images are
// handed to the next free worker and the caller waits on a task handle
// for the result.
//
// Main Functions:
//
// - NewPool: starts n workers, each with its own engine
// - Pool.Submit: queues one image and returns a task handle
// - Task.Wait: blocks until the result is ready or the context ends
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/adrianmazur-dev/OCRmyPDF-PaddlePaddle/pkg/layout"
)

// Engine runs inference on a single page image.
type Engine interface {
	Predict(ctx context.Context, image []byte) (*layout.RawResult, error)
}

// Task is a handle for one submitted image.
type Task struct {
	image []byte
	done  chan struct{}

	result *layout.RawResult
	err    error
}

// Wait blocks until the task completes or ctx is done. A task that has
// already been picked up by a worker runs to completion even if ctx ends;
// the result is then discarded.
func (t *Task) Wait(ctx context.Context) (*layout.RawResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pool distributes tasks over a fixed set of engine workers.
type Pool struct {
	jobs chan *Task
	wg   sync.WaitGroup

	closeOnce sync.Once
}

// NewPool starts workers goroutines, each holding its own engine built by
// factory. Engine construction errors abort startup.
func NewPool(workers int, factory func() (Engine, error)) (*Pool, error) {
	if workers < 1 {
		workers = 1
	}
	engines := make([]Engine, workers)
	for i := range engines {
		engine, err := factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create engine %d: %w", i, err)
		}
		engines[i] = engine
	}

	p := &Pool{jobs: make(chan *Task)}
	for _, engine := range engines {
		p.wg.Add(1)
		go p.worker(engine)
	}
	return p, nil
}

func (p *Pool) worker(engine Engine) {
	defer p.wg.Done()
	for task := range p.jobs {
		task.result, task.err = engine.Predict(context.Background(), task.image)
		close(task.done)
	}
}

// Submit queues one image for inference. It blocks while all workers are
// busy and their handoff slots are taken.
func (p *Pool) Submit(image []byte) *Task {
	task := &Task{image: image, done: make(chan struct{})}
	p.jobs <- task
	return task
}

// Close stops accepting work and waits for in-flight tasks to finish.
// Tasks already submitted still complete.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}
