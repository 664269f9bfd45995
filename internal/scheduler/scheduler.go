package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs a task at a fixed interval until stopped.
type Scheduler struct {
	interval time.Duration
	task     func()
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// New creates a scheduler that runs task every interval once started.
func New(interval time.Duration, task func()) *Scheduler {
	return &Scheduler{
		interval: interval,
		task:     task,
		done:     make(chan struct{}),
	}
}

// Start begins periodic execution in a background goroutine.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.task()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts periodic execution and waits for the worker to exit.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
}

// Registrar accepts one-shot background task registrations. Registration is
// best-effort: the task fires asynchronously and is not guaranteed to run
// before other app logic depends on it.
type Registrar struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewRegistrar creates a background task registrar.
func NewRegistrar(logger *zap.Logger) *Registrar {
	return &Registrar{logger: logger}
}

// Register schedules a tagged task to run once in the background. Errors are
// logged, never returned; there is no retry.
func (r *Registrar) Register(tag string, task func(ctx context.Context) error) {
	r.logger.Info("Background task registered", zap.String("tag", tag))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		if err := task(context.Background()); err != nil {
			r.logger.Warn("Background task failed", zap.String("tag", tag), zap.Error(err))
		}
	}()
}

// Wait blocks until all registered tasks have finished. Used in tests and
// during shutdown.
func (r *Registrar) Wait() {
	r.wg.Wait()
}
