package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduler_RunsPeriodically(t *testing.T) {
	var runs atomic.Int32

	s := New(10*time.Millisecond, func() { runs.Add(1) })
	s.Start()

	time.Sleep(55 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(time.Millisecond, func() {})
	s.Start()

	s.Stop()
	s.Stop()
}

func TestRegistrar_RunsTaskOnce(t *testing.T) {
	var runs atomic.Int32

	r := NewRegistrar(zap.NewNop())
	r.Register("background-sync", func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	r.Wait()

	assert.Equal(t, int32(1), runs.Load())
}

func TestRegistrar_SwallowsTaskError(t *testing.T) {
	r := NewRegistrar(zap.NewNop())
	r.Register("background-sync", func(ctx context.Context) error {
		return errors.New("replay not implemented")
	})

	// Must not panic or propagate.
	r.Wait()
}
