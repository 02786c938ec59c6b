package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type blockingWorker struct {
	*BaseWorker
	started atomic.Bool
}

func (w *blockingWorker) Run(ctx context.Context) error {
	w.started.Store(true)
	<-ctx.Done()
	return nil
}

type failingWorker struct {
	*BaseWorker
}

func (w *failingWorker) Run(context.Context) error {
	return errors.New("consumer group missing")
}

// stuckWorker ignores cancellation until released
type stuckWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *stuckWorker) Run(context.Context) error {
	<-w.release
	return nil
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
	assert.NoError(t, m.Stop())
}

func TestWorkerManager_StopCancelsWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	w := &blockingWorker{BaseWorker: NewBaseWorker("blocking", "group", zap.NewNop())}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Start(context.Background()), "second start")

	require.Eventually(t, w.started.Load, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, m.Running())

	require.NoError(t, m.Stop())
	require.NoError(t, m.Stop())

	assert.Equal(t, 0, m.Running())
	assert.NoError(t, m.Err())
	select {
	case <-m.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestWorkerManager_ParentContextCancelsWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.Register(&blockingWorker{BaseWorker: NewBaseWorker("blocking", "group", zap.NewNop())})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx))
	cancel()

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("workers still running after parent cancellation")
	}
}

func TestWorkerManager_FailedWorkerIsReported(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.Register(&failingWorker{BaseWorker: NewBaseWorker("failing", "group", zap.NewNop())})

	require.NoError(t, m.Start(context.Background()))

	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("failed worker did not finish")
	}
	require.Error(t, m.Err())
	assert.Contains(t, m.Err().Error(), "failing: consumer group missing")
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.shutdownTimeout = 50 * time.Millisecond
	w := &stuckWorker{BaseWorker: NewBaseWorker("stuck", "group", zap.NewNop()), release: make(chan struct{})}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())

	close(w.release)
	<-m.Done()
}

func TestBaseWorker(t *testing.T) {
	w := NewBaseWorker("w", "g", zap.NewNop())
	assert.Equal(t, "w", w.Name())
	assert.Equal(t, "g", w.ConsumerGroup())
	assert.NotNil(t, w.Logger())
}
