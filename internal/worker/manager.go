package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout - сколько Stop ждёт завершения воркеров
const DefaultShutdownTimeout = 30 * time.Second

// WorkerManager запускает воркеры и останавливает их общей отменой контекста.
// Воркер, вернувший ошибку, не перезапускается.
type WorkerManager struct {
	logger          *zap.Logger
	shutdownTimeout time.Duration

	mu      sync.Mutex
	workers []Worker
	cancel  context.CancelFunc
	running int
	errs    []error

	wg   sync.WaitGroup
	done chan struct{}
}

// NewWorkerManager создает новый WorkerManager
func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		logger:          logger,
		shutdownTimeout: DefaultShutdownTimeout,
		done:            make(chan struct{}),
	}
}

// Register регистрирует воркер; после Start не действует
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered", zap.String("name", w.Name()))
}

// Start запускает каждый воркер в своей горутине с контекстом, который отменит Stop
func (m *WorkerManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.workers) == 0 {
		return fmt.Errorf("no workers registered")
	}
	if m.cancel != nil {
		return fmt.Errorf("workers already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = len(m.workers)

	m.logger.Info("Starting workers", zap.Int("count", len(m.workers)))

	for _, w := range m.workers {
		m.wg.Add(1)
		go m.run(runCtx, w)
	}

	go func() {
		m.wg.Wait()
		close(m.done)
	}()

	return nil
}

func (m *WorkerManager) run(ctx context.Context, w Worker) {
	defer m.wg.Done()

	m.logger.Info("Starting worker", zap.String("name", w.Name()))
	err := w.Run(ctx)

	m.mu.Lock()
	m.running--
	if err != nil && !errors.Is(err, context.Canceled) {
		m.errs = append(m.errs, fmt.Errorf("%s: %w", w.Name(), err))
	}
	m.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Error("Worker failed", zap.String("name", w.Name()), zap.Error(err))
		return
	}
	m.logger.Info("Worker stopped", zap.String("name", w.Name()))
}

// Done закрывается, когда завершились все запущенные воркеры
func (m *WorkerManager) Done() <-chan struct{} {
	return m.done
}

// Running - число воркеров, которые ещё работают
func (m *WorkerManager) Running() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Err объединяет ошибки воркеров, завершившихся не по отмене
func (m *WorkerManager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}

// Stop отменяет контекст воркеров и ждёт их завершения не дольше shutdownTimeout.
// Повторный вызов безопасен.
func (m *WorkerManager) Stop() error {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel == nil {
		return nil
	}

	m.logger.Info("Stopping workers", zap.Int("running", m.Running()))
	cancel()

	select {
	case <-m.done:
		m.logger.Info("All workers stopped gracefully")
	case <-time.After(m.shutdownTimeout):
		m.logger.Warn("Workers shutdown timed out, some tasks may not have completed",
			zap.Duration("timeout", m.shutdownTimeout))
		return fmt.Errorf("workers shutdown timed out after %v", m.shutdownTimeout)
	}

	return nil
}
