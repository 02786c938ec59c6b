package worker

import (
	"context"
)

// Worker - потребитель очереди событий.
// Run блокируется, пока ctx не отменён; отменой управляет WorkerManager.
// nil из Run означает штатную остановку.
type Worker interface {
	Run(ctx context.Context) error
	Name() string
}
