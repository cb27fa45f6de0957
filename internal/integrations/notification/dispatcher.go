package notification

import (
	"context"
	"sync"
)

// Dispatcher запускает отправку уведомлений в фоне и отслеживает незавершенные отправки
// После Wait новые уведомления не принимаются
type Dispatcher struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	closed  bool
	dropped int
	logger  Logger
}

// NewDispatcher создает диспетчер фоновых уведомлений
func NewDispatcher(logger Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Go выполняет fn в отдельной горутине
func (d *Dispatcher) Go(fn func()) {
	d.mu.Lock()
	if d.closed {
		d.dropped++
		d.mu.Unlock()
		d.logger.Warn("Notification dropped: dispatcher is shutting down")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		fn()
	}()
}

// Wait перестает принимать уведомления и ждет завершения уже запущенных
// Возвращает ошибку контекста, если отправки не успели завершиться
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
