package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/naka-gawa/readme-bot/internal/domain"
)

// ErrPassInFlight is returned by Dispatch while a previous pass is still running.
var ErrPassInFlight = errors.New("a documentation pass is already running")

// Runner runs one documentation pass.
type Runner interface {
	Run(ctx context.Context) (*domain.Report, error)
}

// Dispatcher starts passes in the background, one at a time.
type Dispatcher struct {
	runner Runner
	slot   *semaphore.Weighted
	wg     sync.WaitGroup
	logger logrus.FieldLogger
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(runner Runner, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		runner: runner,
		slot:   semaphore.NewWeighted(1),
		logger: logger,
	}
}

// Dispatch starts a pass and returns immediately. The pass is not tied to any
// request and cannot be cancelled once started.
func (d *Dispatcher) Dispatch() error {
	if !d.slot.TryAcquire(1) {
		return ErrPassInFlight
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.slot.Release(1)
		if _, err := d.runner.Run(context.Background()); err != nil {
			d.logger.Errorf("Documentation pass failed: %v", err)
		}
	}()
	return nil
}

// Wait blocks until the pass started by Dispatch, if any, has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
