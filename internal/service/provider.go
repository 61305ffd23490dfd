package service

import (
	"context"
	"errors"
	"time"

	"github.com/noah-isme/ur-campus-api/internal/repository"
	appErrors "github.com/noah-isme/ur-campus-api/pkg/errors"
)

// ProviderLatency is the simulated network delay of each kind of provider call.
type ProviderLatency struct {
	List       time.Duration
	Detail     time.Duration
	Mutate     time.Duration
	Report     time.Duration
	Prediction time.Duration
}

// DefaultProviderLatency mirrors the delays the dashboard was designed against.
var DefaultProviderLatency = ProviderLatency{
	List:       800 * time.Millisecond,
	Detail:     500 * time.Millisecond,
	Mutate:     time.Second,
	Report:     1500 * time.Millisecond,
	Prediction: 2 * time.Second,
}

// provider is embedded by every entity service. It waits out the simulated
// latency, honouring cancellation, and records call metrics.
type provider struct {
	name    string
	latency ProviderLatency
	metrics *MetricsService
}

func (p provider) call(ctx context.Context, op string, delay time.Duration, fn func() error) error {
	start := time.Now()
	err := sleep(ctx, delay)
	if err == nil {
		err = fn()
	}
	p.metrics.ObserveProviderCall(p.name, op, err, time.Since(start))
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// storeError maps repository sentinels onto typed API errors.
func storeError(err error, notFound, failed string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "record already exists")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "request cancelled")
	default:
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, failed)
	}
}
