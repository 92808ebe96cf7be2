package resilience

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Safe runs one profile section under the uniform degradation contract:
// the call is timed, panics are recovered, and any failure is replaced by
// the documented default. No error crosses this boundary.
func Safe[T any](ctx context.Context, section string, def T, fn func(ctx context.Context) (T, error)) T {
	start := time.Now()

	val, err := func() (v T, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = eris.Errorf("%s: panic: %v", section, r)
			}
		}()
		return fn(ctx)
	}()

	elapsed := time.Since(start)
	if err != nil {
		zap.L().Warn("section degraded to default",
			zap.String("section", section),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return def
	}

	zap.L().Debug("section complete",
		zap.String("section", section),
		zap.Duration("elapsed", elapsed),
	)
	return val
}
