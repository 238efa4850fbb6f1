package errutil

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/actnotify/pkg/utils/ctxutil"
	"github.com/m-mizutani/goerr"
)

// Handle logs err with its goerr values and reports it to Sentry. Sentry is
// a no-op unless it was initialized with a DSN.
func Handle(ctx context.Context, msg string, err error) {
	var goErr *goerr.Error
	if err != nil {
		goErr = goerr.Unwrap(err)
	}

	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		if goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(k, v)
			}
		}
	})
	evID := hub.CaptureException(err)
	if evID != nil {
		// The process exits right after, so the event must be sent now.
		hub.Flush(2 * time.Second)
	}

	ctxutil.Logger(ctx).Error(msg,
		"error", err,
		"sentry.EventID", evID,
	)
}
