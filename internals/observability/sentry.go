package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry: DSN kosong → no-op. Return flush func untuk dipanggil saat shutdown.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CaptureRequestErr menempelkan method/path/request id ke event sentry.
func CaptureRequestErr(err error, method, path, requestID string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("http.method", method)
		scope.SetTag("http.path", path)
		if requestID != "" {
			scope.SetTag("request_id", requestID)
		}
		sentry.CaptureException(err)
	})
}
