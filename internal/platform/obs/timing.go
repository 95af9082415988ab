package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the per-request id through context.
const RequestIDKey ctxKey = "request_id"

// WithRequestID returns a child context carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID extracts the request id from ctx, or "" when absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// Time logs the duration and outcome of an operation. Use with defer:
//
//	func (s *Svc) Op(ctx context.Context) (err error) {
//	    defer obs.Time(ctx, "svc.op")(&err)
//	    ...
//	}
func Time(ctx context.Context, name string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		status := "ok"
		if errp != nil && *errp != nil {
			status = "error"
		}
		if id := RequestID(ctx); id != "" {
			log.Printf("[timing] op=%s status=%s duration=%s req_id=%s", name, status, time.Since(start), id)
			return
		}
		log.Printf("[timing] op=%s status=%s duration=%s", name, status, time.Since(start))
	}
}
