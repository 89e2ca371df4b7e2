// Package middleware holds HTTP middleware for the server.
package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/metric"

	telemetry "user-registry/internal/telemetry/otel"
)

// Telemetry returns middleware that records a span, a request counter, a
// latency histogram, and a log record per request. Best-effort: it never
// fails the request. If providers is nil the middleware is a passthrough.
// skipPaths is the set of paths to not instrument (e.g. /health).
func Telemetry(providers *telemetry.Providers, skipPaths map[string]bool) func(http.Handler) http.Handler {
	if providers == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	tracer := providers.TracerProvider.Tracer("user-registry/server")
	meter := providers.MeterProvider.Meter("user-registry/server")
	logger := providers.LoggerProvider.Logger("user-registry/server")

	requests, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Number of HTTP requests handled"))
	latency, _ := meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			elapsed := time.Since(start)
			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
				attribute.Int("http.status_code", ww.Status()),
			}
			span.SetAttributes(attrs...)
			requests.Add(ctx, 1, metric.WithAttributes(attrs...))
			latency.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributes(attrs...))

			var rec otellog.Record
			rec.SetTimestamp(time.Now())
			rec.SetSeverity(otellog.SeverityInfo)
			rec.SetBody(otellog.StringValue(fmt.Sprintf("%s %s -> %d (%dms)",
				r.Method, r.URL.Path, ww.Status(), elapsed.Milliseconds())))
			rec.AddAttributes(
				otellog.String("http.method", r.Method),
				otellog.String("http.path", r.URL.Path),
				otellog.Int("http.status_code", ww.Status()),
			)
			logger.Emit(ctx, rec)
		})
	}
}
