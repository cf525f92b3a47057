// Request logging middleware, adapted from zapchi
package zapchi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger is a chi middleware that logs each request received using the
// provided zap sugared logger. Provide a name to set the logger's name,
// otherwise leave blank.
func Logger(l *zap.SugaredLogger, name string) func(next http.Handler) http.Handler {
	logger := zap.New(l.Desugar().Core(), zap.AddCallerSkip(1)).Sugar().Named(name)

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			next.ServeHTTP(ww, r)

			logger.With(
				zap.Int("status", ww.Status()),
				zap.String("statusText", http.StatusText(ww.Status())),
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.String("reqIp", r.RemoteAddr),
				zap.String("protocol", r.Proto),
				zap.Int("size", ww.BytesWritten()),
				zap.String("latency", time.Since(t1).String()),
				zap.String("userAgent", r.UserAgent()),
				zap.String("reqId", uuid.NewString()),
			).Info("Got Request")
		}

		return http.HandlerFunc(fn)
	}
}
