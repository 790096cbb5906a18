package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type accessLogKey struct{}

// accessLog то, что обработчик сообщает логирующему middleware о запросе.
type accessLog struct {
	errorKind string
}

// SetErrorKind помечает запрос видом ошибки ретранслятора для строки access-лога.
// Вне LoggingMiddleware ничего не делает.
func SetErrorKind(ctx context.Context, kind string) {
	if al, ok := ctx.Value(accessLogKey{}).(*accessLog); ok {
		al.errorKind = kind
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (lw *loggingResponseWriter) WriteHeader(code int) {
	lw.statusCode = code
	lw.ResponseWriter.WriteHeader(code)
}

func (lw *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := lw.ResponseWriter.Write(b)
	lw.size += size
	return size, err
}

// LoggingMiddleware пишет в лог каждый обработанный запрос.
// Ответы с ошибкой пишутся на уровне Warn с полем error_kind.
func LoggingMiddleware(logger *zap.Logger) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, r *http.Request) {
			start := time.Now()
			al := &accessLog{}
			lw := &loggingResponseWriter{ResponseWriter: resp, statusCode: http.StatusOK}

			next.ServeHTTP(lw, r.WithContext(context.WithValue(r.Context(), accessLogKey{}, al)))

			fields := []zap.Field{
				zap.String("request_id", RequestIDFromContext(r.Context())),
				zap.String("method", r.Method),
				zap.String("uri", r.RequestURI),
				zap.Int("status", lw.statusCode),
				zap.Int("size", lw.size),
				zap.Duration("duration", time.Since(start)),
			}
			if al.errorKind == "" {
				logger.Info("HTTP Request", fields...)
				return
			}
			logger.Warn("HTTP Request", append(fields, zap.String("error_kind", al.errorKind))...)
		})
	}
}
