package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// PanicHandler формирует ответ клиенту после перехваченной паники.
type PanicHandler func(w http.ResponseWriter, r *http.Request, err error)

// Recover не даёт панике обработчика выйти за пределы HTTP-слоя.
func Recover(logger *zap.Logger, onPanic PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				logger.Error("panic recovered",
					zap.String("request_id", RequestIDFromContext(r.Context())),
					zap.Error(err),
					zap.Stack("stack"),
				)
				onPanic(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
