package router

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/handlers"
	"github.com/Totarae/URLRelay/internal/middleware"
)

// LegacyShortenPath путь, по которому эндпоинт был доступен как serverless-функция.
const LegacyShortenPath = "/.netlify/functions/shorten"

// NewRouter создаёт и настраивает маршрутизатор
func NewRouter(handler *handlers.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.GzipMiddleware)
	// Recover внутри gzip: ответ после паники тоже проходит через сжатие
	r.Use(middleware.Recover(logger, handler.RecoverResponse))

	// Метод проверяет сам обработчик, чтобы 405 тоже отдавался в JSON
	r.HandleFunc("/shorten", handler.ReceiveShorten)
	r.HandleFunc(LegacyShortenPath, handler.ReceiveShorten)
	r.Get("/ping", handler.Ping)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	return r
}
