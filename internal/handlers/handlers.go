package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/middleware"
	"github.com/Totarae/URLRelay/internal/model"
	"github.com/Totarae/URLRelay/internal/relay"
)

const (
	contentTypeKey       = "Content-Type"
	applicationJSONValue = "application/json"
)

var errNullBody = errors.New("request body is null")

// Shortener сокращает URL через провайдера. Ошибки имеют тип *relay.Error.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// Handler HTTP-обработчики ретранслятора.
type Handler struct {
	Service Shortener
	Logger  *zap.Logger
}

func NewHandler(svc Shortener, logger *zap.Logger) *Handler {
	return &Handler{Service: svc, Logger: logger}
}

// ReceiveShorten принимает {"long_url"} и отвечает {"short_url"} либо {"error"}.
func (h *Handler) ReceiveShorten(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		res.Header().Set("Allow", http.MethodPost)
		h.writeError(res, req, relay.MethodNotAllowed())
		return
	}

	raw, err := io.ReadAll(req.Body)
	if err != nil {
		h.writeError(res, req, relay.Internal(err))
		return
	}

	// Тело целиком должно быть одним JSON-значением, хвост после него не допускается
	var body *model.ShortenRequest
	if err = json.Unmarshal(raw, &body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			h.Logger.Info("request body has unexpected JSON type",
				zap.String("request_id", middleware.RequestIDFromContext(req.Context())),
				zap.String("json_type", typeErr.Value),
				zap.Error(err),
			)
			h.writeError(res, req, relay.InvalidInput())
			return
		}
		h.writeError(res, req, relay.Internal(err))
		return
	}
	if body == nil {
		h.writeError(res, req, relay.Internal(errNullBody))
		return
	}

	var longURL string
	if body.LongURL != nil {
		longURL = *body.LongURL
	}

	shortURL, err := h.Service.Shorten(req.Context(), longURL)
	if err != nil {
		h.writeError(res, req, err)
		return
	}

	writeJSON(res, http.StatusOK, model.ShortenResponse{ShortURL: shortURL})
}

// Ping проверка живости.
func (h *Handler) Ping(res http.ResponseWriter, _ *http.Request) {
	writeJSON(res, http.StatusOK, model.StatusResponse{Status: "ok"})
}

// NotFound JSON-ответ для неизвестных путей.
func (h *Handler) NotFound(res http.ResponseWriter, _ *http.Request) {
	writeJSON(res, http.StatusNotFound, model.ErrorResponse{Error: "Not Found"})
}

// MethodNotAllowed JSON-ответ 405 для маршрутов, зарегистрированных под конкретный метод.
func (h *Handler) MethodNotAllowed(res http.ResponseWriter, req *http.Request) {
	h.writeError(res, req, relay.MethodNotAllowed())
}

// RecoverResponse отвечает клиенту после паники, перехваченной middleware.Recover.
func (h *Handler) RecoverResponse(res http.ResponseWriter, req *http.Request, err error) {
	h.writeError(res, req, relay.Internal(err))
}

func (h *Handler) writeError(res http.ResponseWriter, req *http.Request, err error) {
	var rerr *relay.Error
	if !errors.As(err, &rerr) {
		rerr = relay.Internal(err)
	}

	middleware.SetErrorKind(req.Context(), rerr.Kind.String())

	// Ошибки провайдера, конфигурации и валидации уже записаны выше
	switch rerr.Kind {
	case relay.KindMethodNotAllowed, relay.KindInternal:
		h.Logger.Error("shorten request failed",
			zap.String("request_id", middleware.RequestIDFromContext(req.Context())),
			zap.String("kind", rerr.Kind.String()),
			zap.String("method", req.Method),
			zap.Error(rerr.Err),
		)
	}

	writeJSON(res, rerr.Status, model.ErrorResponse{Error: rerr.Message, Details: rerr.Details})
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	res.Header().Set(contentTypeKey, applicationJSONValue)
	res.WriteHeader(status)
	_ = json.NewEncoder(res).Encode(v)
}
