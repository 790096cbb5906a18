// Package provider реализует HTTP-клиент внешнего сервиса сокращения ссылок (Bitly API v4).
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/model"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks github.com/Totarae/URLRelay/internal/provider Client

// DefaultEndpoint адрес метода сокращения у провайдера.
const DefaultEndpoint = "https://api-ssl.bitly.com/v4/shorten"

// DefaultDomain домен, в котором провайдер выпускает короткие ссылки.
const DefaultDomain = "bit.ly"

const maxBodySize = 1 << 20

var (
	// ErrUnreachable вызов провайдера не завершился (сеть, DNS, таймаут).
	ErrUnreachable = errors.New("provider is unreachable")
	// ErrMalformedResponse ответ провайдера не удалось разобрать.
	ErrMalformedResponse = errors.New("provider response is malformed")
)

// RejectedError провайдер ответил статусом ошибки.
type RejectedError struct {
	StatusCode int
	// Message машиночитаемый код ошибки провайдера, может быть пустым.
	Message string
	// Unreadable тело ошибки не является JSON.
	Unreadable bool
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider rejected request with status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider rejected request with status %d: %s", e.StatusCode, e.Message)
}

// Client сокращает длинный URL у провайдера.
type Client interface {
	Shorten(ctx context.Context, token, longURL string) (string, error)
}

// HTTPClient реализация Client поверх net/http.
type HTTPClient struct {
	endpoint string
	domain   string
	http     *http.Client
	logger   *zap.Logger
}

// NewHTTPClient создаёт клиента. timeout == 0 означает отсутствие явного таймаута.
func NewHTTPClient(endpoint, domain string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if domain == "" {
		domain = DefaultDomain
	}
	return &HTTPClient{
		endpoint: endpoint,
		domain:   domain,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Shorten выполняет ровно один POST к провайдеру, без повторов.
func (c *HTTPClient) Shorten(ctx context.Context, token, longURL string) (string, error) {
	payload, err := json.Marshal(model.ProviderShortenRequest{LongURL: longURL, Domain: c.domain})
	if err != nil {
		return "", errors.Wrap(err, "encode provider request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build provider request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrUnreachable, "post %s: %v", c.endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("provider responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", errors.Wrapf(ErrUnreachable, "read provider response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rejected := &RejectedError{StatusCode: resp.StatusCode}
		var errBody model.ProviderErrorResponse
		if err := json.Unmarshal(body, &errBody); err != nil {
			rejected.Unreadable = true
		} else {
			rejected.Message = errBody.Message
		}
		return "", rejected
	}

	var result model.ProviderShortenResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", errors.Wrapf(ErrMalformedResponse, "decode provider response: %v", err)
	}
	if result.Link == "" {
		return "", errors.Wrap(ErrMalformedResponse, "provider response has no link")
	}
	return result.Link, nil
}
