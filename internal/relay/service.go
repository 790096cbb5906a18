// Package relay пересылает запрос на сокращение ссылки провайдеру
// и приводит его ответы к единому контракту {short_url} / {error}.
package relay

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/provider"
)

// CredentialSource возвращает токен провайдера в момент вызова.
// Пустая строка означает, что токен не настроен.
type CredentialSource func() string

// StaticCredential источник с фиксированным токеном.
func StaticCredential(token string) CredentialSource {
	return func() string { return token }
}

// Service не хранит состояния между вызовами.
type Service struct {
	client     provider.Client
	credential CredentialSource
	logger     *zap.Logger
}

func NewService(client provider.Client, credential CredentialSource, logger *zap.Logger) *Service {
	return &Service{
		client:     client,
		credential: credential,
		logger:     logger,
	}
}

// Shorten проверяет URL, подставляет токен и делает ровно один вызов провайдера.
// Любая ошибка имеет тип *Error.
func (s *Service) Shorten(ctx context.Context, longURL string) (string, error) {
	if !ValidURL(longURL) {
		s.logger.Info("rejected invalid long_url", zap.String("long_url", longURL))
		return "", InvalidInput()
	}

	token := s.credential()
	if token == "" {
		s.logger.Error("provider access token is not configured")
		return "", serverMisconfigured()
	}

	link, err := s.client.Shorten(ctx, token, longURL)
	if err != nil {
		var rejected *provider.RejectedError
		if errors.As(err, &rejected) {
			s.logger.Error("provider rejected request",
				zap.Int("status", rejected.StatusCode),
				zap.String("provider_message", rejected.Message),
				zap.Bool("unreadable_body", rejected.Unreadable),
				zap.String("long_url", longURL),
			)
			return "", &Error{
				Kind:    KindUpstreamRejected,
				Status:  rejected.StatusCode,
				Message: ProviderMessage(rejected.StatusCode, rejected.Message, rejected.Unreadable),
				Err:     err,
			}
		}

		s.logger.Error("provider call failed", zap.Error(err), zap.String("long_url", longURL))
		return "", upstreamError(err)
	}

	return link, nil
}
