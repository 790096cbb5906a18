package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Totarae/URLRelay/internal/model"
	"github.com/Totarae/URLRelay/internal/provider"
	"github.com/Totarae/URLRelay/internal/provider/mocks"
	"github.com/Totarae/URLRelay/internal/relay"
)

func newTestHandler(t *testing.T, token string) (*Handler, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	svc := relay.NewService(client, relay.StaticCredential(token), zap.NewNop())
	return NewHandler(svc, zap.NewNop()), client
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestReceiveShorten_Success(t *testing.T) {
	h, client := newTestHandler(t, "secret")
	client.EXPECT().
		Shorten(gomock.Any(), "secret", "https://example.com/long").
		Return("https://bit.ly/abc123", nil).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"long_url":"https://example.com/long"}`))
	req.Header.Set(contentTypeKey, applicationJSONValue)
	rec := httptest.NewRecorder()

	h.ReceiveShorten(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, applicationJSONValue, rec.Header().Get(contentTypeKey))
	assert.JSONEq(t, `{"short_url":"https://bit.ly/abc123"}`, rec.Body.String())
}

func TestReceiveShorten_WrongMethod(t *testing.T) {
	for _, method := range []string{
		http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions, http.MethodHead,
	} {
		t.Run(method, func(t *testing.T) {
			h, client := newTestHandler(t, "secret")
			client.EXPECT().Shorten(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := httptest.NewRequest(method, "/shorten", strings.NewReader(`{"long_url":"https://example.com"}`))
			rec := httptest.NewRecorder()
			h.ReceiveShorten(rec, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			if method != http.MethodHead {
				assert.Equal(t, relay.MsgMethodNotAllowed, decodeError(t, rec).Error)
			}
		})
	}
}

func TestReceiveShorten_InvalidInput(t *testing.T) {
	bodies := map[string]string{
		"missing field": `{}`,
		"null field":    `{"long_url":null}`,
		"empty string":  `{"long_url":""}`,
		"no scheme":     `{"long_url":"example.com"}`,
		"ftp scheme":    `{"long_url":"ftp://example.com"}`,
		"whitespace":    `{"long_url":"https://exa mple.com"}`,
		"dot after //":  `{"long_url":"https://.example.com"}`,
		"number":        `{"long_url":42}`,
		"string body":   `"https://example.com"`,
		"array body":    `["https://example.com"]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			h, client := newTestHandler(t, "secret")
			client.EXPECT().Shorten(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.ReceiveShorten(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, relay.MsgInvalidURL, decodeError(t, rec).Error)
		})
	}
}

func TestReceiveShorten_MissingCredential(t *testing.T) {
	h, client := newTestHandler(t, "")
	client.EXPECT().Shorten(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"long_url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	h.ReceiveShorten(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, relay.MsgServerMisconfigured, body.Error)
	assert.Empty(t, body.Details)
}

func TestReceiveShorten_ProviderFailures(t *testing.T) {
	tests := []struct {
		name       string
		providerFn func() error
		wantStatus int
		check      func(t *testing.T, msg string)
	}{
		{
			name: "invalid long url is clarified",
			providerFn: func() error {
				return &provider.RejectedError{StatusCode: http.StatusBadRequest, Message: "INVALID_ARG_LONG_URL"}
			},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, msg string) {
				assert.NotEqual(t, "INVALID_ARG_LONG_URL", msg)
				assert.NotContains(t, msg, "INVALID_ARG_LONG_URL")
				assert.NotEmpty(t, msg)
			},
		},
		{
			name: "unknown code passed through",
			providerFn: func() error {
				return &provider.RejectedError{StatusCode: http.StatusUnprocessableEntity, Message: "WEIRD_NEW_CODE"}
			},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, msg string) {
				assert.Contains(t, msg, "WEIRD_NEW_CODE")
			},
		},
		{
			name:       "network failure",
			providerFn: func() error { return provider.ErrUnreachable },
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, msg string) {
				assert.Equal(t, relay.MsgUpstreamFailure, msg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, client := newTestHandler(t, "secret")
			client.EXPECT().Shorten(gomock.Any(), "secret", "https://example.com").Return("", tt.providerFn()).Times(1)

			req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"long_url":"https://example.com"}`))
			rec := httptest.NewRecorder()
			h.ReceiveShorten(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.check(t, decodeError(t, rec).Error)
		})
	}
}

func TestReceiveShorten_BrokenJSON(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":        `{"long_url":"https://example.com"`,
		"empty":            ``,
		"trailing garbage": `{"long_url":"https://example.com"} garbage`,
		"second value":     `{"long_url":"https://example.com"}{`,
		"two objects":      `{"long_url":"https://example.com"}{"long_url":"https://example.org"}`,
		"null body":        `null`,
	} {
		t.Run(name, func(t *testing.T) {
			h, client := newTestHandler(t, "secret")
			client.EXPECT().Shorten(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.ReceiveShorten(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, relay.MsgInternal, resp.Error)
			assert.NotEmpty(t, resp.Details)
		})
	}
}

type stubShortener func(ctx context.Context, longURL string) (string, error)

func (s stubShortener) Shorten(ctx context.Context, longURL string) (string, error) {
	return s(ctx, longURL)
}

func TestReceiveShorten_UntypedServiceError(t *testing.T) {
	h := NewHandler(stubShortener(func(context.Context, string) (string, error) {
		return "", assert.AnError
	}), zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"long_url":"https://example.com"}`))
	rec := httptest.NewRecorder()
	h.ReceiveShorten(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, relay.MsgInternal, decodeError(t, rec).Error)
}

func TestReceiveShorten_WrongTypeIsLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(stubShortener(func(context.Context, string) (string, error) {
		t.Fatal("service must not be called")
		return "", nil
	}), zap.New(core))

	req := httptest.NewRequest(http.MethodPost, "/shorten", strings.NewReader(`{"long_url":42}`))
	rec := httptest.NewRecorder()
	h.ReceiveShorten(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	entries := logs.FilterMessage("request body has unexpected JSON type").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "number", entries[0].ContextMap()["json_type"])
}

func TestPing(t *testing.T) {
	h, _ := newTestHandler(t, "")
	rec := httptest.NewRecorder()
	h.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
