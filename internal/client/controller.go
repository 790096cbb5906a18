package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/model"
)

// Сообщения, которые показывает контроллер.
const (
	MsgEmptyInput      = "Please enter a URL."
	MsgGeneric         = "An error occurred while shortening the URL."
	MsgUnreadableError = "A problem occurred while processing the error response."
	MsgCopyFailed      = "Failed to copy to the clipboard."

	CopyLabel   = "Copy"
	CopiedLabel = "Copied!"
)

// DefaultFeedbackDelay через сколько подпись кнопки копирования возвращается обратно.
const DefaultFeedbackDelay = 1500 * time.Millisecond

var (
	// ErrSubmitInProgress предыдущий запрос ещё не завершён.
	ErrSubmitInProgress = errors.New("submit already in progress")
	// ErrNothingToCopy на экране нет короткой ссылки.
	ErrNothingToCopy = errors.New("no short URL is displayed")
)

// Display отрисовывает View и подпись кнопки копирования.
type Display interface {
	Render(v View)
	SetCopyLabel(label string)
}

// Clipboard системный буфер обмена.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Notifier блокирующее уведомление пользователя.
type Notifier interface {
	Alert(message string)
}

// relayError сообщение об ошибке, полученное от ретранслятора.
type relayError struct {
	status  int
	message string
}

func (e *relayError) Error() string {
	return fmt.Sprintf("relay responded %d: %s", e.status, e.message)
}

// Controller контроллер формы. Безопасен для вызова из нескольких горутин.
type Controller struct {
	endpoint      string
	http          *http.Client
	display       Display
	clipboard     Clipboard
	notifier      Notifier
	logger        *zap.Logger
	feedbackDelay time.Duration

	inFlight atomic.Bool

	mu        sync.Mutex
	state     State
	copyTimer *time.Timer
}

// Option настраивает Controller.
type Option func(*Controller)

// WithHTTPClient задаёт HTTP-клиент для обращения к ретранслятору.
func WithHTTPClient(c *http.Client) Option {
	return func(ctrl *Controller) { ctrl.http = c }
}

// WithFeedbackDelay задаёт длительность подписи «Copied!».
func WithFeedbackDelay(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.feedbackDelay = d }
}

func NewController(endpoint string, display Display, clipboard Clipboard, notifier Notifier, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		endpoint:      endpoint,
		http:          http.DefaultClient,
		display:       display,
		clipboard:     clipboard,
		notifier:      notifier,
		logger:        logger,
		feedbackDelay: DefaultFeedbackDelay,
		state:         Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State текущее состояние экрана.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit отправляет longURL ретранслятору. Пока предыдущий вызов не завершён,
// возвращает ErrSubmitInProgress и ничего не отправляет. После возврата экран
// всегда находится в Success или ErrorState.
func (c *Controller) Submit(ctx context.Context, longURL string) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSubmitInProgress
	}
	defer c.inFlight.Store(false)

	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		c.show(ErrorState{Message: MsgEmptyInput})
		return nil
	}

	c.show(Loading{})

	shortURL, err := c.shorten(ctx, longURL)
	if err != nil {
		c.logger.Error("shorten failed", zap.Error(err))
		var rerr *relayError
		if errors.As(err, &rerr) {
			c.show(ErrorState{Message: rerr.message})
		} else {
			c.show(ErrorState{Message: MsgGeneric})
		}
		return nil
	}

	c.show(Success{ShortURL: shortURL})
	return nil
}

// CopyShortURL копирует показанную короткую ссылку в буфер обмена.
func (c *Controller) CopyShortURL(ctx context.Context) error {
	success, ok := c.State().(Success)
	if !ok {
		return ErrNothingToCopy
	}

	if err := c.clipboard.WriteText(ctx, success.ShortURL); err != nil {
		c.logger.Error("copy to clipboard failed", zap.Error(err))
		c.notifier.Alert(MsgCopyFailed)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.copyTimer != nil {
		c.copyTimer.Stop()
	}
	c.display.SetCopyLabel(CopiedLabel)
	c.copyTimer = time.AfterFunc(c.feedbackDelay, func() {
		c.display.SetCopyLabel(CopyLabel)
	})
	return nil
}

func (c *Controller) show(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	c.display.Render(Render(s))
}

func (c *Controller) shorten(ctx context.Context, longURL string) (string, error) {
	payload, err := json.Marshal(model.ShortenRequest{LongURL: &longURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", &relayError{status: resp.StatusCode, message: MsgUnreadableError}
		}
		if body.Error == "" {
			return "", &relayError{status: resp.StatusCode, message: fmt.Sprintf("Error: %d", resp.StatusCode)}
		}
		return "", &relayError{status: resp.StatusCode, message: body.Error}
	}

	var body model.ShortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode relay response: %w", err)
	}
	if body.ShortURL == "" {
		return "", errors.New("relay response has no short_url")
	}
	return body.ShortURL, nil
}
