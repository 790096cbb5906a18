package relay

import (
	"fmt"
	"net/http"
)

// Kind классифицирует отказ ретранслятора.
type Kind int

const (
	// KindInternal непредвиденная ошибка, перехваченная на верхнем уровне.
	KindInternal Kind = iota
	// KindMethodNotAllowed метод запроса отличен от POST.
	KindMethodNotAllowed
	// KindInvalidInput long_url отсутствует или не похож на http(s) URL.
	KindInvalidInput
	// KindServerMisconfigured не задан токен провайдера.
	KindServerMisconfigured
	// KindUpstreamError провайдер недоступен или прислал неразборчивый ответ.
	KindUpstreamError
	// KindUpstreamRejected провайдер ответил статусом ошибки.
	KindUpstreamRejected
)

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "MethodNotAllowed"
	case KindInvalidInput:
		return "InvalidInput"
	case KindServerMisconfigured:
		return "ServerMisconfigured"
	case KindUpstreamError:
		return "UpstreamError"
	case KindUpstreamRejected:
		return "UpstreamRejected"
	default:
		return "Internal"
	}
}

// Сообщения, которые видит пользователь.
const (
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgInvalidURL          = "Invalid URL format."
	MsgServerMisconfigured = "Server configuration error."
	MsgUpstreamFailure     = "Failed to shorten the URL. Please try again later."
	MsgInternal            = "An internal server error occurred."
)

// Error ошибка ретранслятора с готовым HTTP-статусом и сообщением для клиента.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Details заполняется только для KindInternal.
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MethodNotAllowed ошибка для любого метода кроме POST.
func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: MsgMethodNotAllowed}
}

// InvalidInput ошибка валидации long_url.
func InvalidInput() *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: MsgInvalidURL}
}

// Internal оборачивает непредвиденную ошибку; текст причины уходит в Details.
func Internal(err error) *Error {
	e := &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternal, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func serverMisconfigured() *Error {
	return &Error{Kind: KindServerMisconfigured, Status: http.StatusInternalServerError, Message: MsgServerMisconfigured}
}

func upstreamError(err error) *Error {
	return &Error{Kind: KindUpstreamError, Status: http.StatusInternalServerError, Message: MsgUpstreamFailure, Err: err}
}
