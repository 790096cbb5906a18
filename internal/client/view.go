// Package client реализует контроллер формы сокращения ссылок: состояние экрана,
// отправку запроса ретранслятору и копирование результата в буфер обмена.
package client

// State одно из состояний экрана: Idle, Loading, Success, ErrorState.
type State interface {
	isState()
}

// Idle начальное состояние, ни одна область не показана.
type Idle struct{}

// Loading запрос к ретранслятору выполняется.
type Loading struct{}

// Success ретранслятор вернул короткую ссылку.
type Success struct {
	ShortURL string
}

// ErrorState показано сообщение об ошибке.
type ErrorState struct {
	Message string
}

func (Idle) isState()       {}
func (Loading) isState()    {}
func (Success) isState()    {}
func (ErrorState) isState() {}

// View то, что видит пользователь. Видна не более чем одна область.
type View struct {
	LoadingVisible bool
	SuccessVisible bool
	ErrorVisible   bool
	LinkHref       string
	LinkText       string
	ErrorText      string
}

// Render чистое отображение состояния в видимые элементы.
func Render(s State) View {
	switch st := s.(type) {
	case Loading:
		return View{LoadingVisible: true}
	case Success:
		return View{SuccessVisible: true, LinkHref: st.ShortURL, LinkText: st.ShortURL}
	case ErrorState:
		return View{ErrorVisible: true, ErrorText: st.Message}
	default:
		return View{}
	}
}
