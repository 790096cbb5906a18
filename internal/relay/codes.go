package relay

import "fmt"

const providerLabel = "Bitly error: "

// providerMessages переводит коды ошибок провайдера в понятные пользователю сообщения.
// Коды вне таблицы отдаются как есть с префиксом providerLabel.
var providerMessages = map[string]string{
	"INVALID_ARG_LONG_URL": "The URL you entered is not valid. The shortening service cannot process this format.",
	"ALREADY_A_BITLY_LINK": "This URL is already a short link.",
	"FORBIDDEN":            "The shortening service refused the request. Check the access token permissions.",
}

// ProviderMessage строит сообщение для клиента по ответу провайдера с ошибкой.
func ProviderMessage(status int, code string, unreadable bool) string {
	switch {
	case unreadable:
		return providerLabel + "the error response could not be read"
	case code == "":
		return fmt.Sprintf("Bitly API error (%d)", status)
	}
	if msg, ok := providerMessages[code]; ok {
		return msg
	}
	return providerLabel + code
}
