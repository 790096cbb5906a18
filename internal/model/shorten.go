package model

// ShortenRequest представляет тело запроса клиента к эндпоинту сокращения.
type ShortenRequest struct {
	LongURL *string `json:"long_url"`
}

// ShortenResponse представляет успешный ответ с сокращённым URL.
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// ErrorResponse тело ответа при любой ошибке.
// Details заполняется только на пути внутренней ошибки.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// StatusResponse ответ /ping.
type StatusResponse struct {
	Status string `json:"status"`
}
