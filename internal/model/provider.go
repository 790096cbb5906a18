package model

// ProviderShortenRequest тело запроса к API провайдера (POST /v4/shorten).
type ProviderShortenRequest struct {
	LongURL string `json:"long_url"`
	Domain  string `json:"domain"`
}

// ProviderShortenResponse успешный ответ провайдера. Нас интересует только link.
type ProviderShortenResponse struct {
	Link    string `json:"link"`
	ID      string `json:"id,omitempty"`
	LongURL string `json:"long_url,omitempty"`
}

// ProviderErrorResponse тело ответа провайдера при ошибке.
type ProviderErrorResponse struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Resource    string `json:"resource,omitempty"`
}
