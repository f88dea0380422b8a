package model

// ShortenRequest is the body accepted by the shorten endpoint.
type ShortenRequest struct {
	URL string `json:"url"`
}

// ShortURL describes a freshly created mapping.
type ShortURL struct {
	Code        string `json:"code"`
	ShortURL    string `json:"shortUrl"`
	OriginalURL string `json:"originalUrl"`
}

// ErrorResponse is written for client errors on JSON endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
