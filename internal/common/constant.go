package common

const (
	// AuthorizationHeaderName carries the bearer token on inbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix is stripped from the header value when present.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is echoed back on every response.
	RequestIDHeaderName = "X-Request-ID"
)
