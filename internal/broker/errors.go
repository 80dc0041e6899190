package broker

import "errors"

var (
	// ErrMissingBaseURL is returned when the client is built without a broker URL.
	ErrMissingBaseURL = errors.New("broker base URL is required")

	// ErrMissingAPIKey is returned when the client is built without an API key.
	ErrMissingAPIKey = errors.New("broker API key is required")
)
