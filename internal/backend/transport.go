package backend

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// authTransport attaches the bearer token to every outgoing request.
type authTransport struct {
	token string
	next  http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.next.RoundTrip(req)
}

// loggingTransport logs each backend request with timing information.
type loggingTransport struct {
	logger zerolog.Logger
	next   http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	event := t.logger.Info()
	if err != nil {
		event = t.logger.Error().Err(err)
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	event.
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", status).
		Dur("duration", duration).
		Msg("backend request")

	return resp, err
}

// newTransport builds the client's round-tripper chain:
// logging -> auth -> base.
func newTransport(token string, logger zerolog.Logger, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{
		logger: logger,
		next:   &authTransport{token: token, next: base},
	}
}
