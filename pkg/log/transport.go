package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID is the correlation header stamped on every outgoing request.
const HeaderRequestID = "X-Request-ID"

// Transport returns an http.RoundTripper that:
//  1. Reuses or generates a request ID and sets the X-Request-ID header.
//  2. Logs the completed call with status and latency.
//
// A nil next uses http.DefaultTransport.
func Transport(logger zerolog.Logger, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{logger: logger, next: next}
}

type loggingTransport struct {
	logger zerolog.Logger
	next   http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	reqID := req.Header.Get(HeaderRequestID)
	if reqID == "" {
		reqID = uuid.New().String()
		// RoundTrippers must not modify the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set(HeaderRequestID, reqID)
	}

	child := t.logger.With().
		Str(FieldRequestID, reqID).
		Str(FieldMethod, req.Method).
		Str(FieldPath, req.URL.Path).
		Logger()

	resp, err := t.next.RoundTrip(req)
	latency := float64(time.Since(start).Milliseconds())
	if err != nil {
		child.Warn().Err(err).Float64(FieldLatency, latency).Msg("request failed")
		return nil, err
	}

	evt := child.Debug()
	if resp.StatusCode >= http.StatusInternalServerError {
		evt = child.Warn()
	}
	evt.Int(FieldStatus, resp.StatusCode).
		Float64(FieldLatency, latency).
		Msg("request completed")

	return resp, nil
}
