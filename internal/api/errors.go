package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/weiawesome/momentroom/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response. Structured is set when the body carried a
// platform error code; otherwise Code is zero and Message is the raw body.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Structured bool
}

func (e *APIError) Error() string {
	if e.Structured {
		return fmt.Sprintf("api error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Is maps well-known statuses onto sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body domain.ErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Code != nil {
		apiErr.Code = *body.Code
		apiErr.Message = body.Message
		apiErr.Structured = true
		return apiErr
	}

	apiErr.Message = string(data)
	return apiErr
}
