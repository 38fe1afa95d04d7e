package service

import (
	"errors"
	"net/http"

	"github.com/weiawesome/momentroom/internal/api"
)

// Summarize turns a load error into the message kept in an Error state.
func Summarize(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Structured && apiErr.Message != "" {
			return apiErr.Message
		}
		if text := http.StatusText(apiErr.StatusCode); text != "" {
			return text
		}
	}
	return err.Error()
}
