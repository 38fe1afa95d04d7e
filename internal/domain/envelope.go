package domain

// Envelope is the outer wrapper of every platform response.
type Envelope[T any] struct {
	Result T `json:"result"`
}

// ErrorBody is the structured error payload of a failed request.
type ErrorBody struct {
	Code    *int   `json:"code"`
	Message string `json:"message"`
}
