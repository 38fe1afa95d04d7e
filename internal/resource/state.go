package resource

// Status tags which variant of State holds.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is the state of one keyed remote read: Loading, Error(message) or
// Ready(value). Value is only meaningful when Ready; Message only when Error.
type State[T any] struct {
	Status  Status
	Value   T
	Message string
}

// Loading returns the Loading state.
func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

// Failed returns an Error state carrying a human-readable summary.
func Failed[T any](message string) State[T] {
	return State[T]{Status: StatusError, Message: message}
}

// Ready returns a Ready state holding v.
func Ready[T any](v T) State[T] {
	return State[T]{Status: StatusReady, Value: v}
}

func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s State[T]) IsError() bool   { return s.Status == StatusError }
func (s State[T]) IsReady() bool   { return s.Status == StatusReady }
