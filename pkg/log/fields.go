package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"

	// Client state
	FieldResource = "resource"
	FieldKey      = "key"
	FieldRoomID   = "room_id"
	FieldMomentID = "moment_id"
	FieldUserID   = "user_id"

	// App
	FieldApp = "app"
)
