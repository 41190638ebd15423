package constants

// Context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyID        = "id"
)

const HeaderRequestID = "X-Request-ID"

// MaxProjectCodeLength is the width of the projects.code column.
const MaxProjectCodeLength = 50
