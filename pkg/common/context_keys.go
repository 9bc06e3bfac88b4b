package common

// Keys for values stored in the fiber context by middleware.
const (
	TraceIdKey     = "trace_id"
	UserContextKey = "username"
)

const TraceIdHeader = "X-Trace-Id"
