package log

// ZapConfig configures the zap backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // "production" or anything else for development
	Encoding     string // "console" or "json"
	ColorEnabled bool
}

type ctxKey string

const (
	// SessionIDKey carries the conversation session id on a context.
	SessionIDKey ctxKey = "session_id"
	// TraceIDKey carries the request trace id on a context.
	TraceIDKey ctxKey = "trace_id"
)

const (
	ModeProduction  = "production"
	EncodingConsole = "console"
	EncodingJSON    = "json"
)
