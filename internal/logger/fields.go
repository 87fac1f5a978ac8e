package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the call chain via context.
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"
	// FieldFID is the Farcaster identifier a request acts on
	FieldFID = "fid"
	// FieldPinID is the ledger id of a pin run
	FieldPinID = "pin_id"
	FieldCID   = "cid"
)

// Metric fields, attached per entry for aggregation.
const (
	FieldDurationMs = "duration_ms"
	FieldSize       = "size"
	FieldStatus     = "status"
)
