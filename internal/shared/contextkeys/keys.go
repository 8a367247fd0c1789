package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "opsbridge context key " + string(c)
}

// RequestIDKey is the key for the per-request identifier in context.Context
const RequestIDKey = contextKey("requestID")

// CorrelationIDKey is the key for the batch correlation identifier in context.Context
const CorrelationIDKey = contextKey("correlationID")

// RequesterKey is the key for the authenticated requester's display name
const RequesterKey = contextKey("requester")
