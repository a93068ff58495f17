package domain

// ID is used across domain entities.
type ID int64

// Record is one row of a resource as returned to clients.
type Record map[string]any

// Notification is a non-fatal advisory attached to a successful response.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

const (
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

// AppliedFilter is a validated constraint echoed back in response metadata.
type AppliedFilter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Sort defines sorting preference.
type Sort struct {
	Column    string `json:"column"`
	Direction string `json:"direction"` // asc / desc
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}
