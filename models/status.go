package models

// API status values reported by the vendor probe
const (
	StatusNoKey     = "no_key"
	StatusConnected = "connected"
	StatusError     = "error"
)

// APIStatus is the result of probing the configured vendor.
type APIStatus struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Service    string `json:"service,omitempty"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}

// ConnectionStatus is the banner shown to dashboard users.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message"`
	Type      string `json:"type"` // success, warning, error or info
}
