package types

import "encoding/json"

// ------------------------------
// Response Types
// ------------------------------

// AuthResponse wraps the auth-with-password endpoint response.
type AuthResponse struct {
	Token  string  `json:"token"`
	Record Session `json:"record"`
}

// ListResponse wraps the paginated record list endpoint response.
// Items stays raw so collection-specific callers decode their own
// record type.
type ListResponse struct {
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalItems int             `json:"totalItems"`
	TotalPages int             `json:"totalPages"`
	Items      json.RawMessage `json:"items"`
}
