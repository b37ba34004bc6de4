package models

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination carries paging metadata for list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// PaginatedData wraps a list of items with its pagination block.
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// DeletePreview reports what a cascading delete would touch.
type DeletePreview struct {
	Parent        interface{}      `json:"parent"`
	Counts        map[string]int64 `json:"counts"`
	TotalAffected int64            `json:"total_affected"`
}

// CascadeResult reports what a cascading operation actually touched.
type CascadeResult struct {
	ParentAffected bool             `json:"parent_affected"`
	Counts         map[string]int64 `json:"counts"`
}
