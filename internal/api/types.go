package api

// StandardResponse wraps all API responses. Clients check Success first;
// when false, Error holds a message safe to display.
type StandardResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// LoginRequest is the body of POST /api/admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// IDResponse is returned by writes that create or address one record.
type IDResponse struct {
	ID string `json:"id"`
}

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
