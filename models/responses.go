package models

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// MessageResponse carries a human readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReportsResponse is returned by GET /reports.
type ReportsResponse struct {
	Insights []string `json:"insights"`
}

// HealthResponse is returned by GET /.
type HealthResponse struct {
	Status string `json:"status"`
}
