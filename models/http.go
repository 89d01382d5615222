package models

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,bcryptlen"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required,bcryptlen"`
}

// ForgotRequest is the body of POST /auth/forgot.
type ForgotRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// ResetRequest is the body of POST /auth/reset.
type ResetRequest struct {
	Token    string `json:"token" validate:"required,max=128"`
	Password string `json:"password" validate:"required,bcryptlen"`
}

// DemoModeRequest is the body of PATCH /users/{id}/demo-mode.
// DemoMode is a pointer so that a missing field is told apart from false.
type DemoModeRequest struct {
	DemoMode *bool `json:"demoMode" validate:"required"`
}
