package models

// PasswordResetEvent is handed to the notifier after a reset token was issued.
// It is the only place the raw token exists outside the requester's mailbox.
type PasswordResetEvent struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	URL    string `json:"url"`
}
