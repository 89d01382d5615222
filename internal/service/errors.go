package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidResetToken      = errors.New("invalid token")
	ErrResetTokenNotGenerated = errors.New("reset token was not generated")
	ErrPasswordHashingFailed  = errors.New("password hashing failed")

	ErrVersionIsNotSpecified      = errors.New("app version is not specified")
	ErrTokenSignKeyIsNotSpecified = errors.New("token sign key is not specified")
)
