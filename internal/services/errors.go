package services

import "errors"

var (
	ErrValidation            = errors.New("validation failed")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUserNotFound          = errors.New("user not found")
	ErrPlaceNotFound         = errors.New("place not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrMailNotConfigured     = errors.New("mail channel is not configured")
	ErrMailDelivery          = errors.New("mail delivery failed")
)
