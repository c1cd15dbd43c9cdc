package user

import "errors"

var (
	// ErrEmailTaken signals that an account already exists for the email.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrInvalidCredentials signals a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
