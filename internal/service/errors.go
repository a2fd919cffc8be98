package service

import "errors"

var (
	// ErrInvalidInput indicates a submitted field is empty or over its length limit.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCredentialsRequired indicates the login form was submitted with an empty field.
	ErrCredentialsRequired = errors.New("credentials required")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
