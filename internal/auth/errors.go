package auth

import "errors"

var (
	ErrInvalidHeader        = errors.New("authorization header is not Basic")
	ErrDecode               = errors.New("authorization token is not valid base64 UTF-8")
	ErrMalformedCredentials = errors.New("credentials have no ':' separator")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidSecret        = errors.New("invalid password")
	ErrSessionNotFound      = errors.New("session not found")
	ErrInvalidSessionInput  = errors.New("session id and user id must not be empty")
	ErrAlreadyExists        = errors.New("user already exists")
	ErrSecretTooLong        = errors.New("password exceeds maximum length of 72 bytes")
	ErrEmailRequired        = errors.New("email is required")
	ErrPasswordRequired     = errors.New("password is required")
)
