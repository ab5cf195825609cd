package admin

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrAgentNotFound      = errors.New("agent not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)
