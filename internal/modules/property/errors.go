package property

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("property not found")
	ErrAgentNotFound = errors.New("agent not found")
	ErrNotAnAgent    = errors.New("user is not an agent")
)
