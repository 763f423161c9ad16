package impl

import "errors"

var (
	ErrMissingFields = errors.New("name, email and password are required")
)
