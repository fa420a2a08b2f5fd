package store

import "errors"

var (
	// ErrUsernameConflict is returned when a username already exists
	ErrUsernameConflict = errors.New("username already exists")

	// ErrRecordNotFound is returned in place of GORM's not found error
	// so callers never depend on the ORM directly
	ErrRecordNotFound = errors.New("record not found")
)
