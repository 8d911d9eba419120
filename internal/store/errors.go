package store

import (
	"errors"
)

var (
	ErrConflict     = errors.New("username already taken")
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("not allowed")
)
