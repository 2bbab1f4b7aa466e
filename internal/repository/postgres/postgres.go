package postgres

import "github.com/pkg/errors"

// Shared repository sentinels. Callers compare with errors.Is.
var (
	ErrNotFound      = errors.New("row not found")
	ErrAlreadyExists = errors.New("row already exists")
)
