package storage

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrWrite = errors.New("write document failed")
)
