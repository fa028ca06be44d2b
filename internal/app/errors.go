package service

import "errors"

// Sentinel kinds for run failures.
var (
	ErrFetchSession = errors.New("fetch session failed")
	ErrCanceled     = errors.New("run canceled")
	ErrEncode       = errors.New("encode document failed")
)
