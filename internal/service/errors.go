package service

import "errors"

var (
	// ErrInvalidRequest is returned for submissions missing items or folder
	ErrInvalidRequest = errors.New("invalid request")

	// ErrClosed is returned after Close was called
	ErrClosed = errors.New("service is closed")
)
