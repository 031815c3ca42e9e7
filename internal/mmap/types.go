package mmap

import "errors"

var (
	// ErrClosed is returned when attempting to access a closed mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when the requested mapping size is not positive.
	ErrInvalidSize = errors.New("mmap: invalid mapping size")
	// ErrOutOfRange is returned when a range does not lie inside the mapping.
	ErrOutOfRange = errors.New("mmap: range outside mapping")
)
