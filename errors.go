package lfucache

import "errors"

var (
	// ErrInvalidConfiguration is returned by New and LoadConfig when capacity,
	// TTL or sweep interval are out of range.
	ErrInvalidConfiguration = errors.New("lfucache: invalid configuration")

	// ErrInvalidArgument is returned by Put when the key or value is nil.
	ErrInvalidArgument = errors.New("lfucache: invalid argument")
)
