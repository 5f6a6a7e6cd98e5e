package cache

import "errors"

var (
	ErrNotFound  = errors.New("cache: key not found")
	ErrClosed    = errors.New("cache: closed")
	ErrMarshal   = errors.New("cache: marshal value")
	ErrUnmarshal = errors.New("cache: unmarshal value")
)
