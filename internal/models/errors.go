package models

import "errors"

// ErrNotFound is returned by stores when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// ErrDuplicateKey is returned by stores when a unique index rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")
