package models

import "errors"

// ErrNotFound is returned (wrapped) by the platform layer when a named resource does not exist
var ErrNotFound = errors.New("resource not found")
