package models

import "errors"

// ErrMissingIdentifier is returned when a raw document carries no _id.
var ErrMissingIdentifier = errors.New("document has no _id")
