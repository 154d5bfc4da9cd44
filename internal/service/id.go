package service

import "github.com/google/uuid"

// newID returns a fresh UUID string. Identifiers are generated
// application-side so records are addressable before the insert returns.
func newID() string { return uuid.NewString() }
