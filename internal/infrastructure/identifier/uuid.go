// Package identifier provides the production ID generator. Tests supply
// their own deterministic implementations of ports.IDGenerator.
package identifier

import "github.com/google/uuid"

// UUIDGenerator produces random 128-bit identifiers rendered in the
// canonical UUID text form.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
