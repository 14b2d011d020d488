package ports

// IDGenerator produces opaque unique identifiers for new records. It is
// injected rather than called as a package-level function so tests can
// supply deterministic ids.
type IDGenerator interface {
	NewID() string
}
