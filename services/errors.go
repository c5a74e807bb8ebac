package services

import "errors"

// Domain errors surfaced to callers unchanged. All of them are recoverable:
// the failed operation rolls back and the store is left as it was.
var (
	// ErrCannotCreate: a cycle open was attempted while one is already open.
	// Close the current cycle and retry.
	ErrCannotCreate = errors.New("could not create cycle: a non-closed cycle exists, close it and retry")

	// ErrNoOpenCycle: an entry create (or current-cycle read) found no open
	// cycle to attach to.
	ErrNoOpenCycle = errors.New("no open cycle found")

	// ErrEntryNotFound: an update targeted an id that does not exist.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrConstraintViolation: the store rejected a row (negative kcal,
	// non-positive maintenance). Values are not pre-validated in application
	// code; the schema is the single authority.
	ErrConstraintViolation = errors.New("value rejected by store constraint")

	// ErrUnknownEntryKind: the kind discriminator named neither entry table.
	ErrUnknownEntryKind = errors.New("unknown entry kind")
)
