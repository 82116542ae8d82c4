package heredity

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyPersons is returned when a pedigree has more people than fit
	// in the 63-bit masks used to enumerate worlds.
	ErrTooManyPersons = errors.New("pedigree has more persons than can be enumerated")

	// ErrAlreadyNormalized is returned by Normalize on its second call.
	ErrAlreadyNormalized = errors.New("distributions were already normalized")
)

// DataIntegrityError describes a pedigree record that cannot be part of a
// valid family tree: a single recorded parent, a parent who is not in the
// pedigree, a cycle of ancestry, or conflicting duplicate records.
type DataIntegrityError struct {
	Person string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity: person %q: %s", e.Person, e.Reason)
}

// NormalizationError means that every enumerated world consistent with the
// evidence had probability zero, so Person's distribution for Field cannot be
// scaled to sum to one.
type NormalizationError struct {
	Person string
	Field  string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization: person %q: %s weights sum to zero", e.Person, e.Field)
}
