package wdq

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound is returned by key-style accessors when the requested
	// language, site, or property has no entry.
	ErrNotFound = errors.New("not found")

	// ErrMalformedData is returned when a field required by an accessor is
	// missing from the raw entity data, or when an enumerated identifier
	// (badge, rank) is not recognized. Validation is lazy; a malformed field
	// only surfaces when something actually reads it.
	ErrMalformedData = errors.New("malformed entity data")

	// ErrNoFetcher is returned by Resolve when the entity was constructed
	// without WithFetcher.
	ErrNoFetcher = errors.New("no entity fetcher configured")
)
