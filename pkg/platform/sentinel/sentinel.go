package sentinel

import "errors"

// Sentinel errors for storage facts. Repositories return these (optionally
// wrapped); the ingestion service translates them into coded domain errors.
//
//   - ErrNotFound: no row matches the lookup
//   - ErrConflict: a uniqueness key is already taken
//   - ErrInvalidState: the row exists but cannot take the requested change
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
