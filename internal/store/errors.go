package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSyncRevisionNotFound is returned when no agreement is recorded for
	// the requested (store, uuid) pair.
	ErrSyncRevisionNotFound = errors.New("sync revision was not found")

	// ErrEmptyStoreID is returned when a repository method is called with an
	// empty store identifier.
	ErrEmptyStoreID = errors.New("store id is empty")

	// ErrEmptyUUID is returned when a repository method is called with an
	// empty item uuid.
	ErrEmptyUUID = errors.New("item uuid is empty")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan sync revision rows")
)
