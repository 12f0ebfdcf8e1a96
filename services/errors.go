package services

// Domain error types. Controllers translate them into HTTP status codes:
// ValidationError, StockError, DuplicateError and StateError map to 400,
// AuthError to 401 and NotFoundError to 404. Messages are surfaced to the
// caller as-is.

// ValidationError signals malformed, missing or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError signals that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StockError signals insufficient inventory for the requested quantity.
type StockError struct {
	Message string
}

func (e *StockError) Error() string { return e.Message }

// DuplicateError signals an attempt to re-add an entry that must be unique.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

// AuthError signals that no user identity could be resolved.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StateError signals an illegal lifecycle transition.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }
