package models

// ValidationError marks missing or invalid input. The operation aborts
// before any mutation or notification happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthorizationError marks an actor lacking the required role or
// ownership. Distinct from NotFoundError even when a policy hides
// existence.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// NotFoundError marks an entity id that does not resolve.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
