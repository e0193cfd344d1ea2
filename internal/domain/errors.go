// Package domain holds the error taxonomy shared by every operation. Services
// wrap these sentinels with context via fmt.Errorf and %w; the handler layer
// maps them to HTTP status codes with errors.Is.
package domain

import "errors"

var (
	// ErrUnauthorized: no caller identity, or the caller's organization
	// context does not match the resource's organization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound: a referenced user, project, sprint or issue does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied: the caller is authenticated and in-org but lacks
	// the role or ownership the operation requires.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrValidationConflict: a domain-rule violation that is not an
	// authorization failure, e.g. a bad state transition or a second active
	// sprint.
	ErrValidationConflict = errors.New("validation conflict")

	// ErrTransactionFailure: a batch commit failed and was rolled back; the
	// caller may assume no partial effect.
	ErrTransactionFailure = errors.New("transaction failure")
)
