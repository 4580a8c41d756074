package services

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing input. Missing lists the
// document/field names that were absent, when that is the cause.
type ValidationError struct {
	Message string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return e.Message + ": " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

// ConflictError reports a uniqueness violation and names the offending field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("already exists: %s", e.Field)
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// AuthError covers both bad credentials and accounts not cleared for login.
// Status and RejectionReason are filled for unapproved agent logins so the
// caller can tell the applicant where they stand.
type AuthError struct {
	Message         string
	Status          string
	RejectionReason string
}

func (e *AuthError) Error() string {
	return e.Message
}

type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// UpstreamError wraps a blob store or notifier failure. Operations fail
// before any record write when this occurs.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
