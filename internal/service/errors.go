// Package service implements the blogdesk use cases: categories, blogs,
// the two pin lists, the news carousel, page analytics and admin auth.
// Services validate input, check the caller's capability, and talk to the
// content store and image store through small interfaces.
package service

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; the HTTP layer maps each kind to
// a status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTooLarge     = errors.New("payload too large")
	ErrUpstream     = errors.New("upstream failure")
)

// serverErrorMessage is shown to clients for any upstream failure.
const serverErrorMessage = "Server error"

// Error is a classified service error. Message is safe to show to clients;
// Err, when set, carries the underlying cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func validation(msg string) error   { return &Error{Kind: ErrValidation, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }
func notFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }

// upstream wraps a store or image store failure.
func upstream(op string, err error) error {
	return &Error{Kind: ErrUpstream, Message: serverErrorMessage, Err: fmt.Errorf("%s: %w", op, err)}
}

// Message returns the client-facing message for err, falling back to the
// generic server error for anything unclassified.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) && se.Kind != ErrUpstream {
		return se.Message
	}
	return serverErrorMessage
}
