// Package service implements the use cases of the reservation backend.
// Services validate input, consult the authorization policy and run all
// store work for one operation inside a single transaction.
package service

import (
    "errors"
    "strings"

    "github.com/iliyamo/train-ticket-reservation/internal/validator"
)

// Error kinds.  Handlers match them with errors.Is to pick a status code;
// the message shown to the caller is the concrete error's text.
var (
    ErrNotFound             = errors.New("not found")
    ErrUnauthorized         = errors.New("incorrect credentials")
    ErrForbidden            = errors.New("you are not authorized to perform this action")
    ErrConflict             = errors.New("conflict")
    ErrInsufficientCapacity = errors.New("not enough seats")
    ErrSessionExpired       = errors.New("session expired")
)

// ValidationError lists every problem found in a request, in field order.
type ValidationError struct {
    Messages []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, " ") }

// invalid converts a failed validator result into a *ValidationError.
func invalid(r validator.Result) error {
    if r.OK() {
        return nil
    }
    return &ValidationError{Messages: r.Messages}
}

// domainError pairs an error kind with a caller-facing message.
type domainError struct {
    kind error
    msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

func fail(kind error, msg string) error { return &domainError{kind: kind, msg: msg} }
