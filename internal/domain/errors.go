package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// ValidationKind names the rule a rejected input broke.
type ValidationKind string

const (
	InvalidPassword ValidationKind = "INVALID_PASSWORD"
	InvalidEmail    ValidationKind = "INVALID_EMAIL"
)

// ValidationError rejects a password or email before any state changes.
type ValidationError struct {
	Kind ValidationKind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidPassword:
		return "password must be 8-20 characters with a digit, a lowercase letter, an uppercase letter and one of @#$%^&-+=() and no whitespace"
	case InvalidEmail:
		return "email address is malformed"
	}
	return string(e.Kind)
}

// Is matches any ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }

var (
	ErrInvalidPassword = &ValidationError{Kind: InvalidPassword}
	ErrInvalidEmail    = &ValidationError{Kind: InvalidEmail}
)

// CredentialKind names why a one-time code or account check failed.
type CredentialKind string

const (
	CodeNotFound    CredentialKind = "CODE_NOT_FOUND"
	CodeExpired     CredentialKind = "CODE_EXPIRED"
	CodeMismatch    CredentialKind = "CODE_MISMATCH"
	CodeAlreadyUsed CredentialKind = "CODE_ALREADY_USED"
	AccountNotFound CredentialKind = "ACCOUNT_NOT_FOUND"
)

// CredentialError is returned by code redemption and account lookup in the
// verification workflows. It is never retried automatically.
type CredentialError struct {
	Kind CredentialKind
}

func (e *CredentialError) Error() string {
	switch e.Kind {
	case CodeNotFound:
		return "no verification code issued"
	case CodeExpired:
		return "verification code expired"
	case CodeMismatch:
		return "verification code does not match"
	case CodeAlreadyUsed:
		return "verification code already used"
	case AccountNotFound:
		return "account not found"
	}
	return string(e.Kind)
}

func (e *CredentialError) Is(target error) bool {
	t, ok := target.(*CredentialError)
	return ok && t.Kind == e.Kind
}

var (
	ErrCodeNotFound    = &CredentialError{Kind: CodeNotFound}
	ErrCodeExpired     = &CredentialError{Kind: CodeExpired}
	ErrCodeMismatch    = &CredentialError{Kind: CodeMismatch}
	ErrCodeAlreadyUsed = &CredentialError{Kind: CodeAlreadyUsed}
	ErrAccountNotFound = &CredentialError{Kind: AccountNotFound}
)

// DeliveryWarning reports a failed notification after a code was issued.
// It travels inside results, not as an error return.
type DeliveryWarning struct {
	Err error
}

func (w *DeliveryWarning) Error() string {
	return fmt.Sprintf("notification not delivered: %v", w.Err)
}

func (w *DeliveryWarning) Unwrap() error { return w.Err }
