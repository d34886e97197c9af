// Package apperror defines the error kinds services return and the
// response layer translates into HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindAlreadyExists
	KindValidation
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindConflict
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for KindValidation.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds "<Resource> not found with <field>: <value>".
func NotFound(resource, field string, value any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found with %s: %v", resource, field, value)}
}

// AlreadyExists builds "<Resource> already exists with <field>: <value>".
func AlreadyExists(resource, field string, value any) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf("%s already exists with %s: %v", resource, field, value)}
}

// Conflict is a 409 that is not a uniqueness clash, e.g. deleting a row
// that other rows still reference.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// FieldError is a validation failure on a single field.
func FieldError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: map[string]string{field: msg}}
}

// Validation converts the result of an ozzo Validate() call. nil stays nil,
// internal rule errors are returned unchanged.
func Validation(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return &Error{Kind: KindValidation, Message: err.Error(), Err: err}
	}
	fields := map[string]string{}
	flatten("", ve, fields)
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields, Err: err}
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for field, fe := range errs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fe, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = fe.Error()
	}
}

// KindOf returns the kind of err, or 0 for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsNotFound(err error) bool      { return KindOf(err) == KindNotFound }
func IsAlreadyExists(err error) bool { return KindOf(err) == KindAlreadyExists }
func IsValidation(err error) bool    { return KindOf(err) == KindValidation }
