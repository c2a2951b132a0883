package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/translation-service/internal/domain/dto"
)

var (
	// ErrLocaleNotFound is returned when a referenced locale code or id does not exist.
	ErrLocaleNotFound = &NotFoundError{Resource: "locale", Message: "locale not found"}
	// ErrNoLocales is returned by export when no locale exists at all.
	ErrNoLocales = &NotFoundError{Resource: "locales", Message: "no locales found"}
	// ErrTranslationNotFound is returned when a translation value id does not exist.
	ErrTranslationNotFound = &NotFoundError{Resource: "translation", Message: "translation not found"}
)

// ValidationError carries one message per invalid input field.
type ValidationError struct {
	Fields dto.ValidationErrors
}

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: dto.ValidationErrors{field: msg}}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// NotFoundError reports a missing resource. Errors match with errors.Is when they name the
// same resource.
type NotFoundError struct {
	Resource string
	Key      string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Resource + " not found"
}

// Is matches another *NotFoundError for the same resource.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	return ok && t.Resource == e.Resource
}

// ConflictError reports a uniqueness violation, e.g. a duplicate locale code.
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// StorageError wraps an infrastructure failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr wraps err as a StorageError unless it already carries a domain error.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		nf *NotFoundError
		ce *ConflictError
		ve *ValidationError
		se *StorageError
	)
	if errors.As(err, &nf) || errors.As(err, &ce) || errors.As(err, &ve) || errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
