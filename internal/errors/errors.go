package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// DuplicateKind names the field on which a duplicate was detected
type DuplicateKind string

const (
	DuplicateName DuplicateKind = "name"
	DuplicateLink DuplicateKind = "link"
)

// DuplicateError represents a rejected insert because an equivalent record already exists
type DuplicateError struct {
	Kind     DuplicateKind
	Existing string // name of the conflicting record
}

func (e *DuplicateError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("a group with this %s already exists: %s", e.Kind, e.Existing)
	}
	return fmt.Sprintf("a group with this %s already exists", e.Kind)
}

// Is enables errors.Is() comparison for DuplicateError
func (e *DuplicateError) Is(target error) bool {
	t, ok := target.(*DuplicateError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// StoreUnavailableError represents a backing store that is not configured or not reachable
type StoreUnavailableError struct {
	Store string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s store unavailable: %v", e.Store, e.Err)
	}
	return fmt.Sprintf("%s store unavailable", e.Store)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// PartialFailureError represents a cross-store operation where the first step
// succeeded and a later step did not. Nothing is rolled back.
type PartialFailureError struct {
	Operation    string
	SuggestionID string
	Err          error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially applied: suggestion %s was not removed: %v", e.Operation, e.SuggestionID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrGroupNotFound      = &NotFoundError{Entity: "group"}
	ErrSuggestionNotFound = &NotFoundError{Entity: "suggestion"}
)

// Duplicate Errors
var (
	ErrDuplicateName = &DuplicateError{Kind: DuplicateName}
	ErrDuplicateLink = &DuplicateError{Kind: DuplicateLink}
)

// Store Errors
var (
	ErrKVStoreUnavailable = &StoreUnavailableError{Store: "key-value"}
	ErrCorruptCollection  = errors.New("stored group collection is malformed")
)

// Authentication Errors
var (
	ErrInvalidCronSecret   = &AuthenticationError{Message: "invalid cron secret"}
	ErrMissingBearerHeader = &AuthenticationError{Message: "Authorization header is required"}
	ErrInsufficientRole    = &AuthorizationError{Message: "admin role required"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsDuplicate checks if an error is a DuplicateError
func IsDuplicate(err error) bool {
	var dupErr *DuplicateError
	return errors.As(err, &dupErr)
}

// AsDuplicate returns the DuplicateError in err's chain, if any
func AsDuplicate(err error) (*DuplicateError, bool) {
	var dupErr *DuplicateError
	if errors.As(err, &dupErr) {
		return dupErr, true
	}
	return nil, false
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsStoreUnavailable checks if an error is a StoreUnavailableError
func IsStoreUnavailable(err error) bool {
	var storeErr *StoreUnavailableError
	return errors.As(err, &storeErr)
}

// AsPartialFailure returns the PartialFailureError in err's chain, if any
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pfErr *PartialFailureError
	if errors.As(err, &pfErr) {
		return pfErr, true
	}
	return nil, false
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for an entity and identifier
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NewDuplicateError creates a new DuplicateError naming the conflicting record
func NewDuplicateError(kind DuplicateKind, existing string) error {
	return &DuplicateError{Kind: kind, Existing: existing}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewStoreUnavailableError wraps a store failure
func NewStoreUnavailableError(store string, err error) error {
	return &StoreUnavailableError{Store: store, Err: err}
}

// NewPartialFailureError creates a new PartialFailureError
func NewPartialFailureError(operation, suggestionID string, err error) error {
	return &PartialFailureError{Operation: operation, SuggestionID: suggestionID, Err: err}
}
