package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is(). They classify the four
// failure kinds every action boundary must convert to a structured
// response: malformed input, validation, payload build, gateway.
var (
	// ErrMalformedInput indicates the inbound document could not be parsed.
	ErrMalformedInput = errors.New("malformed input")

	// ErrValidation indicates a business rule violation.
	ErrValidation = errors.New("validation failed")

	// ErrBuild indicates a required identifier was missing while
	// assembling the outbound payload.
	ErrBuild = errors.New("payload build failed")

	// ErrGateway indicates the ERP call failed or returned an error
	// envelope.
	ErrGateway = errors.New("gateway failure")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a required dependency is unreachable.
	ErrUnavailable = errors.New("unavailable")
)

// ValidationError names the business field that violated a rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with field context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BuildError reports a hard failure during payload assembly, such as a
// line with no material identifier at all.
type BuildError struct {
	Field  string
	Reason string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("cannot build payload: %s %s", e.Field, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *BuildError) Unwrap() error {
	return ErrBuild
}

// NewBuildError creates a build error with field context.
func NewBuildError(field, reason string) error {
	return &BuildError{Field: field, Reason: reason}
}

// GatewayError carries the normalized message extracted from a failed
// ERP call. Message is always non-empty.
type GatewayError struct {
	Operation string
	Message   string
}

func (e *GatewayError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: %s", e.Operation, e.Message)
	}

	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *GatewayError) Unwrap() error {
	return ErrGateway
}

// NewGatewayError creates a gateway error with the normalized message.
func NewGatewayError(operation, message string) error {
	return &GatewayError{Operation: operation, Message: message}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UnavailableError provides context for unreachable dependencies.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsMalformedInput checks if an error is a malformed input error.
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsBuild checks if an error is a payload build error.
func IsBuild(err error) bool {
	return errors.Is(err, ErrBuild)
}

// IsGateway checks if an error is a gateway error.
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
