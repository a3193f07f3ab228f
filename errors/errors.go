/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConfig is returned when no connection options can be resolved
	ErrConfig = errors.New("no connection options found")

	// ErrNoConnection is returned when a seed is attempted without a connection
	ErrNoConnection = errors.New("no db connection is given")

	// ErrNoTemplate is returned when a factory has no template function
	ErrNoTemplate = errors.New("factory has no template function")

	// ErrFactoryNotFound is returned when no factory is registered for an entity
	ErrFactoryNotFound = errors.New("entity factory not found")

	// ErrDuplicateFactory is returned when a factory is defined twice under the error policy
	ErrDuplicateFactory = errors.New("entity factory already defined")

	// ErrSaveFailed is returned when the connection could not persist an entity
	ErrSaveFailed = errors.New("could not save entity")

	// ErrNestedResolution is returned when a nested factory field could not be built
	ErrNestedResolution = errors.New("could not resolve nested entity")

	// ErrDiscovery is returned when scanning for definition files fails
	ErrDiscovery = errors.New("definition file discovery failed")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is found for an entity
	ErrNoIndexMap = errors.New("no index map found for entity")
)

// FactoryNotFoundError represents a lookup of an entity with no registered factory
type FactoryNotFoundError struct {
	Entity string
}

func (e *FactoryNotFoundError) Error() string {
	return fmt.Sprintf("no factory registered for entity %q", e.Entity)
}

func (e *FactoryNotFoundError) Is(target error) bool {
	return target == ErrFactoryNotFound
}

// DuplicateFactoryError represents a second definition for the same entity
type DuplicateFactoryError struct {
	Entity string
}

func (e *DuplicateFactoryError) Error() string {
	return fmt.Sprintf("factory for entity %q already defined", e.Entity)
}

func (e *DuplicateFactoryError) Is(target error) bool {
	return target == ErrDuplicateFactory
}

// SaveError wraps the failure reported by the connection while persisting an entity.
// The original cause stays reachable through errors.Unwrap.
type SaveError struct {
	Entity string
	Err    error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("could not save entity %s: %v", e.Entity, e.Err)
}

func (e *SaveError) Is(target error) bool {
	return target == ErrSaveFailed
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// NestedError represents a nested factory field that could not be built
type NestedError struct {
	Entity string
	Field  string
	Err    error
}

func (e *NestedError) Error() string {
	return fmt.Sprintf("could not resolve field %q of %s: %v", e.Field, e.Entity, e.Err)
}

func (e *NestedError) Is(target error) bool {
	return target == ErrNestedResolution
}

func (e *NestedError) Unwrap() error {
	return e.Err
}

// DiscoveryError represents a failed scan for definition files
type DiscoveryError struct {
	Pattern string
	Err     error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("scan %q: %v", e.Pattern, e.Err)
}

func (e *DiscoveryError) Is(target error) bool {
	return target == ErrDiscovery
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// ConfigError represents unresolvable or unreadable connection options
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("connection options: %v", e.Err)
	}
	return fmt.Sprintf("connection options from %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewFactoryNotFoundError creates a new FactoryNotFoundError
func NewFactoryNotFoundError(entity string) error {
	return &FactoryNotFoundError{Entity: entity}
}

// NewDuplicateFactoryError creates a new DuplicateFactoryError
func NewDuplicateFactoryError(entity string) error {
	return &DuplicateFactoryError{Entity: entity}
}

// NewSaveError creates a new SaveError around the persistence failure
func NewSaveError(entity string, cause error) error {
	return &SaveError{Entity: entity, Err: cause}
}

// NewNestedError creates a new NestedError
func NewNestedError(entity, field string, cause error) error {
	return &NestedError{Entity: entity, Field: field, Err: cause}
}

// NewDiscoveryError creates a new DiscoveryError
func NewDiscoveryError(pattern string, cause error) error {
	return &DiscoveryError{Pattern: pattern, Err: cause}
}

// NewConfigError creates a new ConfigError
func NewConfigError(source string, cause error) error {
	return &ConfigError{Source: source, Err: cause}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsFactoryNotFound checks if an error is a missing factory error
func IsFactoryNotFound(err error) bool {
	return errors.Is(err, ErrFactoryNotFound)
}

// IsNoConnection checks if an error is a missing connection error
func IsNoConnection(err error) bool {
	return errors.Is(err, ErrNoConnection)
}

// IsSaveFailed checks if an error is a persistence error
func IsSaveFailed(err error) bool {
	return errors.Is(err, ErrSaveFailed)
}

// IsNestedResolution checks if an error is a nested resolution error
func IsNestedResolution(err error) bool {
	return errors.Is(err, ErrNestedResolution)
}

// IsDiscovery checks if an error is a discovery error
func IsDiscovery(err error) bool {
	return errors.Is(err, ErrDiscovery)
}

// IsConfig checks if an error is a configuration error
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
