package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrCardNotFound, ErrRarityNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second printing with the same rarity code).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrReferentialConflict is returned when deleting an entity that other
	// rows still reference.
	ErrReferentialConflict = errors.New("entity is still referenced")

	// ErrVariantCycle is returned when inserting a synonym variant would
	// create a chain: either its canonical target is itself a variant key,
	// or the new variant string is the canonical target of other variants.
	ErrVariantCycle = errors.New("variant mapping would create a chain")

	// Entity-specific "not found" errors

	// ErrCardNotFound indicates that the requested card does not exist in the store.
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)

	// ErrSetNotFound indicates that the requested set does not exist in the store.
	ErrSetNotFound = fmt.Errorf("%w: set", ErrNotFound)

	// ErrNameNotFound indicates that the requested canonical name does not exist in the store.
	ErrNameNotFound = fmt.Errorf("%w: name", ErrNotFound)

	// ErrRarityNotFound indicates that the requested rarity code has no mapping in the store.
	ErrRarityNotFound = fmt.Errorf("%w: rarity", ErrNotFound)

	// ErrVariantNotFound indicates that the requested variant mapping does not exist in the store.
	ErrVariantNotFound = fmt.Errorf("%w: variant", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrDuplicateCard indicates a card with the same natural key
	// (series code, set code, number in set) already exists.
	ErrDuplicateCard = fmt.Errorf("%w: card natural key", ErrDuplicate)

	// ErrDuplicatePrinting indicates the card already has a printing with
	// the given rarity code.
	ErrDuplicatePrinting = fmt.Errorf("%w: printing", ErrDuplicate)

	// ErrDuplicateSet indicates a set with the given code already exists.
	ErrDuplicateSet = fmt.Errorf("%w: set code", ErrDuplicate)

	// ErrDuplicateGroup indicates a group with the given name already exists.
	ErrDuplicateGroup = fmt.Errorf("%w: group name", ErrDuplicate)

	// ErrDuplicateUnit indicates a unit with the given name already exists.
	ErrDuplicateUnit = fmt.Errorf("%w: unit name", ErrDuplicate)

	// ErrDuplicateRarity indicates a rarity mapping for the code already exists.
	ErrDuplicateRarity = fmt.Errorf("%w: rarity code", ErrDuplicate)

	// ErrDuplicateVariant indicates a variant mapping for the string already exists.
	ErrDuplicateVariant = fmt.Errorf("%w: variant", ErrDuplicate)

	// Unknown-reference errors on card writes. These are deliberately NOT
	// wrapped in ErrNotFound: on a write path an unresolved group or unit is
	// a bad request naming the offending string, not a missing resource.

	// ErrGroupNotFound indicates a card referenced a group that is not registered.
	ErrGroupNotFound = errors.New("group not found")

	// ErrUnitNotFound indicates a card referenced a unit that is not registered.
	ErrUnitNotFound = errors.New("unit not found")
)

// TagNotFoundError reports a card write that referenced a group or unit
// that is not registered. It carries the unresolved name as a field so
// callers can echo exactly the string the client sent, without exposing
// the rest of the error chain.
type TagNotFoundError struct {
	Name string // the unregistered group or unit name
	Err  error  // ErrGroupNotFound or ErrUnitNotFound
}

// Error implements the error interface for TagNotFoundError.
func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

// Unwrap returns the sentinel to support errors.Is checks.
func (e *TagNotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
// This includes the generic ErrDuplicate and all entity-specific duplicate errors.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "card", "printing")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
