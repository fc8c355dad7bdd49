// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCardType is returned when a card type is not one of
	// Character, Live, or Energy.
	ErrInvalidCardType = errors.New("invalid card type")

	// ErrSubtypeMismatch is returned when a card's attribute payload does not
	// match its declared card type (e.g. Live attributes on a Character card).
	ErrSubtypeMismatch = errors.New("card attributes do not match card type")

	// ErrSubtypeImmutable is returned when an update attempts to change a
	// card's type after creation. Changing the type requires deleting and
	// recreating the card.
	ErrSubtypeImmutable = errors.New("card type cannot be changed after creation")

	// ErrInvalidHeartColor is returned when a heart entry carries a color
	// outside the allowed palette, or a color the card's type forbids.
	ErrInvalidHeartColor = errors.New("invalid heart color")

	// ErrDuplicateHeartColor is returned when the same color appears more
	// than once in a single set of heart entries.
	ErrDuplicateHeartColor = errors.New("duplicate heart color")

	// ErrInvalidHeartCount is returned when a heart entry has a count below one.
	ErrInvalidHeartCount = errors.New("heart count must be at least 1")

	// ErrInvalidBladeHeart is returned when a blade heart color is not valid.
	ErrInvalidBladeHeart = errors.New("invalid blade heart color")

	// ErrInvalidSpecialHeart is returned when a special heart kind is not valid.
	ErrInvalidSpecialHeart = errors.New("invalid special heart")

	// ErrInvalidRarityType is returned when a rarity type is neither Regular
	// nor Parallel.
	ErrInvalidRarityType = errors.New("invalid rarity type")

	// ErrInvalidCardIdentifier is returned when a card identifier string is
	// not in the "series-set-number-rarity" format.
	ErrInvalidCardIdentifier = errors.New("card identifier must be in the format 'series-set-number-rarity'")

	// ErrInvalidVariantKind is returned when a variant kind is neither Name
	// nor Group.
	ErrInvalidVariantKind = errors.New("invalid variant kind")
)
