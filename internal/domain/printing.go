package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Printing-specific validation errors
var (
	// ErrPrintingIDEmpty is returned when a printing ID is empty or nil.
	ErrPrintingIDEmpty = errors.New("printing ID cannot be empty")

	// ErrPrintingCardIDEmpty is returned when a printing's card ID is empty or nil.
	ErrPrintingCardIDEmpty = errors.New("printing card ID cannot be empty")

	// ErrRarityCodeEmpty is returned when a printing's rarity code is empty.
	ErrRarityCodeEmpty = errors.New("rarity code cannot be empty")
)

// RarityType classifies a rarity code. Parallel rarities are alternate-art
// variants of a regular printing; everything not on the parallel allow-list
// is Regular.
type RarityType string

const (
	RarityRegular  RarityType = "Regular"
	RarityParallel RarityType = "Parallel"
)

// IsValid reports whether t is a known rarity type.
func (t RarityType) IsValid() bool {
	return t == RarityRegular || t == RarityParallel
}

// Printing is one rarity/artwork instance of a card. A card may have many
// printings but only one per rarity code. RarityType is derived from the
// rarity code by the classifier and persisted denormalized for querying.
type Printing struct {
	ID         uuid.UUID  `json:"id"`
	CardID     uuid.UUID  `json:"card_id"`
	RarityCode string     `json:"rarity_code"`
	RarityType RarityType `json:"rarity_type"`
	ImageURL   *string    `json:"image_url,omitempty"`
}

// NewPrinting creates a new Printing for the given card.
// Returns an error if validation fails.
func NewPrinting(cardID uuid.UUID, rarityCode string, rarityType RarityType, imageURL *string) (*Printing, error) {
	printing := &Printing{
		ID:         uuid.New(),
		CardID:     cardID,
		RarityCode: rarityCode,
		RarityType: rarityType,
		ImageURL:   imageURL,
	}

	if err := printing.Validate(); err != nil {
		return nil, err
	}

	return printing, nil
}

// Validate checks if the Printing has valid data.
func (p *Printing) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPrintingIDEmpty
	}

	if p.CardID == uuid.Nil {
		return ErrPrintingCardIDEmpty
	}

	if p.RarityCode == "" {
		return ErrRarityCodeEmpty
	}

	if !p.RarityType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRarityType, p.RarityType)
	}

	return nil
}
