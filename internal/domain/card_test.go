package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	t.Parallel() // Enable parallel execution
	nameID := uuid.New()
	blade := BladeHeartPink
	attrs := &CharacterAttributes{Cost: 3, Blades: 2, BladeHeart: &blade}

	card, err := NewCard("PL!S", "bp1", "001", nameID, attrs)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.Type != CardTypeCharacter {
		t.Errorf("Expected card type %s, got %s", CardTypeCharacter, card.Type)
	}

	if card.NameID != nameID {
		t.Errorf("Expected name ID %s, got %s", nameID, card.NameID)
	}

	if card.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Test empty natural key components
	_, err = NewCard("", "bp1", "001", nameID, attrs)
	if !errors.Is(err, ErrCardCodeEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardCodeEmpty, err)
	}

	_, err = NewCard("PL!S", "bp1", "", nameID, attrs)
	if !errors.Is(err, ErrCardCodeEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardCodeEmpty, err)
	}

	// Test missing name reference
	_, err = NewCard("PL!S", "bp1", "001", uuid.Nil, attrs)
	if !errors.Is(err, ErrCardNameIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardNameIDEmpty, err)
	}

	// Test nil attributes
	_, err = NewCard("PL!S", "bp1", "001", nameID, nil)
	if !errors.Is(err, ErrCardAttributesNil) {
		t.Errorf("Expected error %v, got %v", ErrCardAttributesNil, err)
	}
}

func TestNewCardAttributeValidation(t *testing.T) {
	t.Parallel()
	nameID := uuid.New()

	_, err := NewCard("PL!S", "bp1", "001", nameID, &CharacterAttributes{Cost: -1, Blades: 2})
	if !errors.Is(err, ErrNegativeCost) {
		t.Errorf("Expected error %v, got %v", ErrNegativeCost, err)
	}

	_, err = NewCard("PL!S", "bp1", "001", nameID, &CharacterAttributes{Cost: 1, Blades: -2})
	if !errors.Is(err, ErrNegativeBlades) {
		t.Errorf("Expected error %v, got %v", ErrNegativeBlades, err)
	}

	badBlade := BladeHeart("Chartreuse")
	_, err = NewCard("PL!S", "bp1", "001", nameID, &CharacterAttributes{BladeHeart: &badBlade})
	if !errors.Is(err, ErrInvalidBladeHeart) {
		t.Errorf("Expected error %v, got %v", ErrInvalidBladeHeart, err)
	}

	badSpecial := SpecialHeart("Mulligan")
	_, err = NewCard("PL!S", "bp1", "023", nameID, &LiveAttributes{Score: 1, SpecialHeart: &badSpecial})
	if !errors.Is(err, ErrInvalidSpecialHeart) {
		t.Errorf("Expected error %v, got %v", ErrInvalidSpecialHeart, err)
	}

	// Energy cards have no attributes to get wrong
	card, err := NewCard("PL!S", "bp1", "101", nameID, &EnergyAttributes{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.Type != CardTypeEnergy {
		t.Errorf("Expected card type %s, got %s", CardTypeEnergy, card.Type)
	}
}

func TestCardValidateSubtypeMismatch(t *testing.T) {
	t.Parallel()
	card := Card{
		ID:          uuid.New(),
		SeriesCode:  "PL!S",
		SetCode:     "bp2",
		NumberInSet: "001",
		NameID:      uuid.New(),
		Type:        CardTypeLive,
		Attributes:  &CharacterAttributes{Cost: 1, Blades: 1},
	}

	err := card.Validate()
	if !errors.Is(err, ErrSubtypeMismatch) {
		t.Errorf("Expected error %v, got %v", ErrSubtypeMismatch, err)
	}

	// Fixing the declared type makes the card valid again
	card.Type = CardTypeCharacter
	if err := card.Validate(); err != nil {
		t.Errorf("Expected no error after correcting type, got %v", err)
	}

	// Unknown discriminant is rejected before the payload is consulted
	card.Type = CardType("Spell")
	err = card.Validate()
	if !errors.Is(err, ErrInvalidCardType) {
		t.Errorf("Expected error %v, got %v", ErrInvalidCardType, err)
	}
}
