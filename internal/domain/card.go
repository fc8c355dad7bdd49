package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardNameIDEmpty is returned when a card's canonical name reference is empty or nil.
	ErrCardNameIDEmpty = errors.New("card name ID cannot be empty")

	// ErrCardCodeEmpty is returned when any component of the card's natural
	// key (series code, set code, number in set) is empty.
	ErrCardCodeEmpty = errors.New("card series, set, and number cannot be empty")

	// ErrCardAttributesNil is returned when a card has no attribute payload.
	ErrCardAttributesNil = errors.New("card attributes cannot be nil")

	// ErrNegativeCost is returned when a character card's cost is negative.
	ErrNegativeCost = errors.New("cost cannot be negative")

	// ErrNegativeBlades is returned when a character card's blade count is negative.
	ErrNegativeBlades = errors.New("blade count cannot be negative")
)

// CardType discriminates the three mutually exclusive card subtypes.
type CardType string

const (
	CardTypeCharacter CardType = "Character"
	CardTypeLive      CardType = "Live"
	CardTypeEnergy    CardType = "Energy"
)

// IsValid reports whether t is one of the three known card types.
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeCharacter, CardTypeLive, CardTypeEnergy:
		return true
	}
	return false
}

// BladeHeart is the color of a blade heart symbol. Unlike regular hearts,
// blade hearts have no Gray but add an All wildcard.
type BladeHeart string

const (
	BladeHeartPink   BladeHeart = "Pink"
	BladeHeartRed    BladeHeart = "Red"
	BladeHeartYellow BladeHeart = "Yellow"
	BladeHeartGreen  BladeHeart = "Green"
	BladeHeartBlue   BladeHeart = "Blue"
	BladeHeartPurple BladeHeart = "Purple"
	BladeHeartAll    BladeHeart = "All"
)

// IsValid reports whether b is a known blade heart color.
func (b BladeHeart) IsValid() bool {
	switch b {
	case BladeHeartPink, BladeHeartRed, BladeHeartYellow, BladeHeartGreen,
		BladeHeartBlue, BladeHeartPurple, BladeHeartAll:
		return true
	}
	return false
}

// SpecialHeart is the effect kind of a live card's special heart.
type SpecialHeart string

const (
	SpecialHeartDraw  SpecialHeart = "Draw"
	SpecialHeartScore SpecialHeart = "Score"
)

// IsValid reports whether s is a known special heart kind.
func (s SpecialHeart) IsValid() bool {
	return s == SpecialHeartDraw || s == SpecialHeartScore
}

// CardAttributes is the kind-specific payload of a card. Exactly one
// implementation exists per card type; the relational store persists each
// in its own extension table, but domain code always handles the payload
// through this interface so the sum type stays closed.
type CardAttributes interface {
	// CardType returns the card type this payload belongs to.
	CardType() CardType

	// validate checks the payload's own fields. Agreement between the
	// payload and the owning card's type is checked by Card.Validate.
	validate() error
}

// CharacterAttributes is the payload of a Character card.
type CharacterAttributes struct {
	Cost       int         `json:"cost"`
	Blades     int         `json:"blades"`
	BladeHeart *BladeHeart `json:"blade_heart,omitempty"`
}

// CardType implements CardAttributes.
func (a *CharacterAttributes) CardType() CardType { return CardTypeCharacter }

func (a *CharacterAttributes) validate() error {
	if a.Cost < 0 {
		return ErrNegativeCost
	}
	if a.Blades < 0 {
		return ErrNegativeBlades
	}
	if a.BladeHeart != nil && !a.BladeHeart.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBladeHeart, *a.BladeHeart)
	}
	return nil
}

// LiveAttributes is the payload of a Live card.
type LiveAttributes struct {
	Score        int           `json:"score"`
	BladeHeart   *BladeHeart   `json:"blade_heart,omitempty"`
	SpecialHeart *SpecialHeart `json:"special_heart,omitempty"`
}

// CardType implements CardAttributes.
func (a *LiveAttributes) CardType() CardType { return CardTypeLive }

func (a *LiveAttributes) validate() error {
	if a.BladeHeart != nil && !a.BladeHeart.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBladeHeart, *a.BladeHeart)
	}
	if a.SpecialHeart != nil && !a.SpecialHeart.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecialHeart, *a.SpecialHeart)
	}
	return nil
}

// EnergyAttributes is the payload of an Energy card. Energy cards carry no
// extra attributes; the type exists so every card has exactly one payload.
type EnergyAttributes struct{}

// CardType implements CardAttributes.
func (a *EnergyAttributes) CardType() CardType { return CardTypeEnergy }

func (a *EnergyAttributes) validate() error { return nil }

// Card is the base card entity. The (SeriesCode, SetCode, NumberInSet)
// triple is the natural key; ID is the surrogate key used for references.
// NameID points at the canonical name row, never at a variant.
type Card struct {
	ID          uuid.UUID      `json:"id"`
	SeriesCode  string         `json:"series_code"`
	SetCode     string         `json:"set_code"`
	NumberInSet string         `json:"number_in_set"`
	NameID      uuid.UUID      `json:"name_id"`
	Type        CardType       `json:"card_type"`
	Attributes  CardAttributes `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewCard creates a new Card with the given natural key, canonical name
// reference, and kind-specific attributes. The card's type is taken from
// the attribute payload, so a freshly constructed card can never disagree
// with its payload. Returns an error if validation fails.
func NewCard(seriesCode, setCode, numberInSet string, nameID uuid.UUID, attrs CardAttributes) (*Card, error) {
	if attrs == nil {
		return nil, ErrCardAttributesNil
	}

	card := &Card{
		ID:          uuid.New(),
		SeriesCode:  seriesCode,
		SetCode:     setCode,
		NumberInSet: numberInSet,
		NameID:      nameID,
		Type:        attrs.CardType(),
		Attributes:  attrs,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data, including agreement between
// the declared type and the attribute payload.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.SeriesCode == "" || c.SetCode == "" || c.NumberInSet == "" {
		return ErrCardCodeEmpty
	}

	if c.NameID == uuid.Nil {
		return ErrCardNameIDEmpty
	}

	if !c.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCardType, c.Type)
	}

	if c.Attributes == nil {
		return ErrCardAttributesNil
	}

	if c.Attributes.CardType() != c.Type {
		return fmt.Errorf("%w: card is %s but attributes are %s",
			ErrSubtypeMismatch, c.Type, c.Attributes.CardType())
	}

	return c.Attributes.validate()
}
