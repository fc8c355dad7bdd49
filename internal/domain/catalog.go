package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Catalog entity validation errors
var (
	// ErrNameEmpty is returned when a catalog entity's name is empty.
	ErrNameEmpty = errors.New("name cannot be empty")

	// ErrSetCodeEmpty is returned when a set's code is empty.
	ErrSetCodeEmpty = errors.New("set code cannot be empty")

	// ErrSkillTextEmpty is returned when a skill's rules text is empty.
	ErrSkillTextEmpty = errors.New("skill text cannot be empty")
)

// Name is a canonical character name. Cards reference names by ID; all
// alternate spellings resolve to a Name row through the synonym resolver.
// Names are created on first use and never deleted once referenced.
type Name struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Set is a named release product, unique by its short code (e.g. "bp1").
// Printings belong to a set indirectly through their card's set code.
type Set struct {
	ID      uuid.UUID `json:"id"`
	SetCode string    `json:"set_code"`
	Name    string    `json:"name"`
}

// NewSet creates a new Set with the given code and display name.
func NewSet(setCode, name string) (*Set, error) {
	if setCode == "" {
		return nil, ErrSetCodeEmpty
	}
	if name == "" {
		return nil, ErrNameEmpty
	}
	return &Set{ID: uuid.New(), SetCode: setCode, Name: name}, nil
}

// Group is an idol group or sub-franchise name, many-to-many with cards.
type Group struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewGroup creates a new Group with the given canonical name.
func NewGroup(name string) (*Group, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	return &Group{ID: uuid.New(), Name: name}, nil
}

// Unit is a named idol sub-unit, many-to-many with cards.
type Unit struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewUnit creates a new Unit with the given name.
func NewUnit(name string) (*Unit, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	return &Unit{ID: uuid.New(), Name: name}, nil
}

// Skill is a unique block of rules text, deduplicated by exact content.
// Two cards with identical rules text share one Skill row.
type Skill struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}
