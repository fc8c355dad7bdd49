package domain

import (
	"github.com/google/uuid"
)

// CardView is the fully assembled, denormalized read view of a card: base
// fields with the canonical name resolved to its display string, the
// kind-specific attribute block, the heart multiset, the tag sets, and all
// printings. This is what every external consumer of the read path gets.
type CardView struct {
	ID          uuid.UUID      `json:"id"`
	SeriesCode  string         `json:"series_code"`
	SetCode     string         `json:"set_code"`
	NumberInSet string         `json:"number_in_set"`
	Name        string         `json:"name"`
	SetName     string         `json:"set_name,omitempty"`
	Type        CardType       `json:"card_type"`
	Attributes  CardAttributes `json:"attributes,omitempty"`
	Hearts      Hearts         `json:"hearts"`
	Groups      []string       `json:"groups"`
	Units       []string       `json:"units"`
	Skills      []string       `json:"skills"`
	Printings   []Printing     `json:"printings"`
}
