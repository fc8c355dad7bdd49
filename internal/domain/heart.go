package domain

import (
	"fmt"
	"sort"
)

// HeartColor is the color of a regular heart symbol on a card.
type HeartColor string

const (
	HeartPink   HeartColor = "Pink"
	HeartRed    HeartColor = "Red"
	HeartYellow HeartColor = "Yellow"
	HeartGreen  HeartColor = "Green"
	HeartBlue   HeartColor = "Blue"
	HeartPurple HeartColor = "Purple"
	HeartGray   HeartColor = "Gray"
)

// IsValid reports whether c is a known heart color.
func (c HeartColor) IsValid() bool {
	switch c {
	case HeartPink, HeartRed, HeartYellow, HeartGreen, HeartBlue, HeartPurple, HeartGray:
		return true
	}
	return false
}

// HeartEntry is one entry of a card's heart multiset: a color and how many
// hearts of that color the card shows. A card has at most one entry per color.
type HeartEntry struct {
	Color HeartColor `json:"color"`
	Count int        `json:"count"`
}

// Hearts is the assembled heart multiset of a card, keyed by color.
type Hearts map[HeartColor]int

// Entries converts the multiset to a slice of entries ordered by color,
// so callers get a deterministic representation.
func (h Hearts) Entries() []HeartEntry {
	entries := make([]HeartEntry, 0, len(h))
	for color, count := range h {
		entries = append(entries, HeartEntry{Color: color, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Color < entries[j].Color })
	return entries
}

// ValidateHeartEntries checks a full replacement set of heart entries for a
// card of the given type. It rejects unknown colors, counts below one,
// colors repeated within the set, and Gray hearts on Character cards.
//
// The Gray-on-Character rule is the one constraint in the model that spans
// two entities (the heart row and the owning card's type), so it cannot be
// a schema constraint; every write path that touches hearts must call this
// inside the same transaction as the write.
func ValidateHeartEntries(cardType CardType, entries []HeartEntry) error {
	seen := make(map[HeartColor]struct{}, len(entries))
	for _, e := range entries {
		if !e.Color.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidHeartColor, e.Color)
		}
		if e.Count < 1 {
			return fmt.Errorf("%w: %s has count %d", ErrInvalidHeartCount, e.Color, e.Count)
		}
		if _, dup := seen[e.Color]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateHeartColor, e.Color)
		}
		seen[e.Color] = struct{}{}

		if e.Color == HeartGray && cardType == CardTypeCharacter {
			return fmt.Errorf("%w: character cards cannot have Gray hearts", ErrInvalidHeartColor)
		}
	}
	return nil
}
