package domain

import (
	"strings"
)

// CardIdentifier is the parsed form of the compound identifier printed on a
// card, e.g. "PL!S-bp2-001-R": series code, set code, number within the
// set, and the rarity code of the printing being entered.
type CardIdentifier struct {
	SeriesCode  string
	SetCode     string
	NumberInSet string
	RarityCode  string
}

// ParseCardIdentifier splits a "series-set-number-rarity" identifier.
// The rarity code is split off the right first, because series codes may
// themselves contain characters that look like separators in other
// positions (e.g. "PL!SP"). Returns ErrInvalidCardIdentifier if the string
// does not have all four components.
func ParseCardIdentifier(s string) (CardIdentifier, error) {
	rarityIdx := strings.LastIndex(s, "-")
	if rarityIdx < 0 {
		return CardIdentifier{}, ErrInvalidCardIdentifier
	}
	rarityCode := s[rarityIdx+1:]
	base := s[:rarityIdx]

	parts := strings.SplitN(base, "-", 3)
	if len(parts) != 3 {
		return CardIdentifier{}, ErrInvalidCardIdentifier
	}

	id := CardIdentifier{
		SeriesCode:  parts[0],
		SetCode:     parts[1],
		NumberInSet: parts[2],
		RarityCode:  rarityCode,
	}
	if id.SeriesCode == "" || id.SetCode == "" || id.NumberInSet == "" || id.RarityCode == "" {
		return CardIdentifier{}, ErrInvalidCardIdentifier
	}
	return id, nil
}
