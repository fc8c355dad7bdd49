package domain

import (
	"errors"
	"testing"
)

func TestParseCardIdentifier(t *testing.T) {
	t.Parallel()

	id, err := ParseCardIdentifier("PL!SP-bp1-013-N")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id.SeriesCode != "PL!SP" {
		t.Errorf("Expected series code PL!SP, got %s", id.SeriesCode)
	}
	if id.SetCode != "bp1" {
		t.Errorf("Expected set code bp1, got %s", id.SetCode)
	}
	if id.NumberInSet != "013" {
		t.Errorf("Expected number 013, got %s", id.NumberInSet)
	}
	if id.RarityCode != "N" {
		t.Errorf("Expected rarity code N, got %s", id.RarityCode)
	}
}

func TestParseCardIdentifierInvalid(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"PL!S-bp2-001", // missing rarity
		"PL!S-bp2",
		"PL!S",
		"",
		"PL!S-bp2-001-", // empty rarity
		"-bp2-001-R",    // empty series
	} {
		if _, err := ParseCardIdentifier(s); !errors.Is(err, ErrInvalidCardIdentifier) {
			t.Errorf("ParseCardIdentifier(%q): expected %v, got %v", s, ErrInvalidCardIdentifier, err)
		}
	}
}
