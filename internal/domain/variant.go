package domain

import (
	"errors"
	"fmt"
)

// Variant-specific validation errors
var (
	// ErrVariantEmpty is returned when a variant or canonical string is empty.
	ErrVariantEmpty = errors.New("variant and canonical strings cannot be empty")

	// ErrVariantSelfReference is returned when a variant maps to itself.
	ErrVariantSelfReference = errors.New("variant cannot map to itself")
)

// VariantKind selects which synonym table a variant belongs to.
type VariantKind string

const (
	// VariantKindName maps alternate spellings/orderings of character names
	// (e.g. "Kanon Shibuya" -> "Shibuya Kanon").
	VariantKindName VariantKind = "Name"

	// VariantKindGroup maps alternate spellings of group names.
	VariantKindGroup VariantKind = "Group"
)

// IsValid reports whether k is a known variant kind.
func (k VariantKind) IsValid() bool {
	return k == VariantKindName || k == VariantKindGroup
}

// Variant maps an alternate spelling to its canonical form. Many variants
// may point to one canonical string, but a canonical target must never
// itself be a variant key: chains and cycles are forbidden. The schema
// cannot express that rule, so the variant store checks it on every insert.
type Variant struct {
	Kind      VariantKind `json:"kind"`
	Variant   string      `json:"variant_name"`
	Canonical string      `json:"canonical_name"`
}

// NewVariant creates a new Variant mapping.
// Returns an error if validation fails.
func NewVariant(kind VariantKind, variant, canonical string) (*Variant, error) {
	v := &Variant{Kind: kind, Variant: variant, Canonical: canonical}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks if the Variant has valid data. It covers only the local
// rules; the no-cycle invariant needs the existing variant table and is
// enforced by the store's write path.
func (v *Variant) Validate() error {
	if !v.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidVariantKind, v.Kind)
	}
	if v.Variant == "" || v.Canonical == "" {
		return ErrVariantEmpty
	}
	if v.Variant == v.Canonical {
		return ErrVariantSelfReference
	}
	return nil
}
