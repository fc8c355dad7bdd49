package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/llcgdb/catalog-api/internal/api/shared"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors: duplicates, variant chains, deletes blocked by
	// remaining references, and attempts to change a card's type.
	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrVariantCycle),
		errors.Is(err, store.ErrReferentialConflict),
		errors.Is(err, domain.ErrSubtypeImmutable):
		return http.StatusConflict

	// Bad request errors. Unknown groups/units are caller mistakes, not
	// missing resources: the URL they requested exists, their payload
	// names a group that does not.
	case errors.Is(err, store.ErrGroupNotFound),
		errors.Is(err, store.ErrUnitNotFound),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidCardType),
		errors.Is(err, domain.ErrSubtypeMismatch),
		errors.Is(err, domain.ErrInvalidCardIdentifier),
		errors.Is(err, domain.ErrInvalidHeartColor),
		errors.Is(err, domain.ErrDuplicateHeartColor),
		errors.Is(err, domain.ErrInvalidHeartCount),
		errors.Is(err, domain.ErrInvalidBladeHeart),
		errors.Is(err, domain.ErrInvalidSpecialHeart),
		errors.Is(err, domain.ErrInvalidRarityType),
		errors.Is(err, domain.ErrInvalidVariantKind),
		errors.Is(err, domain.ErrVariantEmpty),
		errors.Is(err, domain.ErrVariantSelfReference),
		errors.Is(err, domain.ErrNameEmpty),
		errors.Is(err, domain.ErrSetCodeEmpty),
		errors.Is(err, domain.ErrSkillTextEmpty),
		errors.Is(err, domain.ErrCardCodeEmpty),
		errors.Is(err, domain.ErrCardAttributesNil),
		errors.Is(err, domain.ErrNegativeCost),
		errors.Is(err, domain.ErrNegativeBlades):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type, so raw internal errors never reach clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrSetNotFound):
		return "Set not found"
	case errors.Is(err, store.ErrNameNotFound):
		return "Name not found"
	case errors.Is(err, store.ErrRarityNotFound):
		return "Rarity mapping not found"
	case errors.Is(err, store.ErrVariantNotFound):
		return "Variant not found"
	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicateCard):
		return "A card with this series, set, and number already exists"
	case errors.Is(err, store.ErrDuplicatePrinting):
		return "This card already has a printing with this rarity code"
	case store.IsDuplicateError(err):
		return "Resource already exists"
	case errors.Is(err, store.ErrVariantCycle):
		return "Variant mapping would create a chain"
	case errors.Is(err, store.ErrReferentialConflict):
		return "Resource is still referenced and cannot be deleted"
	case errors.Is(err, domain.ErrSubtypeImmutable):
		return "A card's type cannot be changed"

	case errors.Is(err, store.ErrGroupNotFound):
		return "Unknown group" + tagNameSuffix(err)
	case errors.Is(err, store.ErrUnitNotFound):
		return "Unknown unit" + tagNameSuffix(err)

	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		// Validation sentinels carry safe, field-level messages.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// tagNameSuffix pulls the unresolved group or unit name out of the error
// chain so the response echoes only what the client sent, never the
// internal operation context the error is wrapped in.
func tagNameSuffix(err error) string {
	var tagErr *store.TagNotFoundError
	if errors.As(err, &tagErr) {
		return fmt.Sprintf(": %q", tagErr.Name)
	}
	return ""
}

// RespondWithMappedError is the one-stop error responder: it derives the
// status code and safe message from the error and writes both, logging the
// underlying error.
func RespondWithMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
