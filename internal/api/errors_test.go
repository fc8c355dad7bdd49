package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
	"github.com/llcgdb/catalog-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "card not found maps to 404",
			err:        fmt.Errorf("%w: no such row", store.ErrCardNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "duplicate card maps to 409",
			err:        fmt.Errorf("%w: PL!S-bp1-001", store.ErrDuplicateCard),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "variant cycle maps to 409",
			err:        store.ErrVariantCycle,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "subtype change maps to 409",
			err:        domain.ErrSubtypeImmutable,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown group maps to 400",
			err:        &store.TagNotFoundError{Name: "Aqours", Err: store.ErrGroupNotFound},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "domain validation maps to 400",
			err:        fmt.Errorf("%w: cost must not be negative", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unrecognized error maps to 500",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("unknown group echoes only the client-supplied name", func(t *testing.T) {
		t.Parallel()

		// Wrap the way the service layer does, several levels deep, and
		// verify none of that context reaches the response message.
		tagErr := &store.TagNotFoundError{Name: "Aqours", Err: store.ErrGroupNotFound}
		err := service.NewCardServiceError("create_card", "failed to link groups",
			fmt.Errorf("failed to link groups: %w", tagErr))

		msg := GetSafeErrorMessage(err)
		assert.Equal(t, `Unknown group: "Aqours"`, msg)
		assert.NotContains(t, msg, "failed to link")
		assert.NotContains(t, msg, "create_card")
	})

	t.Run("unknown unit echoes only the client-supplied name", func(t *testing.T) {
		t.Parallel()

		tagErr := &store.TagNotFoundError{Name: "CatChu!", Err: store.ErrUnitNotFound}
		err := fmt.Errorf("set_tags operation failed: %w", tagErr)

		assert.Equal(t, `Unknown unit: "CatChu!"`, GetSafeErrorMessage(err))
	})

	t.Run("unknown group without a carried name stays generic", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("failed to link groups: %w", store.ErrGroupNotFound)
		assert.Equal(t, "Unknown group", GetSafeErrorMessage(err))
	})

	t.Run("unrecognized errors are not echoed", func(t *testing.T) {
		t.Parallel()

		msg := GetSafeErrorMessage(errors.New("pq: relation cards does not exist"))
		assert.Equal(t, "An unexpected error occurred", msg)
	})
}
