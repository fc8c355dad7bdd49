package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
	"github.com/llcgdb/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCardService is a configurable CardService test double.
type fakeCardService struct {
	createErr   error
	createID    uuid.UUID
	lastInput   service.CardInput
	bulkErr     error
	bulkIDs     []uuid.UUID
	getView     *domain.CardView
	getErr      error
	listCards   []*domain.Card
	listErr     error
	updateErr   error
	deleteErr   error
	printingErr error
	printingID  uuid.UUID
}

func (f *fakeCardService) CreateCard(ctx context.Context, input service.CardInput) (uuid.UUID, error) {
	f.lastInput = input
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	return f.createID, nil
}

func (f *fakeCardService) CreateCards(ctx context.Context, inputs []service.CardInput) ([]uuid.UUID, error) {
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	return f.bulkIDs, nil
}

func (f *fakeCardService) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.CardView, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getView, nil
}

func (f *fakeCardService) ListCards(ctx context.Context) ([]*domain.Card, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listCards, nil
}

func (f *fakeCardService) UpdateCard(ctx context.Context, cardID uuid.UUID, input service.CardInput) error {
	f.lastInput = input
	return f.updateErr
}

func (f *fakeCardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return f.deleteErr
}

func (f *fakeCardService) AddPrinting(ctx context.Context, cardID uuid.UUID, rarityCode string, imageURL *string) (uuid.UUID, error) {
	if f.printingErr != nil {
		return uuid.Nil, f.printingErr
	}
	return f.printingID, nil
}

// newCardRouter mounts a CardHandler the way the real router does, so
// chi path parameters resolve in tests.
func newCardRouter(svc service.CardService) chi.Router {
	handler := NewCardHandler(svc)
	r := chi.NewRouter()
	r.Post("/cards", handler.CreateCard)
	r.Post("/cards/bulk", handler.BulkCreateCards)
	r.Get("/cards", handler.ListCards)
	r.Get("/cards/{id}", handler.GetCard)
	r.Put("/cards/{id}", handler.UpdateCard)
	r.Delete("/cards/{id}", handler.DeleteCard)
	r.Post("/cards/{id}/printings", handler.AddPrinting)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func characterPayload() map[string]interface{} {
	return map[string]interface{}{
		"card_identifier": "PL!S-bp1-001-R",
		"name":            "Shibuya Kanon",
		"card_type":       "Character",
		"cost":            4,
		"blades":          2,
		"hearts": []map[string]interface{}{
			{"color": "Pink", "count": 2},
		},
	}
}

func TestCardHandler_CreateCard(t *testing.T) {
	t.Parallel()

	t.Run("valid character card", func(t *testing.T) {
		svc := &fakeCardService{createID: uuid.New()}
		router := newCardRouter(svc)

		recorder := postJSON(t, router, "/cards", characterPayload())

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp CardCreatedResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, svc.createID.String(), resp.ID)

		// The identifier decomposes into the natural key plus rarity.
		assert.Equal(t, "PL!S", svc.lastInput.SeriesCode)
		assert.Equal(t, "bp1", svc.lastInput.SetCode)
		assert.Equal(t, "001", svc.lastInput.NumberInSet)
		assert.Equal(t, "R", svc.lastInput.RarityCode)
		attrs, ok := svc.lastInput.Attributes.(*domain.CharacterAttributes)
		require.True(t, ok)
		assert.Equal(t, 4, attrs.Cost)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		payload := characterPayload()
		payload["card_identifier"] = "no-separators"
		recorder := postJSON(t, router, "/cards", payload)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing card type", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		payload := characterPayload()
		delete(payload, "card_type")
		recorder := postJSON(t, router, "/cards", payload)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("live field on character card", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		payload := characterPayload()
		payload["score"] = 10
		recorder := postJSON(t, router, "/cards", payload)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("character field on energy card", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		payload := map[string]interface{}{
			"card_identifier": "PL!S-bp1-100-R",
			"name":            "Energy",
			"card_type":       "Energy",
			"cost":            1,
		}
		recorder := postJSON(t, router, "/cards", payload)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("duplicate natural key maps to conflict", func(t *testing.T) {
		svc := &fakeCardService{createErr: store.ErrDuplicateCard}
		router := newCardRouter(svc)

		recorder := postJSON(t, router, "/cards", characterPayload())

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("unknown group maps to bad request", func(t *testing.T) {
		svc := &fakeCardService{createErr: store.ErrGroupNotFound}
		router := newCardRouter(svc)

		recorder := postJSON(t, router, "/cards", characterPayload())

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		req := httptest.NewRequest(http.MethodPost, "/cards", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCardHandler_BulkCreateCards(t *testing.T) {
	t.Parallel()

	t.Run("all cards created", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		svc := &fakeCardService{bulkIDs: ids}
		router := newCardRouter(svc)

		second := characterPayload()
		second["card_identifier"] = "PL!S-bp1-002-R"
		payload := map[string]interface{}{
			"cards": []map[string]interface{}{characterPayload(), second},
		}
		recorder := postJSON(t, router, "/cards/bulk", payload)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		var resp CardsCreatedResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, []string{ids[0].String(), ids[1].String()}, resp.IDs)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		recorder := postJSON(t, router, "/cards/bulk", map[string]interface{}{
			"cards": []map[string]interface{}{},
		})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("service failure fails the batch", func(t *testing.T) {
		svc := &fakeCardService{bulkErr: store.ErrDuplicateCard}
		router := newCardRouter(svc)

		payload := map[string]interface{}{
			"cards": []map[string]interface{}{characterPayload()},
		}
		recorder := postJSON(t, router, "/cards/bulk", payload)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestCardHandler_GetCard(t *testing.T) {
	t.Parallel()

	t.Run("assembled view", func(t *testing.T) {
		view := &domain.CardView{
			ID:          uuid.New(),
			SeriesCode:  "PL!S",
			SetCode:     "bp1",
			NumberInSet: "001",
			Name:        "Shibuya Kanon",
			Type:        domain.CardTypeCharacter,
			Attributes:  &domain.CharacterAttributes{Cost: 4, Blades: 2},
			Hearts:      domain.Hearts{domain.HeartPink: 2},
			Groups:      []string{"Liella!"},
		}
		svc := &fakeCardService{getView: view}
		router := newCardRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/cards/"+view.ID.String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, "Shibuya Kanon", got["name"])
		assert.Equal(t, "Character", got["card_type"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeCardService{getErr: store.ErrCardNotFound}
		router := newCardRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/cards/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		req := httptest.NewRequest(http.MethodGet, "/cards/not-a-uuid", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestCardHandler_UpdateCard(t *testing.T) {
	t.Parallel()

	t.Run("successful update", func(t *testing.T) {
		svc := &fakeCardService{}
		router := newCardRouter(svc)

		body, err := json.Marshal(characterPayload())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/cards/"+uuid.New().String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("type change maps to conflict", func(t *testing.T) {
		svc := &fakeCardService{updateErr: domain.ErrSubtypeImmutable}
		router := newCardRouter(svc)

		body, err := json.Marshal(characterPayload())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPut, "/cards/"+uuid.New().String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestCardHandler_DeleteCard(t *testing.T) {
	t.Parallel()

	t.Run("successful delete", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		req := httptest.NewRequest(http.MethodDelete, "/cards/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeCardService{deleteErr: store.ErrCardNotFound}
		router := newCardRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/cards/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestCardHandler_AddPrinting(t *testing.T) {
	t.Parallel()

	t.Run("printing added", func(t *testing.T) {
		svc := &fakeCardService{printingID: uuid.New()}
		router := newCardRouter(svc)

		recorder := postJSON(t, router, "/cards/"+uuid.New().String()+"/printings", map[string]interface{}{
			"rarity_code": "SEC",
		})

		assert.Equal(t, http.StatusCreated, recorder.Code)
		var resp PrintingCreatedResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, svc.printingID.String(), resp.ID)
	})

	t.Run("duplicate printing maps to conflict", func(t *testing.T) {
		svc := &fakeCardService{printingErr: store.ErrDuplicatePrinting}
		router := newCardRouter(svc)

		recorder := postJSON(t, router, "/cards/"+uuid.New().String()+"/printings", map[string]interface{}{
			"rarity_code": "SEC",
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("missing rarity code", func(t *testing.T) {
		router := newCardRouter(&fakeCardService{})

		recorder := postJSON(t, router, "/cards/"+uuid.New().String()+"/printings", map[string]interface{}{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
