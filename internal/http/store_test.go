package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/audiobook-store/internal/entities"
	"github.com/mrlokans/audiobook-store/internal/services"
)

func TestStoreController_ListAudiobooks(t *testing.T) {
	t.Run("empty catalog is an empty JSON array", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)

		w := env.do("GET", "/api/store/", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("returns every audiobook with all fields", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		duration := 3600
		price := 9.99
		require.NoError(t, env.catalog.CreateAudiobook(&entities.Audiobook{
			Title:           "Dune",
			Author:          "Frank Herbert",
			Description:     "Desert planet",
			CoverURL:        "https://example.com/dune.jpg",
			AudioURL:        "https://example.com/dune.mp3",
			DurationSeconds: &duration,
			Price:           &price,
		}))
		env.addAudiobook(t, "Emma", "Jane Austen")

		w := env.do("GET", "/api/store/", nil)
		require.Equal(t, http.StatusOK, w.Code)

		books := decodeJSON[[]map[string]any](t, w)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0]["title"])
		assert.Equal(t, "Frank Herbert", books[0]["author"])
		assert.Equal(t, float64(3600), books[0]["duration_seconds"])
		assert.Equal(t, 9.99, books[0]["price"])
		assert.Nil(t, books[1]["price"])
		assert.Nil(t, books[1]["duration_seconds"])
	})

	t.Run("path without trailing slash also lists", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		env.addAudiobook(t, "Dune", "Frank Herbert")

		w := env.do("GET", "/api/store", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeJSON[[]entities.Audiobook](t, w), 1)
	})
}

func TestStoreController_Purchase(t *testing.T) {
	t.Run("creates purchase", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		book := env.addAudiobook(t, "Dune", "Frank Herbert")

		w := env.do("POST", "/api/store/purchase", PurchaseRequest{UserID: 7, AudiobookID: book.ID})

		assert.Equal(t, http.StatusCreated, w.Code)
		result := decodeJSON[services.PurchaseResult](t, w)
		assert.NotZero(t, result.PurchaseID)
		assert.Equal(t, uint(7), result.UserID)
		assert.Equal(t, book.ID, result.AudiobookID)
	})

	t.Run("second purchase conflicts", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		book := env.addAudiobook(t, "Dune", "Frank Herbert")
		body := PurchaseRequest{UserID: 7, AudiobookID: book.ID}

		require.Equal(t, http.StatusCreated, env.do("POST", "/api/store/purchase", body).Code)
		w := env.do("POST", "/api/store/purchase", body)

		assert.Equal(t, http.StatusConflict, w.Code)
		resp := decodeJSON[ErrorResponse](t, w)
		assert.Equal(t, "Audiobook already purchased.", resp.Error)
		assert.Equal(t, CodeConflict, resp.Code)
	})

	t.Run("unknown audiobook", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)

		w := env.do("POST", "/api/store/purchase", PurchaseRequest{UserID: 7, AudiobookID: 42})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, CodeNotFound, decodeJSON[ErrorResponse](t, w).Code)
	})

	t.Run("invalid bodies are rejected", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		env.addAudiobook(t, "Dune", "Frank Herbert")

		for name, body := range map[string]string{
			"missing fields":    `{}`,
			"missing user":      `{"audiobook_id": 1}`,
			"zero audiobook":    `{"user_id": 7, "audiobook_id": 0}`,
			"negative user":     `{"user_id": -7, "audiobook_id": 1}`,
			"string identifier": `{"user_id": "seven", "audiobook_id": 1}`,
			"malformed json":    `{"user_id": 7,`,
		} {
			t.Run(name, func(t *testing.T) {
				w := env.do("POST", "/api/store/purchase", body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, CodeValidation, decodeJSON[ErrorResponse](t, w).Code)
			})
		}
	})

	t.Run("records audit events for success and conflict", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)
		book := env.addAudiobook(t, "Dune", "Frank Herbert")
		body := PurchaseRequest{UserID: 7, AudiobookID: book.ID}

		first := env.do("POST", "/api/store/purchase", body)
		env.do("POST", "/api/store/purchase", body)
		env.auditor.Wait()

		events, total, err := env.auditor.GetEvents(7, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		var statuses []entities.AuditStatus
		var requestIDs []string
		for _, e := range events {
			assert.Equal(t, entities.AuditEventPurchase, e.EventType)
			statuses = append(statuses, e.Status)
			requestIDs = append(requestIDs, e.RequestID)
		}
		assert.ElementsMatch(t, []entities.AuditStatus{entities.AuditStatusSuccess, entities.AuditStatusFailed}, statuses)
		assert.Contains(t, requestIDs, first.Header().Get(HeaderRequestID))
	})
}
