package http

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/audiobook-store/internal/entities"
	"github.com/mrlokans/audiobook-store/internal/services"
)

// Walks a client through the whole storefront: browse, buy, re-buy,
// open the library, then save and restore a playback position.
func TestRouter_StorefrontScenario(t *testing.T) {
	env := setupStoreTestEnv(t, false)

	w := env.do("GET", "/api/store/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	env.addAudiobook(t, "Dune", "Frank Herbert")

	w = env.do("POST", "/api/store/purchase", `{"user_id": 7, "audiobook_id": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, services.PurchaseResult{PurchaseID: 1, UserID: 7, AudiobookID: 1}, decodeJSON[services.PurchaseResult](t, w))

	w = env.do("POST", "/api/store/purchase", `{"user_id": 7, "audiobook_id": 1}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Audiobook already purchased.", decodeJSON[ErrorResponse](t, w).Error)

	w = env.do("GET", "/api/library/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	library := decodeJSON[[]entities.Audiobook](t, w)
	require.Len(t, library, 1)
	assert.Equal(t, uint(1), library[0].ID)
	assert.Equal(t, "Dune", library[0].Title)

	w = env.do("PUT", "/api/progress/7/1", `{"position_seconds": 45}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 45, decodeJSON[entities.PlaybackProgress](t, w).PositionSeconds)

	w = env.do("GET", "/api/progress/7/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 45, decodeJSON[entities.PlaybackProgress](t, w).PositionSeconds)
}

func TestRouter_RequestID(t *testing.T) {
	t.Run("generates one when absent", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)

		w := env.do("GET", "/api/store/", nil)

		_, err := uuid.Parse(w.Header().Get(HeaderRequestID))
		assert.NoError(t, err)
	})

	t.Run("echoes the caller's id", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)

		req, _ := http.NewRequest("GET", "/api/store/", nil)
		req.Header.Set(HeaderRequestID, "trace-abc")
		w := httptestRecorder(env, req)

		assert.Equal(t, "trace-abc", w.Header().Get(HeaderRequestID))
	})

	t.Run("present on error responses", func(t *testing.T) {
		env := setupStoreTestEnv(t, false)

		w := env.do("GET", "/api/library/abc", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})
}

func TestRouter_ReadOnlyMode(t *testing.T) {
	env := setupStoreTestEnv(t, true)
	env.addAudiobook(t, "Dune", "Frank Herbert")

	w := env.do("POST", "/api/store/purchase", `{"user_id": 7, "audiobook_id": 1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, CodeReadOnly, decodeJSON[ErrorResponse](t, w).Code)

	w = env.do("PUT", "/api/progress/7/1", `{"position_seconds": 45}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.Equal(t, http.StatusOK, env.do("GET", "/api/store/", nil).Code)
	assert.Equal(t, http.StatusOK, env.do("GET", "/api/library/7", nil).Code)
	assert.Equal(t, http.StatusOK, env.do("GET", "/health", nil).Code)
}
