package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/database"
	auditRepo "github.com/mrlokans/audiobook-store/internal/database/audit"
	"github.com/mrlokans/audiobook-store/internal/database/catalog"
	"github.com/mrlokans/audiobook-store/internal/database/progress"
	"github.com/mrlokans/audiobook-store/internal/database/purchases"
	"github.com/mrlokans/audiobook-store/internal/entities"
	"github.com/mrlokans/audiobook-store/internal/maintenance"
	"github.com/mrlokans/audiobook-store/internal/services"
)

type storeTestEnv struct {
	db      *database.Database
	catalog *catalog.Repository
	service *services.StoreService
	auditor *audit.Service
	router  *gin.Engine
}

func setupStoreTestEnv(t *testing.T, readOnly bool) *storeTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabaseWithOptions(dbPath, database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)

	env := &storeTestEnv{
		db:      db,
		catalog: catalog.NewRepository(db.DB),
		auditor: audit.NewService(auditRepo.NewRepository(db.DB)),
	}
	env.service = services.NewStoreService(
		env.catalog,
		purchases.NewRepository(db.DB),
		progress.NewRepository(db.DB),
	)
	env.router = NewRouter(RouterConfig{
		StoreService: env.service,
		Database:     db,
		AuditService: env.auditor,
		ReadOnly:     maintenance.NewReadOnlyMiddleware(readOnly),
		Version:      "test",
	})

	t.Cleanup(func() {
		env.auditor.Wait()
		db.Close()
		os.Remove(dbPath)
	})
	return env
}

func (e *storeTestEnv) addAudiobook(t *testing.T, title, author string) *entities.Audiobook {
	t.Helper()
	book := &entities.Audiobook{Title: title, Author: author}
	require.NoError(t, e.catalog.CreateAudiobook(book))
	return book
}

func (e *storeTestEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return httptestRecorder(e, req)
}

func httptestRecorder(e *storeTestEnv, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
