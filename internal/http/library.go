package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/audiobook-store/internal/services"
)

type LibraryController struct {
	store *services.StoreService
}

func NewLibraryController(store *services.StoreService) *LibraryController {
	return &LibraryController{store: store}
}

// ListLibrary returns the audiobooks a user has purchased.
// GET /api/library/:user_id
func (lc *LibraryController) ListLibrary(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	books, err := lc.store.ListLibrary(userID)
	if err != nil {
		respondServiceError(c, err, "list library")
		return
	}
	c.JSON(http.StatusOK, books)
}
