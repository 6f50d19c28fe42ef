package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/services"
)

// PurchaseRequest is the body of POST /api/store/purchase.
type PurchaseRequest struct {
	UserID      uint `json:"user_id" binding:"required"`
	AudiobookID uint `json:"audiobook_id" binding:"required"`
}

type StoreController struct {
	store   *services.StoreService
	auditor *audit.Service
}

func NewStoreController(store *services.StoreService, auditor *audit.Service) *StoreController {
	return &StoreController{store: store, auditor: auditor}
}

// ListAudiobooks returns the whole catalog.
// GET /api/store/
func (sc *StoreController) ListAudiobooks(c *gin.Context) {
	books, err := sc.store.ListAudiobooks()
	if err != nil {
		respondServiceError(c, err, "list audiobooks")
		return
	}
	c.JSON(http.StatusOK, books)
}

// Purchase buys an audiobook for a user.
// POST /api/store/purchase
func (sc *StoreController) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "user_id and audiobook_id are required positive integers")
		return
	}

	result, err := sc.store.Purchase(req.UserID, req.AudiobookID)
	if sc.auditor != nil {
		var purchaseID uint
		if result != nil {
			purchaseID = result.PurchaseID
		}
		sc.auditor.LogPurchase(requestMeta(c), req.UserID, req.AudiobookID, purchaseID, err)
	}
	if err != nil {
		respondServiceError(c, err, "purchase audiobook")
		return
	}

	respondCreated(c, result)
}
