package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/audiobook-store/internal/audit"
	"github.com/mrlokans/audiobook-store/internal/services"
)

// ProgressRequest is the body of PUT /api/progress/:user_id/:audiobook_id.
// PositionSeconds is a pointer so that an explicit 0 passes the required check.
type ProgressRequest struct {
	PositionSeconds *int `json:"position_seconds" binding:"required"`
}

type ProgressController struct {
	store   *services.StoreService
	auditor *audit.Service
}

func NewProgressController(store *services.StoreService, auditor *audit.Service) *ProgressController {
	return &ProgressController{store: store, auditor: auditor}
}

// GetProgress returns the stored playback position.
// GET /api/progress/:user_id/:audiobook_id
func (pc *ProgressController) GetProgress(c *gin.Context) {
	userID, audiobookID, ok := parseProgressParams(c)
	if !ok {
		return
	}

	progress, err := pc.store.GetProgress(userID, audiobookID)
	if err != nil {
		respondServiceError(c, err, "get progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// SetProgress creates or overwrites the playback position.
// PUT /api/progress/:user_id/:audiobook_id
func (pc *ProgressController) SetProgress(c *gin.Context) {
	userID, audiobookID, ok := parseProgressParams(c)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "position_seconds is required and must be an integer")
		return
	}

	progress, err := pc.store.SetProgress(userID, audiobookID, *req.PositionSeconds)
	if pc.auditor != nil {
		var progressID uint
		if progress != nil {
			progressID = progress.ID
		}
		pc.auditor.LogProgress(requestMeta(c), userID, audiobookID, *req.PositionSeconds, progressID, err)
	}
	if err != nil {
		respondServiceError(c, err, "set progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

func parseProgressParams(c *gin.Context) (userID, audiobookID uint, ok bool) {
	if userID, ok = parseIDParam(c, "user_id"); !ok {
		return 0, 0, false
	}
	if audiobookID, ok = parseIDParam(c, "audiobook_id"); !ok {
		return 0, 0, false
	}
	return userID, audiobookID, true
}
