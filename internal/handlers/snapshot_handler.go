package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/pagination"
	"wheeltradr/internal/services"
)

// SnapshotHandler handles performance snapshot requests.
type SnapshotHandler struct {
	snapshotService services.PerformanceSnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.PerformanceSnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// GetSnapshots handles retrieving daily performance snapshots.
// @Summary     Get performance snapshots
// @Description Get paginated daily snapshots, newest first. Both bounds are optional and inclusive.
// @Tags        analytics
// @Produce     json
// @Security    BearerAuth
// @Param       from      query string false "Start date (YYYY-MM-DD)"
// @Param       to        query string false "End date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[models.PerformanceSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /snapshots [get]
func (h *SnapshotHandler) GetSnapshots(c *gin.Context) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.snapshotService.GetSnapshots(from, to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
