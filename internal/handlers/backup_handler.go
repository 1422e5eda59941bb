package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "wheeltradr/internal/errors"
	"wheeltradr/internal/services"
)

// maxImportBytes bounds the size of an import document.
const maxImportBytes = 20 << 20

// BackupHandler handles journal export and import.
type BackupHandler struct {
	backupService services.BackupServicer
	clock         func() time.Time
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService services.BackupServicer) *BackupHandler {
	return &BackupHandler{backupService: backupService, clock: time.Now}
}

// Export downloads the journal
// @Summary     Export journal
// @Description Every trade and the settings as one JSON document
// @Tags        backup
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.BackupDocument
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/export [get]
func (h *BackupHandler) Export(c *gin.Context) {
	doc, err := h.backupService.Export()
	if err != nil {
		respondWithError(c, err)
		return
	}
	filename := fmt.Sprintf("wheeltradr-backup-%s.json", h.clock().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, doc)
}

// Import replaces the journal
// @Summary     Import journal
// @Description Accepts an exported document or a bare array of trades. An invalid document changes nothing.
// @Tags        backup
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     services.BackupDocument true "Backup document"
// @Success     200 {object} services.ImportResult
// @Failure     400 {object} ErrorResponse "Invalid import"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	payload, err := c.GetRawData()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidImport, "Could not read import document"))
		return
	}

	result, err := h.backupService.Import(payload)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
