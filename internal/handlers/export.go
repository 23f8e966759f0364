package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	submissions *services.SubmissionService
	sheet       *services.SpreadsheetService
}

func NewExportHandler(submissions *services.SubmissionService, sheet *services.SpreadsheetService) *ExportHandler {
	return &ExportHandler{submissions: submissions, sheet: sheet}
}

// Export rebuilds the workbook from every persisted submission.
func (h *ExportHandler) Export(c *gin.Context) {
	if err := h.submissions.Export(); err != nil {
		log.Printf("export failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export submissions"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Submissions exported to Excel successfully!"})
}

// Download streams the workbook as an attachment, waiting briefly if
// another writer still holds the file.
func (h *ExportHandler) Download(c *gin.Context) {
	path := h.sheet.Path()
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
		return
	}

	if err := h.sheet.WaitForRelease(); err != nil {
		log.Printf("download failed, file still busy: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to download file"})
		return
	}

	c.FileAttachment(path, "submissions.xlsx")
}
