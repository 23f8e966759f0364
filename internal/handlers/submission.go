package handlers

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type SubmissionHandler struct {
	submissions *services.SubmissionService
	uploadDir   string
}

func NewSubmissionHandler(submissions *services.SubmissionService, uploadDir string) *SubmissionHandler {
	return &SubmissionHandler{submissions: submissions, uploadDir: uploadDir}
}

// Submit godoc
// @Summary      Register a submission
// @Tags         submissions
// @Accept       multipart/form-data
// @Produce      json
// @Param        submission formData file true "Image file (JPEG, PNG or GIF, max 5 MB)"
// @Success      200 {object} map[string]string
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /submit [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	file, err := c.FormFile("submission")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file uploaded"})
		return
	}

	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid file type. Only JPEG, PNG, and GIF allowed."})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large. Maximum size is 5 MB."})
		return
	}

	name := c.PostForm("name")
	email := c.PostForm("email")
	phone := c.PostForm("phone")
	college := c.PostForm("college")
	googleID := c.PostForm("googleId")
	if name == "" || email == "" || phone == "" || college == "" || googleID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
	dst := filepath.Join(h.uploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save file"})
		return
	}

	sub, err := h.submissions.Submit(c.Request.Context(), services.SubmissionInput{
		Name:     name,
		Email:    email,
		Phone:    phone,
		College:  college,
		GoogleID: googleID,
		FilePath: dst,
		FileName: filename,
	})
	if err != nil {
		log.Printf("submission failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission received!",
		"uniqueCode": sub.UniqueCode,
	})
}
