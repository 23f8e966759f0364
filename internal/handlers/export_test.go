package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rajnishk05/anaadyanta1/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportEnv(t *testing.T) (*gin.Engine, *services.SubmissionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newTestDB(t)
	pool := services.NewCodePool(10)
	sheet := services.NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	svc := services.NewSubmissionService(db, &fakeUploader{url: "https://example.com/a"}, pool, sheet)
	handler := NewExportHandler(svc, sheet)

	r := gin.New()
	r.GET("/export", handler.Export)
	r.GET("/download", handler.Download)
	return r, svc
}

func TestDownloadMissingFile(t *testing.T) {
	r, _ := newExportEnv(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "File not found")
}

func TestExportThenDownload(t *testing.T) {
	r, svc := newExportEnv(t)

	_, err := svc.Submit(context.Background(), services.SubmissionInput{
		Name: "Asha", Email: "asha@example.com", Phone: "9876543210",
		College: "NMIT", GoogleID: "sub-1", FilePath: "x", FileName: "x.jpg",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exported to Excel successfully")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "submissions.xlsx")
}
