package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rajnishk05/anaadyanta1/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUploader stands in for the Drive client so tests never hit the
// network.
type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (f *fakeUploader) Upload(ctx context.Context, localPath, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func testInput(googleID string) SubmissionInput {
	return SubmissionInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		College:  "NMIT",
		GoogleID: googleID,
		FilePath: "testdata/photo.jpg",
		FileName: "photo.jpg",
	}
}

func TestSubmitSuccess(t *testing.T) {
	db := newTestDB(t)
	pool := NewCodePool(10)
	sheet := NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	uploader := &fakeUploader{url: "https://drive.google.com/file/d/abc/view"}
	svc := NewSubmissionService(db, uploader, pool, sheet)

	sub, err := svc.Submit(context.Background(), testInput("sub-1"))
	require.NoError(t, err)

	assert.Equal(t, 9, pool.Remaining(), "exactly one code consumed")
	assert.Equal(t, "https://drive.google.com/file/d/abc/view", sub.PhotoURL)
	assert.Regexp(t, `^AY[A-Z0-9]{4}RA$`, sub.UniqueCode)

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	assert.EqualValues(t, 1, count)

	rows := readSheet(t, sheet.Path())
	require.Len(t, rows, 2)
	assert.Equal(t, sub.UniqueCode, rows[1][5])
}

func TestSubmitDuplicateGoogleID(t *testing.T) {
	db := newTestDB(t)
	pool := NewCodePool(10)
	sheet := NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	svc := NewSubmissionService(db, &fakeUploader{url: "https://example.com/a"}, pool, sheet)

	_, err := svc.Submit(context.Background(), testInput("sub-1"))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), testInput("sub-1"))
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	assert.EqualValues(t, 1, count, "duplicate must not persist a second record")
}

func TestSubmitUploadFailure(t *testing.T) {
	db := newTestDB(t)
	pool := NewCodePool(10)
	sheet := NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	uploader := &fakeUploader{err: errors.New("drive unavailable")}
	svc := NewSubmissionService(db, uploader, pool, sheet)

	_, err := svc.Submit(context.Background(), testInput("sub-1"))
	require.Error(t, err)

	assert.Equal(t, 10, pool.Remaining(), "failed upload must not consume a code")
	var count int64
	db.Model(&models.Submission{}).Count(&count)
	assert.EqualValues(t, 0, count, "failed upload must not persist a record")
}

func TestSubmitCodesExhausted(t *testing.T) {
	db := newTestDB(t)
	pool := NewCodePool(0)
	sheet := NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	svc := NewSubmissionService(db, &fakeUploader{url: "https://example.com/a"}, pool, sheet)

	_, err := svc.Submit(context.Background(), testInput("sub-1"))
	assert.ErrorIs(t, err, ErrCodesExhausted)
}

func TestExport(t *testing.T) {
	db := newTestDB(t)
	pool := NewCodePool(10)
	sheet := NewSpreadsheetService(filepath.Join(t.TempDir(), "submissions.xlsx"))
	svc := NewSubmissionService(db, &fakeUploader{url: "https://example.com/a"}, pool, sheet)

	_, err := svc.Submit(context.Background(), testInput("sub-1"))
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), testInput("sub-2"))
	require.NoError(t, err)

	require.NoError(t, svc.Export())

	rows := readSheet(t, sheet.Path())
	require.Len(t, rows, 3, "header plus one row per persisted submission")
}
