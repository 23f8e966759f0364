package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rajnishk05/anaadyanta1/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCodesExhausted   = errors.New("no more unique codes available")
	ErrAlreadySubmitted = errors.New("a submission already exists for this Google account")
)

type SubmissionInput struct {
	Name     string
	Email    string
	Phone    string
	College  string
	GoogleID string
	FilePath string
	FileName string
}

type SubmissionService struct {
	db       *gorm.DB
	uploader AssetUploader
	pool     *CodePool
	sheet    *SpreadsheetService
}

func NewSubmissionService(db *gorm.DB, uploader AssetUploader, pool *CodePool, sheet *SpreadsheetService) *SubmissionService {
	return &SubmissionService{db: db, uploader: uploader, pool: pool, sheet: sheet}
}

// Submit runs the registration flow: upload the staged image, assign a
// code from the pool, persist the record, then append it to the
// workbook. The upload happens before any database write so a failed
// upload leaves nothing behind. A spreadsheet failure is only logged —
// by that point the submission and its code are already committed.
func (s *SubmissionService) Submit(ctx context.Context, in SubmissionInput) (*models.Submission, error) {
	link, err := s.uploader.Upload(ctx, in.FilePath, in.FileName)
	if err != nil {
		return nil, fmt.Errorf("uploading to drive: %w", err)
	}

	code, ok := s.pool.Take()
	if !ok {
		return nil, ErrCodesExhausted
	}

	sub := models.Submission{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		College:    in.College,
		PhotoURL:   link,
		GoogleID:   in.GoogleID,
		UniqueCode: code,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		// A duplicate here wastes the code taken above; the pool is
		// in-memory and oversized, so the leak is tolerated.
		if isDuplicateErr(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}

	if err := s.sheet.Append(&sub); err != nil {
		log.Printf("failed to append submission %s to spreadsheet: %v", sub.UniqueCode, err)
	}

	return &sub, nil
}

// All returns every submission in insertion order.
func (s *SubmissionService) All() ([]models.Submission, error) {
	var subs []models.Submission
	if err := s.db.Order("id").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Export rebuilds the workbook from every persisted submission.
func (s *SubmissionService) Export() error {
	subs, err := s.All()
	if err != nil {
		return err
	}
	return s.sheet.ExportAll(subs)
}

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique")
}
