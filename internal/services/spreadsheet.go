package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rajnishk05/anaadyanta1/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Submissions"

var sheetHeaders = []interface{}{"Name", "Email", "Phone", "College", "Photo URL", "Unique Code"}

// SpreadsheetService maintains the submissions workbook. Every append is
// a full read-modify-write of the file, so a mutex serializes writers;
// without it two concurrent appends could both load the same prior state
// and one would overwrite the other's row.
type SpreadsheetService struct {
	mu   sync.Mutex
	path string
}

func NewSpreadsheetService(path string) *SpreadsheetService {
	return &SpreadsheetService{path: path}
}

func (s *SpreadsheetService) Path() string {
	return s.path
}

// Append adds one row for the submission, creating the workbook and the
// header row on first use. Headers are written only when A1 is empty.
func (s *SpreadsheetService) Append(sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.openOrCreate()
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ensureHeaders(f); err != nil {
		return err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return err
	}
	row := submissionRow(sub)
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", len(rows)+1), &row); err != nil {
		return err
	}

	return f.SaveAs(s.path)
}

// ExportAll rewrites the workbook from scratch with one row per
// submission, in the order given.
func (s *SpreadsheetService) ExportAll(subs []models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := ensureHeaders(f); err != nil {
		return err
	}

	for i, sub := range subs {
		row := submissionRow(&sub)
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.SaveAs(s.path)
}

// WaitForRelease blocks until the workbook file can be opened for
// writing, retrying a few times in case another process holds it.
func (s *SpreadsheetService) WaitForRelease() error {
	return withRetry(5, time.Second, func() error {
		f, err := os.OpenFile(s.path, os.O_RDWR, 0)
		if err != nil {
			return err
		}
		return f.Close()
	})
}

func (s *SpreadsheetService) openOrCreate() (*excelize.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); err == nil {
		f, err := excelize.OpenFile(s.path)
		if err != nil {
			return nil, err
		}
		if idx, err := f.GetSheetIndex(sheetName); err != nil || idx == -1 {
			if _, err := f.NewSheet(sheetName); err != nil {
				f.Close()
				return nil, err
			}
		}
		return f, nil
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func ensureHeaders(f *excelize.File) error {
	a1, err := f.GetCellValue(sheetName, "A1")
	if err != nil {
		return err
	}
	if a1 != "" {
		return nil
	}

	if err := f.SetSheetRow(sheetName, "A1", &sheetHeaders); err != nil {
		return err
	}
	for _, w := range []struct {
		col   string
		width float64
	}{
		{"A", 30}, {"B", 30}, {"C", 20}, {"D", 40}, {"E", 50}, {"F", 20},
	} {
		if err := f.SetColWidth(sheetName, w.col, w.col, w.width); err != nil {
			return err
		}
	}
	return nil
}

func submissionRow(sub *models.Submission) []interface{} {
	return []interface{}{sub.Name, sub.Email, sub.Phone, sub.College, sub.PhotoURL, sub.UniqueCode}
}
