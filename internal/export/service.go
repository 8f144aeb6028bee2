package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/resume-parser/internal/repository"
)

// Service is a tiny façade over the resume repository that produces XLSX
// bytes for exports.
type Service struct {
	resumesRepo repository.ResumeRepository
	logger      *slog.Logger
}

func NewService(repo repository.ResumeRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{resumesRepo: repo, logger: logger}
}

// ExportResumesXLSX returns an XLSX workbook (as bytes) for the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all parsed resumes.
func (s *Service) ExportResumesXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	resumes, err := s.resumesRepo.ListResumes(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query resumes: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Resumes"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Parsed At",
		"File ID",
		"Name",
		"Email",
		"Phone",
		"Skills",
		"Experience",
		"Education",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range resumes {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.ParsedAt.Format("2006-01-02"))
		write(2, r.FileID)
		write(3, r.Name)
		write(4, r.Email)
		write(5, r.Phone)
		write(6, strings.Join(r.Skills, "; "))
		write(7, strings.Join(r.Experience, "; "))
		write(8, strings.Join(r.Education, "; "))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "E", 24)
	_ = f.SetColWidth(sheet, "F", "H", 48)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.resumes.ok",
		"rows", len(resumes),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
