package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nutrivoice/nutrivoice/internal/repository"
)

// Service is a tiny façade over the meal repository that produces XLSX bytes
// for meal-history exports.
type Service struct {
	meals  *repository.MealRepository
	logger *slog.Logger
}

func NewService(meals *repository.MealRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{meals: meals, logger: logger}
}

// ExportMealsXLSX returns an XLSX workbook (as bytes) for the given user and
// date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all entries for the user.
func (s *Service) ExportMealsXLSX(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, UTC)
	var fromDate, toDate time.Time
	if from != nil {
		fromDate = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	}
	if to != nil {
		// Inclusive upper bound: start of the day after.
		toDate = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	}
	if !fromDate.IsZero() && toDate.IsZero() {
		today := time.Now().UTC()
		toDate = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	}

	entries, err := s.meals.ListByUser(ctx, userID, fromDate, toDate, 10000)
	if err != nil {
		return nil, fmt.Errorf("query meal entries: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Meals"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Date",
		"Meal",
		"Transcription",
		"Calories",
		"Protein (g)",
		"Carbs (g)",
		"Fat (g)",
		"Model",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, e := range entries {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !e.LoggedAt.IsZero() {
			write(1, e.LoggedAt.UTC().Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, e.Description)
		write(3, truncate(e.Transcription, 140))
		write(4, e.Calories)
		write(5, e.Protein)
		write(6, e.Carbs)
		write(7, e.Fat)
		write(8, e.ModelID)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 12) // date
	_ = f.SetColWidth(sheet, "B", "B", 32) // meal
	_ = f.SetColWidth(sheet, "C", "C", 48) // transcription
	_ = f.SetColWidth(sheet, "D", "G", 12) // macros
	_ = f.SetColWidth(sheet, "H", "H", 24) // model

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"rows", len(entries),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
