// Package export renders the weekly studio schedule as an XLSX workbook:
// hour rows on the operating grid, one column per day, member and session
// details in the booked cells.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"estudio/internal/domain"
	"estudio/internal/models"
	"estudio/internal/schedule"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Schedule"

type ScheduleExporter struct {
	bookings domain.BookingRepository
	profiles domain.ProfileRepository
	path     string
	logger   *zerolog.Logger
}

func NewScheduleExporter(bookings domain.BookingRepository, profiles domain.ProfileRepository, path string, logger *zerolog.Logger) *ScheduleExporter {
	return &ScheduleExporter{
		bookings: bookings,
		profiles: profiles,
		path:     path,
		logger:   logger,
	}
}

// Export writes the workbook for [start, end) and returns the file path.
func (e *ScheduleExporter) Export(ctx context.Context, start, end time.Time) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bookings, err := e.bookings.ListBookingsBetween(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %w", err)
	}

	names, err := e.memberNames(ctx, bookings)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	lastDay := end.AddDate(0, 0, -1)
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Studio schedule: %s - %s",
		start.Format("02.01.2006"), lastDay.Format("02.01.2006")))

	dateColumns := e.writeDateHeaders(f, start, end)
	e.writeHourRows(f)
	e.writeBookingCells(f, bookings, names, dateColumns)

	_ = f.SetColWidth(sheetName, "A", "A", 12)
	for col := 2; col <= len(dateColumns)+1; col++ {
		name, _ := excelize.ColumnNumberToName(col)
		_ = f.SetColWidth(sheetName, name, name, 24)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(dateColumns) + 1)
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("schedule_%s_to_%s.xlsx",
		start.Format("2006-01-02"), lastDay.Format("2006-01-02"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("schedule workbook created")
	return filePath, nil
}

func (e *ScheduleExporter) memberNames(ctx context.Context, bookings []models.Booking) (map[string]string, error) {
	names := make(map[string]string)
	for _, b := range bookings {
		if _, ok := names[b.UserID]; ok {
			continue
		}
		profile, err := e.profiles.GetProfile(ctx, b.UserID)
		if err != nil {
			return nil, fmt.Errorf("error getting profile: %w", err)
		}
		if profile != nil && profile.FullName != "" {
			names[b.UserID] = profile.FullName
		} else {
			names[b.UserID] = b.UserID
		}
	}
	return names, nil
}

func (e *ScheduleExporter) writeDateHeaders(f *excelize.File, start, end time.Time) map[string]int {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	col := 2
	dateColumns := make(map[string]int)
	for current := start; current.Before(end); current = current.AddDate(0, 0, 1) {
		cell, _ := excelize.CoordinatesToCellName(col, 2)
		_ = f.SetCellValue(sheetName, cell, current.Format("Mon 02.01"))
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
		dateColumns[current.Format("2006-01-02")] = col
		col++
	}
	return dateColumns
}

func (e *ScheduleExporter) writeHourRows(f *excelize.File) {
	hourStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	for i, hour := range schedule.StartHours() {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		_ = f.SetCellValue(sheetName, cell, fmt.Sprintf("%02d:00-%02d:00", hour, hour+1))
		_ = f.SetCellStyle(sheetName, cell, cell, hourStyle)
	}
}

func (e *ScheduleExporter) writeBookingCells(f *excelize.File, bookings []models.Booking, names map[string]string, dateColumns map[string]int) {
	bookedStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
	})

	for _, b := range bookings {
		col, ok := dateColumns[b.StartTime.Format("2006-01-02")]
		if !ok {
			continue
		}

		label := fmt.Sprintf("%s\n%s", b.Title, names[b.UserID])
		for hour := b.StartTime.Hour(); hour < b.EndTime.Hour(); hour++ {
			if hour < schedule.OpenHour || hour >= schedule.CloseHour {
				continue
			}
			row := hour - schedule.OpenHour + 3
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheetName, cell, label)
			_ = f.SetCellStyle(sheetName, cell, cell, bookedStyle)
		}
	}
}
