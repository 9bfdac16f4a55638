package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/timesheet"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

// Per-category cell colors, matching the timesheet display palette.
type cellColors struct {
	fill string
	text string
}

var typeColors = map[models.EntryType]cellColors{
	models.TypeHomeOffice:  {fill: "E8F5E9", text: "2E7D32"},
	models.TypeVacation:    {fill: "FFF9C4", text: "F57F17"},
	models.TypeSick:        {fill: "FFEBEE", text: "C62828"},
	models.TypeChildSick:   {fill: "FCE4EC", text: "C2185B"},
	models.TypeOther:       {fill: "F5F5F5", text: "616161"},
	models.TypeFlexTime:    {fill: "E3F2FD", text: "1565C0"},
	models.TypeTimeAccount: {fill: "F3E5F5", text: "6A1B9A"},
}

var nonWorkingColors = cellColors{fill: "EEEEEE", text: "9E9E9E"}

// Excel writes the monthly timesheet as an .xlsx workbook into dir and
// returns the path of the written file.
func (e *Exporter) Excel(year int, month time.Month, dir string) (string, error) {
	data, err := e.loadMonth(year, month)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return "", fmt.Errorf("failed to set column widths: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"F0F0F0"}, Pattern: 1},
		Border:    thinBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	f.SetCellValue(sheet, "A1", DocumentTitle)
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	f.SetCellValue(sheet, "A3", "Nachname:")
	f.SetCellValue(sheet, "B3", data.UserInfo.LastName)
	f.SetCellValue(sheet, "E3", "Pers.-Nr.:")
	f.SetCellValue(sheet, "F3", data.UserInfo.PersonnelNo)
	f.SetCellValue(sheet, "A4", "Vorname:")
	f.SetCellValue(sheet, "B4", data.UserInfo.FirstName)
	f.SetCellValue(sheet, "E4", "Abteilung:")
	f.SetCellValue(sheet, "F4", data.UserInfo.Department)
	f.SetCellValue(sheet, "A6", "Monat:")
	f.SetCellValue(sheet, "B6", dateutil.GermanMonthName(month))
	f.SetCellValue(sheet, "A7", "Kalenderjahr:")
	f.SetCellValue(sheet, "B7", year)
	for _, cell := range []string{"A3", "E3", "A4", "E4", "A6", "A7"} {
		f.SetCellStyle(sheet, cell, cell, labelStyle)
	}

	const headerRow = 9
	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return "", fmt.Errorf("failed to build cell name: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	// Row styles are created once per palette entry and reused.
	rowStyles := make(map[cellColors]int)
	styleFor := func(colors cellColors) (int, error) {
		if id, ok := rowStyles[colors]; ok {
			return id, nil
		}
		id, err := f.NewStyle(&excelize.Style{
			Font:   &excelize.Font{Color: colors.text},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{colors.fill}, Pattern: 1},
			Border: thinBorder(),
		})
		if err != nil {
			return 0, err
		}
		rowStyles[colors] = id
		return id, nil
	}
	plainStyle, err := f.NewStyle(&excelize.Style{Border: thinBorder()})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}

	rowNum := headerRow
	for _, r := range data.Rows {
		rowNum++
		values := []any{r.Date, r.Weekday, r.Begin, r.Break, r.End, r.Duration, r.Absence, r.RecordedOn}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return "", fmt.Errorf("failed to build cell name: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
		}

		styleID := plainStyle
		switch {
		case r.HasEntry:
			if colors, ok := typeColors[r.Type]; ok {
				styleID, err = styleFor(colors)
				if err != nil {
					return "", fmt.Errorf("failed to create style: %w", err)
				}
			}
		case r.NonWorking:
			styleID, err = styleFor(nonWorkingColors)
			if err != nil {
				return "", fmt.Errorf("failed to create style: %w", err)
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		last, _ := excelize.CoordinatesToCellName(len(values), rowNum)
		f.SetCellStyle(sheet, first, last, styleID)
	}

	sumRow := rowNum + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", sumRow), "Summe:")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", sumRow), fmt.Sprintf("A%d", sumRow), labelStyle)
	sumCell := fmt.Sprintf("F%d", sumRow)
	f.SetCellValue(sheet, sumCell, timesheet.FormatNumber(data.TotalHours, 1))
	sumStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: thinBorder(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create style: %w", err)
	}
	f.SetCellStyle(sheet, sumCell, sumCell, sumStyle)

	signRow := sumRow + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", signRow), "Datum")
	f.SetCellValue(sheet, fmt.Sprintf("C%d", signRow), "Unterschrift Mitarbeiter")

	legendRow := signRow + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", legendRow),
		"* Tragen Sie in diese Spalte eines der folgenden Kürzel ein, wenn es für diesen Kalendertag zutrifft:")
	for i, code := range absenceCodes {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", legendRow+1+i), code)
	}

	path := filepath.Join(dir, FileName(data.UserInfo.LastName, year, month, "xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Excel export written",
		zap.String("path", path),
		zap.Int("rows", len(data.Rows)))
	return path, nil
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
