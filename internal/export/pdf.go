package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/username/zeiterfassung/internal/models"
	"github.com/username/zeiterfassung/internal/timesheet"
	"github.com/username/zeiterfassung/pkg/dateutil"
)

type rgb struct {
	r, g, b int
}

var (
	pdfPrimary   = rgb{33, 37, 41}
	pdfSecondary = rgb{108, 117, 125}
	pdfLight     = rgb{248, 249, 250}
	pdfSuccess   = rgb{40, 167, 69}
	pdfWarning   = rgb{255, 193, 7}
	pdfDanger    = rgb{220, 53, 69}
	pdfInfo      = rgb{23, 162, 184}
)

// entryColor maps an entry type to its row text color.
func entryColor(t models.EntryType) rgb {
	switch t {
	case models.TypeHomeOffice:
		return pdfSuccess
	case models.TypeVacation:
		return pdfWarning
	case models.TypeSick, models.TypeChildSick:
		return pdfDanger
	case models.TypeFlexTime:
		return pdfInfo
	default:
		return pdfPrimary
	}
}

// PDF writes the monthly timesheet as an A4 portrait document into dir
// and returns the path of the written file.
func (e *Exporter) PDF(year int, month time.Month, dir string) (string, error) {
	data, err := e.loadMonth(year, month)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(pdfPrimary.r, pdfPrimary.g, pdfPrimary.b)
	pdf.CellFormat(contentWidth, 8, tr(DocumentTitle), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// User info block, two labelled columns per line.
	infoLine := func(label1, value1, label2, value2 string) {
		half := contentWidth / 2
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(30, 6, tr(label1), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(half-30, 6, tr(value1), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(30, 6, tr(label2), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(half-30, 6, tr(value2), "", 1, "L", false, 0, "")
	}
	infoLine("Nachname:", data.UserInfo.LastName, "Pers.-Nr.:", data.UserInfo.PersonnelNo)
	infoLine("Vorname:", data.UserInfo.FirstName, "Abteilung:", data.UserInfo.Department)
	infoLine("Monat:", dateutil.GermanMonthName(month), "Kalenderjahr:", fmt.Sprintf("%d", year))
	pdf.Ln(4)

	colWidths := []float64{
		contentWidth * 0.13,
		contentWidth * 0.15,
		contentWidth * 0.11,
		contentWidth * 0.11,
		contentWidth * 0.11,
		contentWidth * 0.10,
		contentWidth * 0.16,
		contentWidth * 0.13,
	}

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(pdfPrimary.r, pdfPrimary.g, pdfPrimary.b)
		pdf.SetTextColor(255, 255, 255)
		headers := []string{"Datum", "Wochentag", "Beginn", "Pause", "Ende", "Dauer", "Abwesenheitsgrund*", "aufgezeichnet am"}
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 7, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(pdfPrimary.r, pdfPrimary.g, pdfPrimary.b)
	}
	writeHeader()

	pdf.SetFont("Helvetica", "", 8)
	for i, r := range data.Rows {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			writeHeader()
			pdf.SetFont("Helvetica", "", 8)
		}

		fill := i%2 == 1
		pdf.SetFillColor(pdfLight.r, pdfLight.g, pdfLight.b)

		color := pdfPrimary
		if r.HasEntry {
			color = entryColor(r.Type)
		} else if r.NonWorking {
			color = pdfSecondary
		}
		pdf.SetTextColor(color.r, color.g, color.b)

		cells := []struct {
			text  string
			align string
		}{
			{r.Date, "L"},
			{r.Weekday, "L"},
			{r.Begin, "C"},
			{r.Break, "C"},
			{r.End, "C"},
			{r.Duration, "C"},
			{r.Absence, "L"},
			{r.RecordedOn, "C"},
		}
		for j, cell := range cells {
			pdf.CellFormat(colWidths[j], 5, tr(cell.text), "1", 0, cell.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(pdfPrimary.r, pdfPrimary.g, pdfPrimary.b)

	// Sum row under the duration column.
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(colWidths[0], 6, tr("Summe:"), "", 0, "L", false, 0, "")
	var offset float64
	for _, w := range colWidths[1:5] {
		offset += w
	}
	pdf.CellFormat(offset, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidths[5], 6, timesheet.FormatNumber(data.TotalHours, 1), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Signature lines.
	pdf.SetFont("Helvetica", "", 10)
	y := pdf.GetY()
	pdf.Text(left, y, tr("Datum"))
	pdf.Line(left, y+1, left+30, y+1)
	pdf.Text(left+50, y, tr("Unterschrift Mitarbeiter"))
	pdf.Line(left+50, y+1, left+120, y+1)
	pdf.Ln(8)

	// Legend.
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(pdfSecondary.r, pdfSecondary.g, pdfSecondary.b)
	pdf.MultiCell(contentWidth, 4,
		tr("* Tragen Sie in diese Spalte eines der folgenden Kürzel ein, wenn es für diesen Kalendertag zutrifft:"),
		"", "L", false)
	for _, code := range absenceCodes {
		pdf.CellFormat(contentWidth, 3.5, tr("  "+code), "", 1, "L", false, 0, "")
	}

	path := filepath.Join(dir, FileName(data.UserInfo.LastName, year, month, "pdf"))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	e.logger.Info("PDF export written",
		zap.String("path", path),
		zap.Int("rows", len(data.Rows)))
	return path, nil
}
