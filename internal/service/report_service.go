package service

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
)

// ErrNoMealsLogged is returned when an export is requested for a day without meals.
var ErrNoMealsLogged = errors.New("no meals logged for today")

const reportNameLimit = 50

// reportSections are the slots that get their own heading in the export.
var reportSections = []ayurveda.Slot{ayurveda.SlotBreakfast, ayurveda.SlotLunch, ayurveda.SlotDinner}

// ReportSection lists the meals logged under one slot heading.
type ReportSection struct {
	Title string
	Meals []string
}

// ReportRow is one line of the nutrition table.
type ReportRow struct {
	Item      string
	Nutrients ayurveda.Nutrients
}

// DailyReport is the data behind the daily export document.
type DailyReport struct {
	Title    string
	Date     time.Time
	Sections []ReportSection
	Rows     []ReportRow
	Total    ayurveda.Nutrients
}

// ReportService turns a day's meal logs into a downloadable document.
type ReportService struct {
	kb *ayurveda.KnowledgeBase
}

// NewReportService creates a ReportService instance.
func NewReportService(kb *ayurveda.KnowledgeBase) *ReportService {
	return &ReportService{kb: kb}
}

// FileName returns the attachment name for the export of day.
func FileName(day time.Time) string {
	return fmt.Sprintf("diet_%s.pdf", day.Format(time.DateOnly))
}

// BuildDailyReport groups meals into sections and totals their nutrients.
// Foods missing from the nutrition table count as zero.
func (s *ReportService) BuildDailyReport(patient db.Patient, day time.Time, meals []db.MealLog) (*DailyReport, error) {
	if len(meals) == 0 {
		return nil, ErrNoMealsLogged
	}

	report := &DailyReport{
		Title: fmt.Sprintf("%s - Diet Plan (%s)", patient.Name, day.Format(time.DateOnly)),
		Date:  normalizeToDate(day),
		Rows:  make([]ReportRow, 0, len(meals)),
	}

	grouped := make(map[ayurveda.Slot][]string, len(reportSections))
	var total ayurveda.Nutrients
	for _, m := range meals {
		grouped[ayurveda.Slot(m.MealType)] = append(grouped[ayurveda.Slot(m.MealType)], m.Meal)

		nutrients, _ := s.kb.Lookup(m.Meal)
		report.Rows = append(report.Rows, ReportRow{Item: truncateRunes(m.Meal, reportNameLimit), Nutrients: nutrients})
		total.Calories += nutrients.Calories
		total.Protein += nutrients.Protein
		total.Carbs += nutrients.Carbs
		total.Fat += nutrients.Fat
	}

	for _, slot := range reportSections {
		if items := grouped[slot]; len(items) > 0 {
			report.Sections = append(report.Sections, ReportSection{Title: string(slot), Meals: items})
		}
	}

	report.Total = ayurveda.Nutrients{
		Calories: ayurveda.RoundTenth(total.Calories),
		Protein:  ayurveda.RoundTenth(total.Protein),
		Carbs:    ayurveda.RoundTenth(total.Carbs),
		Fat:      ayurveda.RoundTenth(total.Fat),
	}
	return report, nil
}

// WritePDF renders report as a single A4 document.
func (s *ReportService) WritePDF(w io.Writer, report *DailyReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(report.Title), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	for _, section := range report.Sections {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetFillColor(200, 230, 201)
		pdf.CellFormat(0, 10, section.Title, "", 1, "", true, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "", 12)
		for _, meal := range section.Meals {
			pdf.MultiCell(0, 7, tr("- "+plainDashes(meal)), "", "", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Nutrition Summary", "", 1, "", false, 0, "")
	pdf.Ln(2)

	widths := []float64{70, 30, 30, 30, 30}
	pdf.SetFont("Arial", "B", 12)
	for i, header := range []string{"Item", "Calories", "Protein", "Carbs", "Fat"} {
		pdf.CellFormat(widths[i], 10, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 12)
	for _, row := range report.Rows {
		writeReportRow(pdf, widths, tr(plainDashes(row.Item)), "", row.Nutrients)
	}

	pdf.SetFont("Arial", "B", 12)
	writeReportRow(pdf, widths, "Total", "C", report.Total)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func writeReportRow(pdf *fpdf.Fpdf, widths []float64, label, labelAlign string, n ayurveda.Nutrients) {
	pdf.CellFormat(widths[0], 8, label, "1", 0, labelAlign, false, 0, "")
	for i, v := range []float64{n.Calories, n.Protein, n.Carbs, n.Fat} {
		pdf.CellFormat(widths[i+1], 8, formatAmount(v), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var dashReplacer = strings.NewReplacer("—", "-", "–", "-", "•", "-")

func plainDashes(s string) string {
	return dashReplacer.Replace(s)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
