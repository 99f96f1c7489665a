package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportServiceRequiresMeals(t *testing.T) {
	svc := NewReportService(testKnowledge(t))

	_, err := svc.BuildDailyReport(db.Patient{Name: "Asha"}, time.Now(), nil)
	assert.ErrorIs(t, err, ErrNoMealsLogged)
}

func TestReportServiceBuildDailyReport(t *testing.T) {
	svc := NewReportService(testKnowledge(t))
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)
	longName := strings.Repeat("é", 60)

	report, err := svc.BuildDailyReport(db.Patient{Name: "Asha"}, day, []db.MealLog{
		{Meal: "Khichdi", MealType: "Dinner"},
		{Meal: "Idli", MealType: "Breakfast"},
		{Meal: "Cucumber salad", MealType: "Breakfast"},
		{Meal: longName, MealType: "Snack"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha - Diet Plan (2026-10-16)", report.Title)
	assert.Equal(t, []ReportSection{
		{Title: "Breakfast", Meals: []string{"Idli", "Cucumber salad"}},
		{Title: "Dinner", Meals: []string{"Khichdi"}},
	}, report.Sections)

	require.Len(t, report.Rows, 4)
	assert.Equal(t, strings.Repeat("é", 50)+"...", report.Rows[3].Item)
	assert.Equal(t, ayurveda.Nutrients{}, report.Rows[3].Nutrients)
	assert.Equal(t, ayurveda.Nutrients{Calories: 354, Protein: 12.7, Carbs: 60.6, Fat: 4.3}, report.Total)
}

func TestReportServiceWritePDF(t *testing.T) {
	svc := NewReportService(testKnowledge(t))
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local)

	report, err := svc.BuildDailyReport(db.Patient{Name: "Asha"}, day, []db.MealLog{
		{Meal: "Idli", MealType: "Breakfast"},
		{Meal: "Rice with dal — extra ghee", MealType: "Lunch"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WritePDF(&buf, report))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "diet_2026-10-16.pdf", FileName(time.Date(2026, 10, 16, 18, 30, 0, 0, time.UTC)))
}
