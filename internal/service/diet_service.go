package service

import (
	"errors"
	"time"

	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
)

// ErrProfileMissing is returned when a plan is requested before the questionnaire was analysed.
var ErrProfileMissing = errors.New("questionnaire has not been completed")

// DietService assembles plan and nutrition views from the knowledge base.
type DietService struct {
	kb    *ayurveda.KnowledgeBase
	meals *MealLogService
}

// PlannedFood is one plan entry annotated with its nutrients and verdict.
type PlannedFood struct {
	Name      string             `json:"name"`
	Nutrients ayurveda.Nutrients `json:"nutrients"`
	Verdict   ayurveda.Verdict   `json:"evaluation"`
}

// PlannedSlot groups planned foods by meal period.
type PlannedSlot struct {
	Slot  ayurveda.Slot `json:"slot"`
	Foods []PlannedFood `json:"foods"`
}

// DietPlanView is everything the plan page shows.
type DietPlanView struct {
	Profile    ayurveda.Profile            `json:"profile"`
	Allergies  []string                    `json:"allergies"`
	Plan       ayurveda.Plan               `json:"plan"`
	Slots      []PlannedSlot               `json:"slots"`
	Evaluation map[string]ayurveda.Verdict `json:"evaluation"`
	Nutrition  ayurveda.Summary            `json:"nutrition"`
}

// DayAnalysis summarises the foods logged on one day.
type DayAnalysis struct {
	Date      time.Time        `json:"date"`
	Items     []string         `json:"items"`
	Nutrition ayurveda.Summary `json:"nutrition"`
}

// NewDietService creates a DietService instance.
func NewDietService(kb *ayurveda.KnowledgeBase, meals *MealLogService) *DietService {
	return &DietService{kb: kb, meals: meals}
}

// PlanFor generates, evaluates and totals today's plan for a classified patient.
func (s *DietService) PlanFor(patient db.Patient) (*DietPlanView, error) {
	if !patient.HasProfile() {
		return nil, ErrProfileMissing
	}

	profile := ProfileOf(patient)
	allergies := patient.AllergyList()
	plan := s.kb.GeneratePlanFor(profile)

	view := &DietPlanView{
		Profile:    profile,
		Allergies:  allergies,
		Plan:       plan,
		Slots:      make([]PlannedSlot, 0, len(plan.Slots)),
		Evaluation: make(map[string]ayurveda.Verdict),
		Nutrition:  s.kb.Summarize(plan.Items()),
	}

	for _, slot := range plan.Slots {
		planned := PlannedSlot{Slot: slot.Slot, Foods: make([]PlannedFood, 0, len(slot.Foods))}
		for _, name := range slot.Foods {
			verdict := ayurveda.EvaluateFor(name, profile, allergies)
			nutrients, _ := s.kb.Lookup(name)
			planned.Foods = append(planned.Foods, PlannedFood{Name: name, Nutrients: nutrients, Verdict: verdict})
			view.Evaluation[name] = verdict
		}
		view.Slots = append(view.Slots, planned)
	}

	return view, nil
}

// AnalyzeDay totals the nutrients of the meals a patient logged on day.
func (s *DietService) AnalyzeDay(patientID uint, day time.Time) (*DayAnalysis, error) {
	logs, err := s.meals.ListForDay(patientID, day)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(logs))
	for _, entry := range logs {
		items = append(items, entry.Meal)
	}

	return &DayAnalysis{
		Date:      normalizeToDate(day),
		Items:     items,
		Nutrition: s.kb.Summarize(items),
	}, nil
}
