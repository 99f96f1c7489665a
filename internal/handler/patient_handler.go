package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/service"
)

type questionField struct {
	Name    string
	Label   string
	Options []string
}

var questionnaireFields = []questionField{
	{Name: "sleep", Label: "Sleep pattern", Options: []string{"light", "disturbed", "balanced", "deep"}},
	{Name: "skin", Label: "Skin", Options: []string{"dry", "oily", "normal", "moist"}},
	{Name: "digestion", Label: "Digestion", Options: []string{"irregular", "strong", "normal", "slow"}},
	{Name: "appetite", Label: "Appetite", Options: []string{"variable", "strong", "low"}},
	{Name: "body_build", Label: "Body build", Options: []string{"thin", "medium", "heavy"}},
	{Name: "temp_sensitivity", Label: "Temperature sensitivity", Options: []string{"cold", "hot", "cool"}},
	{Name: "mood", Label: "Mood", Options: []string{"anxious", "irritable", "calm"}},
}

var digestiveOverrides = []string{ayurveda.DigestionWeak, ayurveda.DigestionNormal, ayurveda.DigestionStrong}

// ShowDashboard 渲染患者面板：今日用餐与时令推荐
func (a *API) ShowDashboard(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	meals, err := a.meals.ListForDay(patient.ID, a.today())
	if err != nil {
		internalError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":     "Dashboard",
		"patient":   patient,
		"meals":     meals,
		"seasonal":  ayurveda.SeasonalRecommendations(a.now().Month()),
		"mealSlots": ayurveda.LogSlots,
	})
}

// ShowQuestionnaire 渲染体质问卷
func (a *API) ShowQuestionnaire(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "questionnaire.html", gin.H{
		"title":     "Questionnaire",
		"patient":   patient,
		"fields":    questionnaireFields,
		"overrides": digestiveOverrides,
	})
}

// SubmitQuestionnaire 分析问卷、保存结果并跳转到饮食计划
func (a *API) SubmitQuestionnaire(c *gin.Context) {
	var answers ayurveda.Answers
	if err := c.ShouldBind(&answers); err != nil {
		addFlash(c, flashDanger, "Could not read the questionnaire")
		c.Redirect(http.StatusFound, "/questionnaire")
		return
	}

	patient, err := a.patients.SubmitQuestionnaire(currentPatientID(c), answers)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			c.Redirect(http.StatusFound, "/logout")
			return
		}
		if errors.Is(err, service.ErrInvalidDigestiveOverride) {
			addFlash(c, flashDanger, "Agni must be at most 50 characters")
			c.Redirect(http.StatusFound, "/questionnaire")
			return
		}
		internalError(c, err)
		return
	}

	addFlash(c, flashSuccess, fmt.Sprintf("Analysis complete: Prakriti=%s, Agni=%s, Ama=%s",
		patient.Constitution, patient.DigestiveStrength, patient.ToxinPresence))
	c.Redirect(http.StatusFound, "/diet_plan_page")
}

// ShowProfile 渲染只读的个人资料
func (a *API) ShowProfile(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	a.renderHTML(c, http.StatusOK, "profile.html", gin.H{
		"title":     "Profile",
		"patient":   patient,
		"allergies": patient.AllergyList(),
	})
}
