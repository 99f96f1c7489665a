package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type mealRequest struct {
	Meal     string `json:"meal"`
	MealType string `json:"meal_type"`
	Date     string `json:"date"`
}

type markEatenRequest struct {
	IDs []uint `json:"ids"`
}

type patientResponse struct {
	ID                uint     `json:"id"`
	Name              string   `json:"name"`
	Age               *int     `json:"age"`
	Email             string   `json:"email"`
	Constitution      string   `json:"constitution"`
	DigestiveStrength string   `json:"digestive_strength"`
	ToxinPresence     string   `json:"toxin_presence"`
	Allergies         []string `json:"allergies"`
}

type mealResponse struct {
	ID       uint   `json:"id"`
	Date     string `json:"date"`
	Meal     string `json:"meal"`
	MealType string `json:"meal_type"`
	Eaten    bool   `json:"eaten"`
}

func newPatientResponse(p *db.Patient) patientResponse {
	return patientResponse{
		ID:                p.ID,
		Name:              p.Name,
		Age:               p.Age,
		Email:             p.Email,
		Constitution:      p.Constitution,
		DigestiveStrength: p.DigestiveStrength,
		ToxinPresence:     p.ToxinPresence,
		Allergies:         p.AllergyList(),
	}
}

func newMealResponse(m db.MealLog) mealResponse {
	return mealResponse{
		ID:       m.ID,
		Date:     m.Date.Format("2006-01-02"),
		Meal:     m.Meal,
		MealType: m.MealType,
		Eaten:    m.Eaten,
	}
}

// APIRegister 通过 JSON 注册患者
func (a *API) APIRegister(c *gin.Context) {
	var input service.RegistrationInput
	if !bindJSON(c, &input, "invalid registration payload") {
		return
	}

	patient, err := a.patients.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationIncomplete), errors.Is(err, service.ErrInvalidAge):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, http.StatusConflict, err.Error())
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, newPatientResponse(patient))
}

// APILogin 校验凭据并签发访问令牌
func (a *API) APILogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}

	patient, err := a.patients.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	token, err := a.tokens.Issue(patient.ID)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": token,
		"token_type":   "bearer",
	})
}

// apiPatient 读取令牌对应的患者
func (a *API) apiPatient(c *gin.Context) (*db.Patient, bool) {
	patient, err := a.patients.Get(currentPatientID(c))
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			respondError(c, http.StatusUnauthorized, "account no longer exists")
			return nil, false
		}
		internalError(c, err)
		return nil, false
	}
	return patient, true
}

// APIMe 返回当前患者资料
func (a *API) APIMe(c *gin.Context) {
	patient, ok := a.apiPatient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newPatientResponse(patient))
}

// APIQuestionnaire 分析问卷并返回体质结果
func (a *API) APIQuestionnaire(c *gin.Context) {
	var answers ayurveda.Answers
	if !bindJSON(c, &answers, "invalid questionnaire payload") {
		return
	}

	patient, err := a.patients.SubmitQuestionnaire(currentPatientID(c), answers)
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			respondError(c, http.StatusUnauthorized, "account no longer exists")
			return
		}
		if errors.Is(err, service.ErrInvalidDigestiveOverride) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, service.ProfileOf(*patient))
}

// APIPlan 返回今日饮食计划
func (a *API) APIPlan(c *gin.Context) {
	patient, ok := a.apiPatient(c)
	if !ok {
		return
	}

	view, err := a.diets.PlanFor(*patient)
	if err != nil {
		if errors.Is(err, service.ErrProfileMissing) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// APIListMeals 返回最近 days 天（默认 7）的用餐记录
func (a *API) APIListMeals(c *gin.Context) {
	days := mealLogWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(c, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	logs, err := a.meals.ListRecent(currentPatientID(c), days)
	if err != nil {
		internalError(c, err)
		return
	}

	items := make([]mealResponse, 0, len(logs))
	for _, entry := range logs {
		items = append(items, newMealResponse(entry))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// APICreateMeal 记录一餐
func (a *API) APICreateMeal(c *gin.Context) {
	var req mealRequest
	if !bindJSON(c, &req, "invalid meal payload") {
		return
	}

	date := a.now()
	if req.Date != "" {
		parsed, err := parseDay(req.Date, date.Location())
		if err != nil {
			respondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	entry, err := a.meals.Log(service.MealLogInput{
		PatientID: currentPatientID(c),
		Meal:      req.Meal,
		MealType:  req.MealType,
		Date:      date,
	})
	if err != nil {
		if errors.Is(err, service.ErrMealNameMissing) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newMealResponse(*entry))
}

// APIMarkEaten 标记用餐为已食用，返回实际更新的条数
func (a *API) APIMarkEaten(c *gin.Context) {
	var req markEatenRequest
	if !bindJSON(c, &req, "invalid payload") {
		return
	}

	updated, err := a.meals.MarkEaten(currentPatientID(c), req.IDs)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
