package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/service"
)

const mealLogWindowDays = 7

// LogMeal 记录一餐并返回面板
func (a *API) LogMeal(c *gin.Context) {
	entry, err := a.meals.Log(service.MealLogInput{
		PatientID: currentPatientID(c),
		Meal:      c.PostForm("meal_name"),
		MealType:  c.PostForm("meal_type"),
		Date:      a.now(),
	})
	if err != nil {
		if !errors.Is(err, service.ErrMealNameMissing) {
			internalError(c, err)
			return
		}
		addFlash(c, flashWarning, "Enter a meal name to log it")
	} else {
		addFlash(c, flashSuccess, fmt.Sprintf("Saved meal: %s", entry.Meal))
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

// UpdateMealLog 将勾选的记录标记为已食用
func (a *API) UpdateMealLog(c *gin.Context) {
	if _, err := a.meals.MarkEaten(currentPatientID(c), eatenFormIDs(c)); err != nil {
		internalError(c, err)
		return
	}
	addFlash(c, flashSuccess, "Meal log updated")
	c.Redirect(http.StatusFound, "/meal_log")
}

// ShowMealLog 渲染最近 7 天的用餐记录
func (a *API) ShowMealLog(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	meals, err := a.meals.ListRecent(patient.ID, mealLogWindowDays)
	if err != nil {
		internalError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "meal_log.html", gin.H{
		"title":   "Meal Log",
		"patient": patient,
		"meals":   meals,
	})
}
