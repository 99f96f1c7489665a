package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// ShowDietPlan 渲染今日饮食计划；未完成问卷时引导填写
func (a *API) ShowDietPlan(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	view, err := a.diets.PlanFor(*patient)
	if err != nil {
		if errors.Is(err, service.ErrProfileMissing) {
			addFlash(c, flashWarning, "Fill the questionnaire first to get a tailored plan")
			c.Redirect(http.StatusFound, "/questionnaire")
			return
		}
		internalError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "diet_plan_page.html", gin.H{
		"title":   "Diet Plan",
		"patient": patient,
		"view":    view,
	})
}

// ShowNutritionAnalysis 汇总今日已记录用餐的营养
func (a *API) ShowNutritionAnalysis(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	analysis, err := a.diets.AnalyzeDay(patient.ID, a.today())
	if err != nil {
		internalError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "nutrition_analysis.html", gin.H{
		"title":    "Nutrition Analysis",
		"patient":  patient,
		"analysis": analysis,
	})
}

// ExportDiet 以 PDF 附件导出今日用餐
func (a *API) ExportDiet(c *gin.Context) {
	patient, ok := a.loadPatient(c)
	if !ok {
		return
	}

	today := a.today()
	meals, err := a.meals.ListForDay(patient.ID, today)
	if err != nil {
		internalError(c, err)
		return
	}

	report, err := a.reports.BuildDailyReport(*patient, today, meals)
	if err != nil {
		if errors.Is(err, service.ErrNoMealsLogged) {
			addFlash(c, flashWarning, "No meals logged for today!")
			c.Redirect(http.StatusFound, "/diet_plan_page")
			return
		}
		internalError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := a.reports.WritePDF(&buf, report); err != nil {
		internalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.FileName(today)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ShowGuide 渲染饮食指南
func (a *API) ShowGuide(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "guide.html", gin.H{
		"title":   "Guide",
		"content": renderMarkdown(ayurveda.Guide()),
	})
}

// Suggest 返回固定的推荐列表，请求体被忽略
func (a *API) Suggest(c *gin.Context) {
	c.JSON(http.StatusOK, service.SuggestMeals())
}

func renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}
