package router

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/config"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/handler"
	"github.com/prakriti/internal/service"
)

const sessionName = "prakriti_session"

// templateFuncs 模板中使用的辅助函数
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"amount": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"join": strings.Join,
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, kb *ayurveda.KnowledgeBase) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger())

	// 配置会话中间件
	r.Use(sessions.Sessions(sessionName, handler.NewSessionStore(cfg.SessionSecret)))

	r.SetFuncMap(templateFuncs())
	if cfg.TemplateGlob != "" {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}
	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	api := handler.NewAPI(db.DB, kb, service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.GET("/", api.Index)
	r.GET("/register", api.ShowRegisterPage)
	r.POST("/register", api.Register)
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)
	r.GET("/guide", api.ShowGuide)
	r.POST("/api/ml/suggest", api.Suggest)

	// 需要登录的页面
	pages := r.Group("")
	pages.Use(api.SessionRequired())
	{
		pages.GET("/dashboard", api.ShowDashboard)
		pages.GET("/questionnaire", api.ShowQuestionnaire)
		pages.POST("/questionnaire", api.SubmitQuestionnaire)
		pages.GET("/diet_plan_page", api.ShowDietPlan)
		pages.POST("/log_meal", api.LogMeal)
		pages.POST("/update_meal_log", api.UpdateMealLog)
		pages.GET("/meal_log", api.ShowMealLog)
		pages.GET("/nutrition_analysis", api.ShowNutritionAnalysis)
		pages.GET("/export_diet", api.ExportDiet)
		pages.GET("/profile", api.ShowProfile)
	}

	// JSON 接口，使用 Bearer 令牌
	jsonAPI := r.Group("/api")
	{
		jsonAPI.POST("/auth/register", api.APIRegister)
		jsonAPI.POST("/auth/login", api.APILogin)

		authed := jsonAPI.Group("")
		authed.Use(api.BearerRequired())
		{
			authed.GET("/me", api.APIMe)
			authed.POST("/questionnaire", api.APIQuestionnaire)
			authed.GET("/plan", api.APIPlan)
			authed.GET("/meals", api.APIListMeals)
			authed.POST("/meals", api.APICreateMeal)
			authed.POST("/meals/eaten", api.APIMarkEaten)
		}
	}

	return r
}
