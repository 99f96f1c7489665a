package handler

import (
	"encoding/gob"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	patients *service.PatientService
	meals    *service.MealLogService
	diets    *service.DietService
	reports  *service.ReportService
	tokens   *service.TokenService
	now      func() time.Time
}

// flashMessage 是一次性提示，Category 对应页面上的样式
type flashMessage struct {
	Category string
	Message  string
}

const (
	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
)

func init() {
	// cookie 会话使用 gob 编码，自定义类型需要注册
	gob.Register(flashMessage{})
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, kb *ayurveda.KnowledgeBase, tokens *service.TokenService) *API {
	meals := service.NewMealLogService(db)

	return &API{
		patients: service.NewPatientService(db),
		meals:    meals,
		diets:    service.NewDietService(kb, meals),
		reports:  service.NewReportService(kb),
		tokens:   tokens,
		now:      time.Now,
	}
}

func (a *API) today() time.Time {
	t := a.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(flashMessage{Category: category, Message: message})
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

func popFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		c.Error(err)
	}

	messages := make([]flashMessage, 0, len(raw))
	for _, item := range raw {
		if msg, ok := item.(flashMessage); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["flashes"]; !exists {
		payload["flashes"] = popFlashes(c)
	}
	if _, exists := payload["nowYear"]; !exists {
		payload["nowYear"] = a.now().Year()
	}
	if _, exists := payload["loggedIn"]; !exists {
		_, loggedIn := sessionPatientID(c)
		payload["loggedIn"] = loggedIn
	}

	c.HTML(status, template, payload)
}
