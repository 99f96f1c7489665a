package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/prakriti/internal/ayurveda"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	mu    sync.Mutex
	name  string
	data  gin.H
	calls int
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.data, _ = data.(gin.H)
	r.calls++
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLRender) last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

func (r *stubHTMLInstance) Render(w http.ResponseWriter) error {
	_, err := w.Write([]byte(r.name))
	return err
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type localClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func newLocalClient(t *testing.T, handler http.Handler) *localClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &localClient{handler: handler, jar: jar}
}

func (c *localClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	c.jar.SetCookies(req.URL, w.Result().Cookies())
	return w
}

func (c *localClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, "http://prakriti.test"+path, nil))
}

func (c *localClient) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "http://prakriti.test"+path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *localClient) postJSON(path, token string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "http://prakriti.test"+path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req)
}

func (c *localClient) getJSON(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "http://prakriti.test"+path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.do(req)
}

type testServer struct {
	engine *gin.Engine
	api    *API
	html   *stubHTMLRender
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// newTestServer 组装与生产路由相同的路径，模板由 stub 替代
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kb, err := ayurveda.DefaultKnowledge()
	if err != nil {
		t.Fatalf("load knowledge: %v", err)
	}

	api := NewAPI(setupHandlerTestDB(t), kb, service.NewTokenService("test-secret", time.Hour))
	html := &stubHTMLRender{}

	r := gin.New()
	r.HTMLRender = html
	r.Use(RequestLogger())
	r.Use(sessions.Sessions("test_session", NewSessionStore("test-secret")))

	r.GET("/", api.Index)
	r.GET("/register", api.ShowRegisterPage)
	r.POST("/register", api.Register)
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)
	r.GET("/guide", api.ShowGuide)
	r.POST("/api/ml/suggest", api.Suggest)

	pages := r.Group("")
	pages.Use(api.SessionRequired())
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

	r.POST("/api/auth/register", api.APIRegister)
	r.POST("/api/auth/login", api.APILogin)
	authed := r.Group("/api")
	authed.Use(api.BearerRequired())
	authed.GET("/me", api.APIMe)
	authed.POST("/questionnaire", api.APIQuestionnaire)
	authed.GET("/plan", api.APIPlan)
	authed.GET("/meals", api.APIListMeals)
	authed.POST("/meals", api.APICreateMeal)
	authed.POST("/meals/eaten", api.APIMarkEaten)

	return &testServer{engine: r, api: api, html: html}
}

// registerAndLogin 通过表单注册并登录，返回带会话的客户端
func (s *testServer) registerAndLogin(t *testing.T, email string) *localClient {
	t.Helper()
	client := newLocalClient(t, s.engine)

	resp := client.postForm("/register", url.Values{
		"name":     {"Asha"},
		"age":      {"34"},
		"email":    {email},
		"password": {"secret"},
		"allergy":  {"peanut"},
	})
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/login" {
		t.Fatalf("register: unexpected response %d %q", resp.Code, resp.Header().Get("Location"))
	}

	// 消费注册成功的提示
	client.get("/login")

	resp = client.postForm("/login", url.Values{"email": {email}, "password": {"secret"}})
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/dashboard" {
		t.Fatalf("login: unexpected response %d %q", resp.Code, resp.Header().Get("Location"))
	}

	client.get("/dashboard")
	if _, data := s.html.last(); len(flashesOf(t, data)) != 1 || flashesOf(t, data)[0].Message != "Welcome back!" {
		t.Fatalf("expected welcome flash, got %+v", data["flashes"])
	}
	return client
}

func flashesOf(t *testing.T, data gin.H) []flashMessage {
	t.Helper()
	flashes, _ := data["flashes"].([]flashMessage)
	return flashes
}
