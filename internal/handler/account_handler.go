package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/db"
	"github.com/prakriti/internal/service"
)

// Index 根据登录状态跳转到面板或登录页
func (a *API) Index(c *gin.Context) {
	if _, ok := sessionPatientID(c); ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// ShowRegisterPage 渲染注册页面
func (a *API) ShowRegisterPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "register.html", gin.H{"title": "Register"})
}

// Register 处理注册表单，校验失败时提示并返回注册页
func (a *API) Register(c *gin.Context) {
	var input service.RegistrationInput
	if err := c.ShouldBind(&input); err != nil {
		addFlash(c, flashDanger, "Name, email and password are required")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if _, err := a.patients.Register(input); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationIncomplete):
			addFlash(c, flashDanger, "Name, email and password are required")
		case errors.Is(err, service.ErrEmailTaken):
			addFlash(c, flashDanger, "Email already registered")
		case errors.Is(err, service.ErrInvalidAge):
			addFlash(c, flashDanger, "Age must be a whole number")
		default:
			internalError(c, err)
			return
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	addFlash(c, flashSuccess, "Registration successful. Please login")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{"title": "Login"})
}

// Login 校验邮箱与密码并建立会话
func (a *API) Login(c *gin.Context) {
	patient, err := a.patients.Authenticate(c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			addFlash(c, flashDanger, "Invalid credentials")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		internalError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionPatientKey, patient.ID)
	session.AddFlash(flashMessage{Category: flashSuccess, Message: "Welcome back!"})
	if err := session.Save(); err != nil {
		internalError(c, fmt.Errorf("save session: %w", err))
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout 清除会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.AddFlash(flashMessage{Category: flashInfo, Message: "Logged out"})
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// loadPatient 读取当前登录的患者；账号已不存在时清除会话并跳转登录
func (a *API) loadPatient(c *gin.Context) (*db.Patient, bool) {
	patient, err := a.patients.Get(currentPatientID(c))
	if err != nil {
		if errors.Is(err, service.ErrPatientNotFound) {
			session := sessions.Default(c)
			session.Clear()
			if saveErr := session.Save(); saveErr != nil {
				c.Error(saveErr)
			}
			c.Redirect(http.StatusFound, "/login")
			return nil, false
		}
		internalError(c, err)
		return nil, false
	}
	return patient, true
}
