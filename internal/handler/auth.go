package handler

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const (
	sessionPatientKey = "patient_id"
	patientContextKey = "patientID"
)

const sessionMaxAge = 7 * 24 * 60 * 60

// NewSessionStore 创建 cookie 会话存储。
// 库默认的 Secure + SameSite=None 在纯 HTTP 下会被浏览器丢弃，这里显式改为 Lax 且不强制 Secure
func NewSessionStore(secret string) cookie.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{Path: "/", MaxAge: sessionMaxAge, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return store
}

func sessionPatientID(c *gin.Context) (uint, bool) {
	switch v := sessions.Default(c).Get(sessionPatientKey).(type) {
	case uint:
		return v, v != 0
	case int:
		return uint(v), v > 0
	default:
		return 0, false
	}
}

// currentPatientID 返回中间件写入上下文的患者 ID
func currentPatientID(c *gin.Context) uint {
	if id, ok := c.Get(patientContextKey); ok {
		if patientID, ok := id.(uint); ok {
			return patientID
		}
	}
	return 0
}

// SessionRequired 要求页面请求带有已登录的会话，否则跳转到登录页
func (a *API) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID, ok := sessionPatientID(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(patientContextKey, patientID)
		c.Next()
	}
}

// BearerRequired 校验 Authorization: Bearer 令牌，失败返回 401
func (a *API) BearerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			respondError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		patientID, err := a.tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		c.Set(patientContextKey, patientID)
		c.Next()
	}
}
