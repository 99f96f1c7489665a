package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prakriti/internal/logger"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// internalError 记录存储层错误并返回通用 500 响应
func internalError(c *gin.Context, err error) {
	logger.Error("request failed", "error", err, "path", c.FullPath(), "request_id", c.GetString(requestIDContextKey))
	if strings.HasPrefix(c.FullPath(), "/api/") {
		respondError(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
}

func parseUintSlice(values []string) []uint {
	ids := make([]uint, 0, len(values))
	for _, raw := range values {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		parsed, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil || parsed == 0 {
			continue
		}
		ids = append(ids, uint(parsed))
	}
	return ids
}

// eatenFormIDs 收集 eaten_<id> 形式的勾选项以及重复的 ids 字段
func eatenFormIDs(c *gin.Context) []uint {
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}

	raw := make([]string, 0, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		if id, ok := strings.CutPrefix(key, "eaten_"); ok {
			raw = append(raw, id)
		}
	}
	raw = append(raw, c.Request.PostForm["ids"]...)
	return parseUintSlice(raw)
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc)
}
