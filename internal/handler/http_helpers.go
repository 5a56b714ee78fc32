package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/habitledger/internal/locale"
)

// respondError 按请求语言输出错误文本，code 供客户端做稳定判断
func respondError(c *gin.Context, status int, key locale.MessageKey) {
	c.JSON(status, gin.H{
		"error": locale.Message(requestLocale(c).Language, key),
		"code":  key,
	})
}

func respondSuccess(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, locale.MsgInvalidPayload)
		return false
	}
	return true
}

// pathID 读取字符串 ID 参数，空值视为非法
func pathID(c *gin.Context, key string) (string, bool) {
	id := strings.TrimSpace(c.Param(key))
	return id, id != ""
}

func parseLimitQuery(c *gin.Context, fallback int) int {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func parseBoolQuery(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
