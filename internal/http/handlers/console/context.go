package console

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/service"
)

// getSession 从路径参数解析结账会话，失败时直接写出错误响应。
func (h *Handler) getSession(c *gin.Context) (*service.Session, bool) {
	id := c.Param("session_id")
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.session_not_found", nil)
		return nil, false
	}
	session, err := h.SessionService.Get(id)
	if err != nil {
		respondError(c, response.CodeNotFound, "error.session_not_found", nil)
		return nil, false
	}
	return session, true
}

// paramUint 解析路径上的数字参数
func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.request_invalid", nil)
		return 0, false
	}
	return uint(value), true
}

// paramInt 解析路径上的整数参数（允许为 0）
func paramInt(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		respondError(c, response.CodeBadRequest, "error.request_invalid", nil)
		return 0, false
	}
	return value, true
}

// storeParam 读取门店标识，缺省使用 default
func storeParam(c *gin.Context) string {
	store := c.Query("store")
	if store == "" {
		store = "default"
	}
	return store
}
