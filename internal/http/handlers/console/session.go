package console

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
)

// CreateSessionRequest 创建结账会话请求
// order_id 非零时表示向已有订单追加商品的会话。
type CreateSessionRequest struct {
	Store   string `json:"store"`
	OrderID uint   `json:"order_id"`
}

// CreateSession 创建结账会话
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}
	if req.Store == "" {
		req.Store = "default"
	}
	session := h.SessionService.Create(req.Store, req.OrderID)
	requestLog(c).Infow("session_created",
		"session_id", session.ID,
		"store", session.Store,
		"order_id", session.OrderID,
	)
	response.Success(c, gin.H{
		"session_id": session.ID,
		"store":      session.Store,
		"order_id":   session.OrderID,
	})
}

// GetSessionState 获取会话状态快照
// 包含购物车、进行中的异步操作与优惠码校验状态，供界面整体渲染。
func (h *Handler) GetSessionState(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"session_id":  session.ID,
		"store":       session.Store,
		"order_id":    session.OrderID,
		"lines":       h.CartService.Lines(session),
		"total":       h.CartService.Total(session),
		"pending_ops": session.PendingOps(),
		"coupon":      h.CouponService.ValidationState(session),
	})
}

// CloseSession 关闭会话并丢弃购物车
func (h *Handler) CloseSession(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	h.SessionService.Close(session.ID)
	response.Success(c, gin.H{"closed": true})
}
