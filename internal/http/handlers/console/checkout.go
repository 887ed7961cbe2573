package console

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/service"
)

// CreateOrder 用当前购物车创建订单
// 必填字段缺失时直接拒绝，不发起平台请求；失败时购物车保持原样。
func (h *Handler) CreateOrder(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	var form service.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	order, err := h.CheckoutService.CreateOrder(c.Request.Context(), session, form)
	if err != nil {
		respondCheckoutCreateError(c, err)
		return
	}

	requestLog(c).Infow("order_created",
		"session_id", session.ID,
		"order_id", order.ID,
		"status", order.Status,
	)
	response.Success(c, gin.H{"order": order})
}

// AppendToOrder 将购物车整体追加到已有订单
// 不论多少行都只发一次批量请求；成功后清空购物车并重取订单。
func (h *Handler) AppendToOrder(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}

	order, err := h.CheckoutService.AppendToOrder(c.Request.Context(), session, orderID)
	if err != nil {
		respondCheckoutAppendError(c, err)
		return
	}

	requestLog(c).Infow("order_appended",
		"session_id", session.ID,
		"order_id", orderID,
	)
	response.Success(c, gin.H{"order": order})
}
