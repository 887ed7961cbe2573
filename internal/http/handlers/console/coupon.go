package console

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
)

// CouponInputRequest 优惠码输入请求（每次按键调用一次）
type CouponInputRequest struct {
	Code string `json:"code"`
}

// ApplyCouponRequest 应用优惠券请求
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CouponInput 记录优惠码输入并安排防抖校验
// 校验在静默窗口结束后异步执行，结果通过状态接口轮询。
func (h *Handler) CouponInput(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	var req CouponInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	total := h.CartService.Total(session)
	if err := h.CouponService.ValidateAsync(session, req.Code, total, session.OrderID); err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, h.CouponService.ValidationState(session))
}

// GetCouponState 获取优惠码校验状态快照
func (h *Handler) GetCouponState(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	response.Success(c, h.CouponService.ValidationState(session))
}

// ApplyCoupon 将优惠券应用到订单（每单仅一次）
func (h *Handler) ApplyCoupon(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	order, err := h.OrderService.Get(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	redemptions, err := h.CouponService.Apply(c.Request.Context(), orderID, req.Code, order.Pricing.Total)
	if err != nil {
		respondCouponError(c, err)
		return
	}

	fresh, err := h.OrderService.Get(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":       fresh,
		"redemptions": redemptions,
	})
}
