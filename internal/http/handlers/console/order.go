package console

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/models"
)

// TransitionRequest 订单状态流转请求
type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
}

// UpdateOrderProductRequest 订单行修改请求
type UpdateOrderProductRequest struct {
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// UpdateDeliveryRequest 配送信息修改请求
type UpdateDeliveryRequest struct {
	StateID      uint   `json:"state_id" binding:"required"`
	RegionID     uint   `json:"region_id"`
	NearestPoint string `json:"nearest_point"`
}

// UpdateNoteRequest 订单备注修改请求
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// GetOrder 获取订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	order, err := h.OrderService.Get(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{
		"order":            order,
		"next_transitions": h.OrderService.NextTransitions(order.Status),
		"editable":         h.OrderService.CanEditComposition(order.Status),
	})
}

// GetOrderLogs 获取订单审计日志
func (h *Handler) GetOrderLogs(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	logs, err := h.OrderService.Logs(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"logs": logs})
}

// TransitionOrder 执行订单状态流转
// 不合法的流转在本地直接拒绝；成功后返回重取的订单。
func (h *Handler) TransitionOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	order, err := h.OrderService.Transition(c.Request.Context(), orderID, req.Target)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	requestLog(c).Infow("order_transitioned",
		"order_id", orderID,
		"target", req.Target,
	)
	response.Success(c, gin.H{
		"order":            order,
		"next_transitions": h.OrderService.NextTransitions(order.Status),
		"editable":         h.OrderService.CanEditComposition(order.Status),
	})
}

// UpdateOrderProduct 修改订单行（数量或规格）
func (h *Handler) UpdateOrderProduct(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	orderProductID, ok := paramUint(c, "order_product_id")
	if !ok {
		return
	}
	var req UpdateOrderProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	updated, err := h.OrderService.UpdateProduct(c.Request.Context(), orderID, orderProductID, req.VariantID, req.Quantity)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order_product": updated})
}

// RemoveOrderProduct 删除订单行
func (h *Handler) RemoveOrderProduct(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	orderProductID, ok := paramUint(c, "order_product_id")
	if !ok {
		return
	}
	if err := h.OrderService.RemoveProduct(c.Request.Context(), orderID, orderProductID); err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// UpdateDelivery 修改订单配送信息
func (h *Handler) UpdateDelivery(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	var req UpdateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	order, err := h.OrderService.UpdateDelivery(c.Request.Context(), orderID, models.Delivery{
		StateID:      req.StateID,
		RegionID:     req.RegionID,
		NearestPoint: req.NearestPoint,
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateNote 修改订单备注
func (h *Handler) UpdateNote(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
	if !ok {
		return
	}
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	order, err := h.OrderService.UpdateNote(c.Request.Context(), orderID, req.Note)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, gin.H{"order": order})
}
