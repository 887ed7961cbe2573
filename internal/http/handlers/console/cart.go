package console

import (
	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/models"
)

// AddCartLineRequest 添加购物车行请求
// 带选项的商品必须先完成规格解析并携带 variant_id。
type AddCartLineRequest struct {
	ProductID  uint              `json:"product_id" binding:"required"`
	VariantID  uint              `json:"variant_id"`
	Selections map[string]string `json:"selections"`
}

// AdjustCartLineRequest 调整购物车行数量请求
type AdjustCartLineRequest struct {
	Index int `json:"index"`
	Delta int `json:"delta" binding:"required"`
}

// GetCart 获取购物车内容与合计
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"lines": h.CartService.Lines(session),
		"total": h.CartService.Total(session),
	})
}

// AddCartLine 添加商品到购物车
// 相同 (product_id, variant_id) 的行会合并数量，不会产生重复行。
func (h *Handler) AddCartLine(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	product, err := h.CatalogService.Product(c.Request.Context(), session.Store, req.ProductID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	var variant *models.Variant
	if req.VariantID != 0 {
		for i := range product.Variants {
			if product.Variants[i].ID == req.VariantID {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
			return
		}
	}

	if err := h.CartService.Add(session, product, variant, req.Selections); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"lines": h.CartService.Lines(session),
		"total": h.CartService.Total(session),
	})
}

// AdjustCartLine 按增量调整行数量
// 数量降到 0 时整行移除。
func (h *Handler) AdjustCartLine(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	var req AdjustCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}
	if err := h.CartService.AdjustQuantity(session, req.Index, req.Delta); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"lines": h.CartService.Lines(session),
		"total": h.CartService.Total(session),
	})
}

// RemoveCartLine 删除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	index, ok := paramInt(c, "index")
	if !ok {
		return
	}
	if err := h.CartService.Remove(session, index); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"lines": h.CartService.Lines(session),
		"total": h.CartService.Total(session),
	})
}
