package console

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/service"
)

// ResolveVariantRequest 规格解析请求
type ResolveVariantRequest struct {
	ProductID  uint              `json:"product_id" binding:"required"`
	Selections map[string]string `json:"selections"`
}

// ResolveVariant 根据已选选项解析规格
// 选项不完整时不发起平台查询；被后续选择替代的结果作废。
func (h *Handler) ResolveVariant(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	var req ResolveVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.request_invalid", err)
		return
	}

	product, err := h.CatalogService.Product(c.Request.Context(), session.Store, req.ProductID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	variant, err := h.VariantService.Resolve(c.Request.Context(), session, product, req.Selections)
	if err != nil {
		if errors.Is(err, service.ErrResolveSuperseded) {
			response.Success(c, gin.H{"superseded": true})
			return
		}
		respondVariantResolveError(c, err)
		return
	}

	response.Success(c, gin.H{
		"variant":    variant,
		"unit_price": models.UnitPrice(product, variant),
		"can_add":    service.CanAddToCart(product, req.Selections),
		"superseded": false,
	})
}

// CloseVariantDialog 选择对话框关闭时清除该商品的解析缓存
// 库存与价格只在对话框存续期内可信，重开对话框必须重新解析。
func (h *Handler) CloseVariantDialog(c *gin.Context) {
	session, ok := h.getSession(c)
	if !ok {
		return
	}
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	h.VariantService.InvalidateResolved(session, productID)
	response.Success(c, nil)
}
