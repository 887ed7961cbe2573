package console

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
)

// VariantQR 输出规格标签二维码PNG
// 用于门店打印货架标签，内容优先取平台下发的二维码串。
func (h *Handler) VariantQR(c *gin.Context) {
	variantID, ok := paramUint(c, "variant_id")
	if !ok {
		return
	}
	variant, err := h.CatalogService.Variant(c.Request.Context(), storeParam(c), variantID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	png, err := h.QRGenerator.VariantLabel(variant)
	if err != nil {
		respondError(c, response.CodeInternal, "error.qr_render_failed", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
