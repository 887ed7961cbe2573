package console

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/models"
)

// normalizePagination 归一化分页参数。
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// ListProducts 获取商品目录（可按分类过滤，分页）
func (h *Handler) ListProducts(c *gin.Context) {
	store := storeParam(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, err := h.CatalogService.Products(c.Request.Context(), store, uint(categoryID))
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	total := int64(len(products))
	start := (page - 1) * pageSize
	if start > len(products) {
		start = len(products)
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)

	response.SuccessWithPage(c, gin.H{"products": products[start:end]}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProduct 获取单个商品详情（含选项与规格）
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}
	product, err := h.CatalogService.Product(c.Request.Context(), storeParam(c), productID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{
		"product":     product,
		"has_options": product.HasOptions(),
		"unit_price":  models.UnitPrice(product, nil),
	})
}

// ListPaymentMethods 获取可用支付方式
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.CatalogService.PaymentMethods(c.Request.Context(), storeParam(c))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, gin.H{"payment_methods": methods})
}
