package platform

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/models"
)

// OrderLineRequest 订单行请求（仅标识与数量；计价由平台完成）
type OrderLineRequest struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Store           string             `json:"store"`
	CustomerName    string             `json:"customer_name"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerPhone   string             `json:"customer_phone"`
	StateID         uint               `json:"state_id"`
	RegionID        uint               `json:"region_id"`
	NearestPoint    string             `json:"nearest_point"`
	PaymentMethodID uint               `json:"payment_method_id"`
	Note            string             `json:"note,omitempty"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	Lines           []OrderLineRequest `json:"lines"`
}

// UpdateOrderProductRequest 修改订单行请求
type UpdateOrderProductRequest struct {
	VariantID *uint `json:"variant_id,omitempty"`
	Quantity  int   `json:"quantity"`
}

// CouponValidation 优惠券校验结果
type CouponValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Products 拉取店铺商品（含选项与规格）
func (c *Client) Products(ctx context.Context, store string, categoryID uint) ([]models.Product, error) {
	path := fmt.Sprintf("/api/v1/stores/%s/products", url.PathEscape(strings.TrimSpace(store)))
	if categoryID > 0 {
		path = fmt.Sprintf("%s?category_id=%d", path, categoryID)
	}
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// PaymentMethods 读取店铺启用的支付方式
func (c *Client) PaymentMethods(ctx context.Context, store string) ([]models.PaymentMethod, error) {
	path := fmt.Sprintf("/api/v1/stores/%s/payment-methods", url.PathEscape(strings.TrimSpace(store)))
	var methods []models.PaymentMethod
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// FindVariant 按完整选项组合查找规格；无匹配时返回 (nil, nil)
func (c *Client) FindVariant(ctx context.Context, productID uint, selections map[string]string) (*models.Variant, error) {
	body := map[string]interface{}{"selections": selections}
	var variant *models.Variant
	path := fmt.Sprintf("/api/v1/products/%d/variants/find", productID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// ValidateCoupon 校验优惠码（只读，可重试）
func (c *Client) ValidateCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) (*CouponValidation, error) {
	body := map[string]interface{}{
		"code":        code,
		"order_total": orderTotal,
	}
	if orderID > 0 {
		body["order_id"] = orderID
	}
	var result CouponValidation
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/coupons/validate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ApplyCoupon 将优惠券提交到订单，返回平台计算的核销数据
func (c *Client) ApplyCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) ([]models.Redemption, error) {
	body := map[string]interface{}{
		"code":        code,
		"order_total": orderTotal,
		"order_id":    orderID,
	}
	var redemptions []models.Redemption
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/coupons/apply", body, &redemptions); err != nil {
		return nil, err
	}
	return redemptions, nil
}

// CreateOrder 创建订单
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AddOrderProducts 向已有订单批量追加商品（单次请求）
func (c *Client) AddOrderProducts(ctx context.Context, orderID uint, lines []OrderLineRequest) (*models.Order, error) {
	body := map[string]interface{}{"lines": lines}
	var order models.Order
	path := fmt.Sprintf("/api/v1/orders/%d/products", orderID)
	if err := c.doJSON(ctx, http.MethodPost, path, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderProduct 修改订单行的规格或数量
func (c *Client) UpdateOrderProduct(ctx context.Context, orderID, orderProductID uint, req UpdateOrderProductRequest) (*models.OrderProduct, error) {
	var line models.OrderProduct
	path := fmt.Sprintf("/api/v1/orders/%d/products/%d", orderID, orderProductID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &line); err != nil {
		return nil, err
	}
	return &line, nil
}

// RemoveOrderProduct 删除订单行
func (c *Client) RemoveOrderProduct(ctx context.Context, orderID, orderProductID uint) error {
	path := fmt.Sprintf("/api/v1/orders/%d/products/%d", orderID, orderProductID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// UpdateDeliveryAddress 更新配送地址
func (c *Client) UpdateDeliveryAddress(ctx context.Context, orderID uint, delivery models.Delivery) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/v1/orders/%d/delivery", orderID)
	if err := c.doJSON(ctx, http.MethodPut, path, delivery, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderNote 更新订单备注
func (c *Client) UpdateOrderNote(ctx context.Context, orderID uint, note string) (*models.Order, error) {
	body := map[string]interface{}{"note": note}
	var order models.Order
	path := fmt.Sprintf("/api/v1/orders/%d/note", orderID)
	if err := c.doJSON(ctx, http.MethodPut, path, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// statusEndpoints 目标状态对应的专用接口
// 每个状态迁移有独立的平台副作用（如取消回补库存），因此各自一个接口。
var statusEndpoints = map[string]string{
	constants.OrderStatusProcessing: "process",
	constants.OrderStatusShipped:    "ship",
	constants.OrderStatusDelivered:  "deliver",
	constants.OrderStatusCancelled:  "cancel",
}

// TransitionStatus 触发订单状态迁移
// 优先使用目标状态的专用接口；无专用接口时才退回通用状态更新。
func (c *Client) TransitionStatus(ctx context.Context, orderID uint, target string) (*models.Order, error) {
	var order models.Order
	if action, ok := statusEndpoints[target]; ok {
		path := fmt.Sprintf("/api/v1/orders/%d/%s", orderID, action)
		if err := c.doJSON(ctx, http.MethodPost, path, nil, &order); err != nil {
			return nil, err
		}
		return &order, nil
	}
	body := map[string]interface{}{"status": target}
	path := fmt.Sprintf("/api/v1/orders/%d/status", orderID)
	if err := c.doJSON(ctx, http.MethodPatch, path, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Order 拉取订单详情
func (c *Client) Order(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/v1/orders/%d", orderID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderLogs 拉取订单审计日志
func (c *Client) OrderLogs(ctx context.Context, orderID uint) ([]models.OrderLog, error) {
	var logs []models.OrderLog
	path := fmt.Sprintf("/api/v1/orders/%d/logs", orderID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
