package service

import (
	"context"
	"strings"

	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

// CheckoutForm 结账表单
// 运费、税费、折扣一概不在本地计算，表单只收集标识与数量。
type CheckoutForm struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	StateID         uint   `json:"state_id"`
	RegionID        uint   `json:"region_id"`
	NearestPoint    string `json:"nearest_point"`
	PaymentMethodID uint   `json:"payment_method_id"`
	Note            string `json:"note"`
	CouponCode      string `json:"coupon_code"`
}

// CheckoutService 结账编排服务
// 新建订单与向已有订单追加共用一份购物车；
// 失败时购物车与表单保持原样以便重试，成功后才清空。
type CheckoutService struct {
	api    platform.API
	cart   *CartService
	orders *OrderService
}

// NewCheckoutService 创建结账编排服务
func NewCheckoutService(api platform.API, cart *CartService, orders *OrderService) *CheckoutService {
	return &CheckoutService{api: api, cart: cart, orders: orders}
}

// ValidateForm 结账前置校验（纯客户端，不发请求）
func ValidateForm(form CheckoutForm) error {
	var missing []string
	if strings.TrimSpace(form.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(form.CustomerEmail) == "" {
		missing = append(missing, "customer_email")
	}
	if strings.TrimSpace(form.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if form.StateID == 0 {
		missing = append(missing, "state_id")
	}
	if form.RegionID == 0 {
		missing = append(missing, "region_id")
	}
	if strings.TrimSpace(form.NearestPoint) == "" {
		missing = append(missing, "nearest_point")
	}
	if form.PaymentMethodID == 0 {
		missing = append(missing, "payment_method_id")
	}
	if len(missing) > 0 {
		return &FieldValidationError{Fields: missing}
	}
	return nil
}

// buildLinesLocked 将购物车行转为订单行请求（调用方需持有 session.mu）
func buildLinesLocked(session *Session) []platform.OrderLineRequest {
	lines := make([]platform.OrderLineRequest, 0, len(session.lines))
	for _, line := range session.lines {
		req := platform.OrderLineRequest{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
		}
		if line.Variant != nil {
			variantID := line.Variant.ID
			req.VariantID = &variantID
		}
		lines = append(lines, req)
	}
	return lines
}

// CreateOrder 以购物车与结账表单创建新订单
// 必填字段缺失或购物车为空时不发起请求；
// 成功后清空购物车，失败则保持现场供用户修正重试。
func (s *CheckoutService) CreateOrder(ctx context.Context, session *Session, form CheckoutForm) (*models.Order, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if err := ValidateForm(form); err != nil {
		return nil, err
	}

	if !session.beginOp(constants.PendingOpPlaceOrder) {
		return nil, ErrOperationInFlight
	}
	defer session.endOp(constants.PendingOpPlaceOrder)

	session.mu.Lock()
	if len(session.lines) == 0 {
		session.mu.Unlock()
		return nil, ErrCartEmpty
	}
	lines := buildLinesLocked(session)
	session.mu.Unlock()

	req := platform.CreateOrderRequest{
		Store:           session.Store,
		CustomerName:    strings.TrimSpace(form.CustomerName),
		CustomerEmail:   strings.TrimSpace(form.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(form.CustomerPhone),
		StateID:         form.StateID,
		RegionID:        form.RegionID,
		NearestPoint:    strings.TrimSpace(form.NearestPoint),
		PaymentMethodID: form.PaymentMethodID,
		Note:            strings.TrimSpace(form.Note),
		CouponCode:      strings.TrimSpace(form.CouponCode),
		Lines:           lines,
	}

	order, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		// 购物车与表单保持原样，用户可修正后重试
		return nil, err
	}

	session.mu.Lock()
	clearLocked(session)
	session.mu.Unlock()

	logger.Infow("order_created",
		"session_id", session.ID,
		"order_id", order.ID,
		"lines", len(lines),
	)
	return order, nil
}

// AppendToOrder 将购物车整体追加到已有订单（单次批量请求）
// 仅 pending / processing 订单可追加；成功后清空购物车并重取订单。
func (s *CheckoutService) AppendToOrder(ctx context.Context, session *Session, orderID uint) (*models.Order, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}

	if !session.beginOp(constants.PendingOpAppendOrder) {
		return nil, ErrOperationInFlight
	}
	defer session.endOp(constants.PendingOpAppendOrder)

	session.mu.Lock()
	if len(session.lines) == 0 {
		session.mu.Unlock()
		return nil, ErrCartEmpty
	}
	lines := buildLinesLocked(session)
	session.mu.Unlock()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.orders.CanEditComposition(order.Status) {
		return nil, ErrOrderNotEditable
	}

	if _, err := s.api.AddOrderProducts(ctx, orderID, lines); err != nil {
		// 追加失败不动购物车
		return nil, err
	}

	session.mu.Lock()
	clearLocked(session)
	session.mu.Unlock()

	if err := s.orders.Refresh(ctx, orderID); err != nil {
		logger.Warnw("order_refresh_after_append_failed", "order_id", orderID, "error", err)
	}
	updated, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	logger.Infow("order_products_appended",
		"session_id", session.ID,
		"order_id", orderID,
		"lines", len(lines),
	)
	return updated, nil
}
