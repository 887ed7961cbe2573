package service

import (
	"context"
	"strings"
	"time"

	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

const (
	defaultCouponDebounce  = 500 * time.Millisecond
	defaultCouponMinLength = 2
)

// CouponService 优惠券服务
// Validate 为只读校验：输入静默一段时间后才发起，且只认最新一代的结果；
// Apply 为写操作：提交后必须失效订单缓存，折后价一律以平台重新给出的为准。
type CouponService struct {
	api      platform.API
	orders   *OrderService
	debounce time.Duration
	minLen   int
}

// NewCouponService 创建优惠券服务
func NewCouponService(api platform.API, orders *OrderService, debounceMS, minCodeLength int) *CouponService {
	debounce := defaultCouponDebounce
	if debounceMS > 0 {
		debounce = time.Duration(debounceMS) * time.Millisecond
	}
	minLen := defaultCouponMinLength
	if minCodeLength > 0 {
		minLen = minCodeLength
	}
	return &CouponService{
		api:      api,
		orders:   orders,
		debounce: debounce,
		minLen:   minLen,
	}
}

// CouponValidationState 优惠码校验状态快照
type CouponValidationState struct {
	Code       string `json:"code"`
	Validating bool   `json:"validating"`
	Checked    bool   `json:"checked"`
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
}

// stopCouponTimerLocked 停止未触发的校验（调用方需持有 mu）
func (s *Session) stopCouponTimerLocked() {
	if s.coupon.timer != nil {
		s.coupon.timer.Stop()
		s.coupon.timer = nil
	}
}

// ValidateAsync 记录优惠码输入并安排防抖校验
// 每次输入都会取消上一次未触发的校验并递增代号；
// 短于最小长度的输入只清空状态，不会产生网络请求。
func (c *CouponService) ValidateAsync(session *Session, code string, orderTotal models.Money, orderID uint) error {
	if session == nil {
		return ErrSessionNotFound
	}
	trimmed := strings.TrimSpace(code)

	session.mu.Lock()
	defer session.mu.Unlock()

	session.stopCouponTimerLocked()
	session.coupon.gen++
	gen := session.coupon.gen
	session.coupon.code = trimmed
	session.touch()

	if len(trimmed) < c.minLen {
		session.coupon.validating = false
		session.coupon.checked = false
		session.coupon.valid = false
		session.coupon.message = ""
		delete(session.pendingOps, constants.PendingOpValidateCoupon)
		if trimmed == "" {
			return nil
		}
		return ErrCouponCodeTooShort
	}

	session.coupon.validating = true
	session.coupon.checked = false
	session.coupon.timer = time.AfterFunc(c.debounce, func() {
		c.runValidation(session, gen, trimmed, orderTotal, orderID)
	})
	return nil
}

// runValidation 防抖窗口结束后的实际校验
// 总额在触发时刻重算：防抖窗口内的购物车变动必须反映进校验请求，
// 否则平台按过期总额判定门槛型优惠的资格。绑定已有订单的会话以
// 订单总额为准，沿用调用方传入的值。
func (c *CouponService) runValidation(session *Session, gen uint64, code string, orderTotal models.Money, orderID uint) {
	session.mu.Lock()
	if gen != session.coupon.gen {
		session.mu.Unlock()
		return
	}
	total := orderTotal
	if orderID == 0 {
		total = cartTotalLocked(session)
	}
	session.pendingOps[constants.PendingOpValidateCoupon] = true
	session.mu.Unlock()

	result, err := c.api.ValidateCoupon(context.Background(), code, total, orderID)

	session.mu.Lock()
	defer session.mu.Unlock()
	if gen != session.coupon.gen {
		// 有更新的输入在途，本次结果作废
		return
	}
	delete(session.pendingOps, constants.PendingOpValidateCoupon)
	session.coupon.validating = false
	session.coupon.checked = true

	if err != nil {
		logger.Warnw("coupon_validate_failed",
			"session_id", session.ID,
			"code", code,
			"error", err,
		)
		session.coupon.valid = false
		session.coupon.message = platform.RemoteMessage(err)
		return
	}
	session.coupon.valid = result.Valid
	session.coupon.message = result.Message
}

// ValidationState 返回校验状态快照
func (c *CouponService) ValidationState(session *Session) CouponValidationState {
	if session == nil {
		return CouponValidationState{}
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return CouponValidationState{
		Code:       session.coupon.code,
		Validating: session.coupon.validating,
		Checked:    session.coupon.checked,
		Valid:      session.coupon.valid,
		Message:    session.coupon.message,
	}
}

// Apply 将优惠券提交到订单
// 控制台策略：每单只允许应用一次；成功后失效订单缓存并重取，
// 折扣金额从不在本地计算。
func (c *CouponService) Apply(ctx context.Context, orderID uint, code string, orderTotal models.Money) ([]models.Redemption, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrCouponCodeEmpty
	}
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}

	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.HasCoupon() {
		return nil, ErrCouponAlreadyApplied
	}
	if !c.orders.CanEditComposition(order.Status) {
		return nil, ErrOrderNotEditable
	}

	redemptions, err := c.api.ApplyCoupon(ctx, trimmed, orderTotal, orderID)
	if err != nil {
		return nil, err
	}

	// 平台已重算价格，本地缓存必须作废后重取
	if err := c.orders.Refresh(ctx, orderID); err != nil {
		logger.Warnw("order_refresh_after_coupon_failed", "order_id", orderID, "error", err)
	}
	return redemptions, nil
}
