package service

import (
	"github.com/storefront-console/internal/models"
)

// CartService 购物车服务
// 对会话内 CartLine 的全部变更入口；同键行合并为硬性不变式。
type CartService struct{}

// NewCartService 创建购物车服务
func NewCartService() *CartService {
	return &CartService{}
}

// Add 添加商品到购物车
// 带选项的商品必须先解析出 Variant；同 (product, variant) 键的行数量 +1。
func (s *CartService) Add(session *Session, product *models.Product, variant *models.Variant, selections map[string]string) error {
	if session == nil {
		return ErrSessionNotFound
	}
	if product == nil || product.ID == 0 {
		return ErrProductInvalid
	}
	if product.HasOptions() && variant == nil {
		return ErrVariantRequired
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	variantID := uint(0)
	if variant != nil {
		variantID = variant.ID
	}
	key := models.CartLineKey(product.ID, variantID)
	for _, line := range session.lines {
		if line.Key() == key {
			line.Quantity++
			session.touch()
			return nil
		}
	}

	copied := make(map[string]string, len(selections))
	for name, value := range selections {
		copied[name] = value
	}
	session.lines = append(session.lines, &models.CartLine{
		Product:    product,
		Variant:    variant,
		Selections: copied,
		Quantity:   1,
	})
	session.touch()
	return nil
}

// AdjustQuantity 按增量调整行数量
// 数量降到 0 即移除该行；这是递减路径唯一的移除方式。
func (s *CartService) AdjustQuantity(session *Session, lineIndex int, delta int) error {
	if session == nil {
		return ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if lineIndex < 0 || lineIndex >= len(session.lines) {
		return ErrCartLineNotFound
	}
	line := session.lines[lineIndex]
	quantity := line.Quantity + delta
	if quantity < 0 {
		quantity = 0
	}
	if quantity == 0 {
		session.lines = append(session.lines[:lineIndex], session.lines[lineIndex+1:]...)
	} else {
		line.Quantity = quantity
	}
	session.touch()
	return nil
}

// Remove 无条件移除行
func (s *CartService) Remove(session *Session, lineIndex int) error {
	if session == nil {
		return ErrSessionNotFound
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if lineIndex < 0 || lineIndex >= len(session.lines) {
		return ErrCartLineNotFound
	}
	session.lines = append(session.lines[:lineIndex], session.lines[lineIndex+1:]...)
	session.touch()
	return nil
}

// Lines 返回购物车行快照
func (s *CartService) Lines(session *Session) []models.CartLine {
	if session == nil {
		return nil
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	lines := make([]models.CartLine, 0, len(session.lines))
	for _, line := range session.lines {
		lines = append(lines, *line)
	}
	return lines
}

// Total 购物车合计：Σ (规格价 ?? 商品价 ?? 0) × 数量
// 每次读取即时重算，作为优惠券校验的订单总额输入。
func (s *CartService) Total(session *Session) models.Money {
	if session == nil {
		return models.Money{}
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return cartTotalLocked(session)
}

// cartTotalLocked 计算合计（调用方需持有 session.mu）
func cartTotalLocked(session *Session) models.Money {
	total := models.Money{}
	for _, line := range session.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Clear 清空购物车
// 触发点：用户取消、订单创建成功、追加商品成功。
func (s *CartService) Clear(session *Session) {
	if session == nil {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	session.lines = nil
	session.touch()
}

// clearLocked 清空购物车（调用方需持有 session.mu）
func clearLocked(session *Session) {
	session.lines = nil
	session.touch()
}
