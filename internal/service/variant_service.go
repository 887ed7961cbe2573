package service

import (
	"context"
	"sort"
	"strings"

	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

// VariantService 规格解析服务
// 只有当商品的全部选项都有选中值时才发起远端匹配；
// 过期的在途查询结果通过代号（generation）比对丢弃。
type VariantService struct {
	api platform.API
}

// NewVariantService 创建规格解析服务
func NewVariantService(api platform.API) *VariantService {
	return &VariantService{api: api}
}

// SelectionComplete 判断选项是否全部选齐（纯谓词）
func SelectionComplete(product *models.Product, selections map[string]string) bool {
	if product == nil {
		return false
	}
	for _, option := range product.Options {
		value, ok := selections[option.Name]
		if !ok || strings.TrimSpace(value) == "" {
			return false
		}
	}
	return true
}

// CanAddToCart 判断当前选择下能否加入购物车（纯谓词）
// 无选项商品恒可加入；带选项商品要求选择完整（还需解析成功）。
func CanAddToCart(product *models.Product, selections map[string]string) bool {
	if product == nil {
		return false
	}
	if !product.HasOptions() {
		return true
	}
	return SelectionComplete(product, selections)
}

// selectionKey 规格选择集的规范化键（选项名排序后拼接）
func selectionKey(selections map[string]string) string {
	names := make([]string, 0, len(selections))
	for name := range selections {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(selections[name])
	}
	return b.String()
}

// Resolve 解析选项组合对应的规格
// 返回值约定：
//   - 商品无选项：返回 (nil, nil)，商品本身即可购买单元；
//   - 选择不完整：ErrSelectionIncomplete，不发起网络请求；
//   - 组合与上次已解析结果一致：直接返回缓存，不重复请求；
//   - 查询失败或无匹配：ErrVariantNotFound（二者日志区分，展示一致）；
//   - 结果到达时已有更新的选择：ErrResolveSuperseded，调用方应丢弃。
func (s *VariantService) Resolve(ctx context.Context, session *Session, product *models.Product, selections map[string]string) (*models.Variant, error) {
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if product == nil || product.ID == 0 {
		return nil, ErrProductInvalid
	}
	if !product.HasOptions() {
		return nil, nil
	}
	if !SelectionComplete(product, selections) {
		return nil, ErrSelectionIncomplete
	}

	key := selectionKey(selections)

	session.mu.Lock()
	if cached, ok := session.resolved[product.ID]; ok && cached.selectionKey == key {
		variant := cached.variant
		session.mu.Unlock()
		return variant, nil
	}
	// 选择集变化：旧缓存作废，登记新一代查询
	delete(session.resolved, product.ID)
	session.resolveGen++
	gen := session.resolveGen
	session.pendingOps[constants.PendingOpResolveVariant] = true
	session.touch()
	session.mu.Unlock()

	variant, err := s.api.FindVariant(ctx, product.ID, selections)

	session.mu.Lock()
	defer session.mu.Unlock()
	if gen == session.resolveGen {
		delete(session.pendingOps, constants.PendingOpResolveVariant)
	}
	if gen != session.resolveGen {
		// 已有更新的选择在途，本次结果作废
		return nil, ErrResolveSuperseded
	}

	if err != nil {
		logger.Warnw("variant_lookup_failed",
			"session_id", session.ID,
			"product_id", product.ID,
			"error", err,
		)
		return nil, ErrVariantNotFound
	}
	if variant == nil {
		logger.Debugw("variant_no_match",
			"session_id", session.ID,
			"product_id", product.ID,
			"selections", key,
		)
		return nil, ErrVariantNotFound
	}

	session.resolved[product.ID] = resolvedVariant{selectionKey: key, variant: variant}
	return variant, nil
}

// InvalidateResolved 清除商品的解析缓存（选择对话框关闭时调用）
func (s *VariantService) InvalidateResolved(session *Session, productID uint) {
	if session == nil {
		return
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	delete(session.resolved, productID)
}
