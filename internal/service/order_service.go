package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront-console/internal/cache"
	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
	"github.com/storefront-console/internal/queue"
)

const orderCacheTTL = 5 * time.Minute

// allowedTransitions 订单状态迁移表
// 主线 pending → processing → shipped → delivered；
// cancelled 可从任意非终态进入；delivered 与 cancelled 为终态。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

// nextForwardStatus 每个状态唯一的前向迁移
var nextForwardStatus = map[string]string{
	constants.OrderStatusPending:    constants.OrderStatusProcessing,
	constants.OrderStatusProcessing: constants.OrderStatusShipped,
	constants.OrderStatusShipped:    constants.OrderStatusDelivered,
}

// OrderService 订单服务
// 状态迁移与行编辑都通过平台专用接口完成；
// 任何成功的变更之后都重取订单与日志，绝不在本地乐观改写状态。
type OrderService struct {
	api         platform.API
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(api platform.API, queueClient *queue.Client) *OrderService {
	return &OrderService{api: api, queueClient: queueClient}
}

// CanTransition 判断状态迁移是否合法（纯谓词）
func (s *OrderService) CanTransition(current, target string) bool {
	targets, ok := allowedTransitions[current]
	return ok && targets[target]
}

// IsTerminal 判断是否终态
func (s *OrderService) IsTerminal(status string) bool {
	return status == constants.OrderStatusDelivered || status == constants.OrderStatusCancelled
}

// NextTransitions 当前状态下可供 UI 展示的迁移
// 只提供唯一的前向迁移和（非终态时的）取消；不提供跳级。
func (s *OrderService) NextTransitions(current string) []string {
	var next []string
	if forward, ok := nextForwardStatus[current]; ok {
		next = append(next, forward)
	}
	if !s.IsTerminal(current) {
		if _, known := allowedTransitions[current]; known {
			next = append(next, constants.OrderStatusCancelled)
		}
	}
	return next
}

// CanEditComposition 判断订单构成是否可编辑
// 仅 pending / processing 允许改行、改地址、应用优惠券。
func (s *OrderService) CanEditComposition(status string) bool {
	return status == constants.OrderStatusPending || status == constants.OrderStatusProcessing
}

func orderCacheKey(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}

func orderLogsCacheKey(orderID uint) string {
	return fmt.Sprintf("order:%d:logs", orderID)
}

// Get 获取订单（优先缓存）
func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	var cached models.Order
	hit, err := cache.GetJSON(ctx, orderCacheKey(orderID), &cached)
	if err != nil {
		logger.Warnw("order_cache_read_failed", "order_id", orderID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	order, err := s.api.Order(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, orderCacheKey(orderID), order, orderCacheTTL); err != nil {
		logger.Warnw("order_cache_write_failed", "order_id", orderID, "error", err)
	}
	return order, nil
}

// Logs 获取订单审计日志（优先缓存）
func (s *OrderService) Logs(ctx context.Context, orderID uint) ([]models.OrderLog, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	var cached []models.OrderLog
	hit, err := cache.GetJSON(ctx, orderLogsCacheKey(orderID), &cached)
	if err != nil {
		logger.Warnw("order_logs_cache_read_failed", "order_id", orderID, "error", err)
	}
	if hit {
		return cached, nil
	}

	logs, err := s.api.OrderLogs(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, orderLogsCacheKey(orderID), logs, orderCacheTTL); err != nil {
		logger.Warnw("order_logs_cache_write_failed", "order_id", orderID, "error", err)
	}
	return logs, nil
}

// Invalidate 失效订单及日志缓存
func (s *OrderService) Invalidate(ctx context.Context, orderID uint) {
	if err := cache.Delete(ctx, orderCacheKey(orderID), orderLogsCacheKey(orderID)); err != nil {
		logger.Warnw("order_cache_invalidate_failed", "order_id", orderID, "error", err)
	}
}

// Refresh 强制重取订单与日志并回填缓存
func (s *OrderService) Refresh(ctx context.Context, orderID uint) error {
	s.Invalidate(ctx, orderID)
	if _, err := s.Get(ctx, orderID); err != nil {
		return err
	}
	if _, err := s.Logs(ctx, orderID); err != nil {
		return err
	}
	return nil
}

// Transition 触发状态迁移
// 迁移成功后重取订单（价格与核销可能随副作用变化），并投递异步刷新任务。
func (s *OrderService) Transition(ctx context.Context, orderID uint, target string) (*models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.CanTransition(order.Status, target) {
		return nil, ErrTransitionNotAllowed
	}

	if _, err := s.api.TransitionStatus(ctx, orderID, target); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, orderID)
	if err := s.queueClient.EnqueueOrderRefresh(queue.OrderRefreshPayload{OrderID: orderID, Status: target}); err != nil {
		logger.Warnw("order_refresh_enqueue_failed", "order_id", orderID, "error", err)
	}

	fresh, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

// UpdateProduct 修改订单行的规格或数量
func (s *OrderService) UpdateProduct(ctx context.Context, orderID, orderProductID uint, variantID *uint, quantity int) (*models.OrderProduct, error) {
	if quantity <= 0 {
		return nil, ErrQuantityInvalid
	}
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.CanEditComposition(order.Status) {
		return nil, ErrOrderNotEditable
	}

	line, err := s.api.UpdateOrderProduct(ctx, orderID, orderProductID, platform.UpdateOrderProductRequest{
		VariantID: variantID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, err
	}
	if err := s.Refresh(ctx, orderID); err != nil {
		logger.Warnw("order_refresh_after_line_update_failed", "order_id", orderID, "error", err)
	}
	return line, nil
}

// RemoveProduct 删除订单行
func (s *OrderService) RemoveProduct(ctx context.Context, orderID, orderProductID uint) error {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !s.CanEditComposition(order.Status) {
		return ErrOrderNotEditable
	}

	if err := s.api.RemoveOrderProduct(ctx, orderID, orderProductID); err != nil {
		return err
	}
	if err := s.Refresh(ctx, orderID); err != nil {
		logger.Warnw("order_refresh_after_line_remove_failed", "order_id", orderID, "error", err)
	}
	return nil
}

// UpdateDelivery 更新配送地址
func (s *OrderService) UpdateDelivery(ctx context.Context, orderID uint, delivery models.Delivery) (*models.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.CanEditComposition(order.Status) {
		return nil, ErrOrderNotEditable
	}

	updated, err := s.api.UpdateDeliveryAddress(ctx, orderID, delivery)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx, orderID)
	return updated, nil
}

// UpdateNote 更新订单备注
func (s *OrderService) UpdateNote(ctx context.Context, orderID uint, note string) (*models.Order, error) {
	updated, err := s.api.UpdateOrderNote(ctx, orderID, note)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx, orderID)
	return updated, nil
}
