package worker

import (
	"context"
	"encoding/json"

	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/provider"
	"github.com/storefront-console/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderRefresh, c.handleOrderRefresh)
	mux.HandleFunc(queue.TaskCatalogWarm, c.handleCatalogWarm)
}

// handleOrderRefresh 状态迁移后的订单重取
// 价格与核销字段可能因迁移副作用变化，必须整单重取而非本地改写。
func (c *Consumer) handleOrderRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_refresh_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_refresh_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.Refresh(ctx, payload.OrderID); err != nil {
		logger.Warnw("worker_order_refresh_failed",
			"order_id", payload.OrderID,
			"status", payload.Status,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_order_refreshed", "order_id", payload.OrderID, "status", payload.Status)
	return nil
}

// handleCatalogWarm 目录缓存预热
func (c *Consumer) handleCatalogWarm(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.CatalogWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_catalog_warm_unmarshal_failed", "error", err)
		return err
	}
	if payload.Store == "" {
		return nil
	}
	c.CatalogService.InvalidateStore(ctx, payload.Store)
	if _, err := c.CatalogService.Products(ctx, payload.Store, 0); err != nil {
		logger.Warnw("worker_catalog_warm_failed", "store", payload.Store, "error", err)
		return err
	}
	return nil
}
