package queue

import (
	"encoding/json"

	"github.com/storefront-console/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderRefresh 订单刷新任务（状态迁移后重取订单与日志回填缓存）
	TaskOrderRefresh = constants.TaskOrderRefresh
	// TaskCatalogWarm 目录缓存预热任务
	TaskCatalogWarm = constants.TaskCatalogWarm
)

// OrderRefreshPayload 订单刷新任务载荷
type OrderRefreshPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewOrderRefreshTask 构造订单刷新任务
func NewOrderRefreshTask(payload OrderRefreshPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderRefresh, raw), nil
}

// CatalogWarmPayload 目录预热任务载荷
type CatalogWarmPayload struct {
	Store string `json:"store"`
}

// NewCatalogWarmTask 构造目录预热任务
func NewCatalogWarmTask(payload CatalogWarmPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarm, raw), nil
}
