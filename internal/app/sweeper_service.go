package app

import (
	"context"
	"time"

	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/service"
)

const defaultSweepInterval = time.Minute

// SweeperService 结账会话回收服务
// 周期性清理超过空闲时限的会话，停掉其中未触发的防抖定时器。
type SweeperService struct {
	sessions *service.SessionService
	interval time.Duration
	stop     chan struct{}
}

// NewSweeperService 创建会话回收服务
func NewSweeperService(sessions *service.SessionService, interval time.Duration) *SweeperService {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SweeperService{
		sessions: sessions,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Name 服务名称
func (s *SweeperService) Name() string {
	return "session-sweeper"
}

// Start 启动回收循环
func (s *SweeperService) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stop:
			return nil
		case <-ticker.C:
			if removed := s.sessions.Sweep(); removed > 0 {
				logger.Infow("session_sweep", "removed", removed)
			}
		}
	}
}

// Stop 停止回收循环
func (s *SweeperService) Stop(ctx context.Context) error {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	return nil
}
