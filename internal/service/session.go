package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
)

// resolvedVariant 单商品维度的规格解析缓存
// 只保留最近一次完整选择的结果：选择变化即覆盖，天然完成失效。
type resolvedVariant struct {
	selectionKey string
	variant      *models.Variant
}

// Session 结账会话
// 购物车与选择状态仅存活于会话内，不做持久化；
// 所有变更经 mu 串行化，保证归并与合计不变式。
type Session struct {
	ID      string
	Store   string
	OrderID uint // 追加模式下的目标订单；新建订单时为 0

	mu         sync.Mutex
	lines      []*models.CartLine
	pendingOps map[string]bool
	resolved   map[uint]resolvedVariant
	resolveGen uint64
	coupon     couponState
	updatedAt  time.Time
}

// couponState 会话内优惠码校验状态
type couponState struct {
	gen        uint64
	timer      *time.Timer
	code       string
	validating bool
	valid      bool
	message    string
	checked    bool // 是否已有有效的校验结果
}

func newSession(store string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Store:      strings.TrimSpace(store),
		pendingOps: make(map[string]bool),
		resolved:   make(map[uint]resolvedVariant),
		updatedAt:  time.Now(),
	}
}

// touch 更新活跃时间（调用方需持有 mu）
func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// beginOp 标记操作开始；已在进行中时返回 false
func (s *Session) beginOp(op string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingOps[op] {
		return false
	}
	s.pendingOps[op] = true
	s.touch()
	return true
}

// endOp 清除操作标记（成功与失败路径都必须走到）
func (s *Session) endOp(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendingOps, op)
}

// PendingOps 返回进行中操作的快照
// UI 据此为每个异步操作渲染独立的等待态。
func (s *Session) PendingOps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]string, 0, len(s.pendingOps))
	for op := range s.pendingOps {
		ops = append(ops, op)
	}
	return ops
}

// SessionService 结账会话注册表
type SessionService struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewSessionService 创建会话注册表
func NewSessionService(ttlMinutes int) *SessionService {
	ttl := 2 * time.Hour
	if ttlMinutes > 0 {
		ttl = time.Duration(ttlMinutes) * time.Minute
	}
	return &SessionService{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create 创建新会话
func (s *SessionService) Create(store string, orderID uint) *Session {
	session := newSession(store)
	session.OrderID = orderID
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get 获取会话
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Close 用户取消结账：清空购物车并移除会话
func (s *SessionService) Close(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	session.mu.Lock()
	session.lines = nil
	session.stopCouponTimerLocked()
	session.mu.Unlock()
}

// Sweep 清理空闲超时的会话
func (s *SessionService) Sweep() int {
	deadline := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.updatedAt.Before(deadline)
		if idle {
			session.stopCouponTimerLocked()
		}
		session.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Debugw("session_sweep", "removed", removed)
	}
	return removed
}
