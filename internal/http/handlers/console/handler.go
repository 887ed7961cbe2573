package console

import "github.com/storefront-console/internal/provider"

// Handler 下单控制台接口处理器入口
// 说明：该处理器覆盖目录、结账会话与订单侧 API。
type Handler struct {
	*provider.Container
}

// New 创建控制台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
