package provider

import (
	"github.com/storefront-console/internal/cache"
	"github.com/storefront-console/internal/config"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/platform"
	"github.com/storefront-console/internal/qr"
	"github.com/storefront-console/internal/queue"
	"github.com/storefront-console/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	Platform    platform.API
	QueueClient *queue.Client

	// Services
	SessionService  *service.SessionService
	CartService     *service.CartService
	VariantService  *service.VariantService
	CouponService   *service.CouponService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	CatalogService  *service.CatalogService

	QRGenerator *qr.Generator
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化平台接口客户端
	api, err := platform.New(platform.Config{
		BaseURL:   cfg.Platform.BaseURL,
		Token:     cfg.Platform.Token,
		TimeoutMS: cfg.Platform.TimeoutMS,
	})
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		Platform:    api,
		QueueClient: queueClient,
		QRGenerator: qr.NewGenerator(0),
	}
	c.initServices()
	c.warmCatalog()
	return c, nil
}

// warmCatalog 启动时为配置的店铺投递目录预热任务
// 预热由 worker 执行：先失效旧键再重拉，避免冷启动后首个请求直拉平台。
func (c *Container) warmCatalog() {
	for _, store := range c.Config.Catalog.WarmStores {
		if store == "" {
			continue
		}
		if err := c.QueueClient.EnqueueCatalogWarm(queue.CatalogWarmPayload{Store: store}); err != nil {
			logger.Warnw("catalog_warm_enqueue_failed", "store", store, "error", err)
		}
	}
}

func (c *Container) initServices() {
	cfg := c.Config
	c.SessionService = service.NewSessionService(cfg.Session.TTLMinutes)
	c.CartService = service.NewCartService()
	c.VariantService = service.NewVariantService(c.Platform)
	c.OrderService = service.NewOrderService(c.Platform, c.QueueClient)
	c.CouponService = service.NewCouponService(c.Platform, c.OrderService, cfg.Coupon.DebounceMS, cfg.Coupon.MinCodeLength)
	c.CheckoutService = service.NewCheckoutService(c.Platform, c.CartService, c.OrderService)
	c.CatalogService = service.NewCatalogService(c.Platform, cfg.Catalog.CacheTTLSeconds)
}
