package router

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/cache"
	"github.com/storefront-console/internal/config"
	consolehandlers "github.com/storefront-console/internal/http/handlers/console"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/provider"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := consolehandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sc"
	}
	redisClient := cache.Client()
	couponRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon", redisPrefix),
		WindowSeconds: cfg.Security.CouponRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CouponRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}
	// 会话在服务端占内存，按 IP 限制创建频率
	sessionRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:session", redisPrefix),
		WindowSeconds: cfg.Security.SessionRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SessionRateLimit.MaxRequests,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 目录接口
		catalog := apiV1.Group("/catalog")
		{
			catalog.GET("/products", handler.ListProducts)
			catalog.GET("/products/:product_id", handler.GetProduct)
			catalog.GET("/payment-methods", handler.ListPaymentMethods)
			catalog.GET("/variants/:variant_id/qr", handler.VariantQR)
		}

		// 结账会话接口
		apiV1.POST("/sessions", RateLimitMiddleware(redisClient, sessionRule, KeyByIP), handler.CreateSession)
		sessions := apiV1.Group("/sessions/:session_id")
		{
			sessions.GET("", handler.GetSessionState)
			sessions.DELETE("", handler.CloseSession)

			sessions.GET("/cart", handler.GetCart)
			sessions.POST("/cart/lines", handler.AddCartLine)
			sessions.PATCH("/cart/lines", handler.AdjustCartLine)
			sessions.DELETE("/cart/lines/:index", handler.RemoveCartLine)

			sessions.POST("/variant/resolve", handler.ResolveVariant)
			sessions.DELETE("/variant/resolve/:product_id", handler.CloseVariantDialog)

			sessions.POST("/coupon/input", RateLimitMiddleware(redisClient, couponRule, KeyByIPAndJSONField("code")), handler.CouponInput)
			sessions.GET("/coupon", handler.GetCouponState)

			sessions.POST("/checkout", handler.CreateOrder)
			sessions.POST("/orders/:order_id/append", handler.AppendToOrder)
		}

		// 订单接口
		orders := apiV1.Group("/orders/:order_id")
		{
			orders.GET("", handler.GetOrder)
			orders.GET("/logs", handler.GetOrderLogs)
			orders.POST("/transition", handler.TransitionOrder)
			orders.POST("/coupon", handler.ApplyCoupon)
			orders.PATCH("/products/:order_product_id", handler.UpdateOrderProduct)
			orders.DELETE("/products/:order_product_id", handler.RemoveOrderProduct)
			orders.PUT("/delivery", handler.UpdateDelivery)
			orders.PUT("/note", handler.UpdateNote)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
