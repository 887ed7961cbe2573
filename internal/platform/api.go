package platform

import (
	"context"

	"github.com/storefront-console/internal/models"
)

// API 平台接口抽象
// *Client 为生产实现；服务层依赖该接口以便单元测试使用替身。
type API interface {
	Products(ctx context.Context, store string, categoryID uint) ([]models.Product, error)
	PaymentMethods(ctx context.Context, store string) ([]models.PaymentMethod, error)
	FindVariant(ctx context.Context, productID uint, selections map[string]string) (*models.Variant, error)
	ValidateCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) (*CouponValidation, error)
	ApplyCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) ([]models.Redemption, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
	AddOrderProducts(ctx context.Context, orderID uint, lines []OrderLineRequest) (*models.Order, error)
	UpdateOrderProduct(ctx context.Context, orderID, orderProductID uint, req UpdateOrderProductRequest) (*models.OrderProduct, error)
	RemoveOrderProduct(ctx context.Context, orderID, orderProductID uint) error
	UpdateDeliveryAddress(ctx context.Context, orderID uint, delivery models.Delivery) (*models.Order, error)
	UpdateOrderNote(ctx context.Context, orderID uint, note string) (*models.Order, error)
	TransitionStatus(ctx context.Context, orderID uint, target string) (*models.Order, error)
	Order(ctx context.Context, orderID uint) (*models.Order, error)
	OrderLogs(ctx context.Context, orderID uint) ([]models.OrderLog, error)
}

var _ API = (*Client)(nil)
