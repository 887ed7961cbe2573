package service

import (
	"context"
	"sync"

	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

// fakeAPI 平台接口替身，记录调用次数供断言
type fakeAPI struct {
	mu sync.Mutex

	findVariantCalls    int
	validateCouponCalls int
	applyCouponCalls    int
	createOrderCalls    int
	addProductsCalls    int
	transitionCalls     []string
	orderCalls          int

	findVariantFn    func(productID uint, selections map[string]string) (*models.Variant, error)
	validateCouponFn func(code string, orderTotal models.Money) (*platform.CouponValidation, error)
	applyCouponFn    func(code string, orderID uint) ([]models.Redemption, error)
	createOrderFn    func(req platform.CreateOrderRequest) (*models.Order, error)
	addProductsFn    func(orderID uint, lines []platform.OrderLineRequest) (*models.Order, error)
	transitionFn     func(orderID uint, target string) (*models.Order, error)
	orderFn          func(orderID uint) (*models.Order, error)
}

func (f *fakeAPI) Products(ctx context.Context, store string, categoryID uint) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeAPI) PaymentMethods(ctx context.Context, store string) ([]models.PaymentMethod, error) {
	return nil, nil
}

func (f *fakeAPI) FindVariant(ctx context.Context, productID uint, selections map[string]string) (*models.Variant, error) {
	f.mu.Lock()
	f.findVariantCalls++
	fn := f.findVariantFn
	f.mu.Unlock()
	if fn != nil {
		return fn(productID, selections)
	}
	return nil, nil
}

func (f *fakeAPI) ValidateCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) (*platform.CouponValidation, error) {
	f.mu.Lock()
	f.validateCouponCalls++
	fn := f.validateCouponFn
	f.mu.Unlock()
	if fn != nil {
		return fn(code, orderTotal)
	}
	return &platform.CouponValidation{Valid: true}, nil
}

func (f *fakeAPI) ApplyCoupon(ctx context.Context, code string, orderTotal models.Money, orderID uint) ([]models.Redemption, error) {
	f.mu.Lock()
	f.applyCouponCalls++
	fn := f.applyCouponFn
	f.mu.Unlock()
	if fn != nil {
		return fn(code, orderID)
	}
	return []models.Redemption{{CouponID: 1, OrderID: orderID}}, nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req platform.CreateOrderRequest) (*models.Order, error) {
	f.mu.Lock()
	f.createOrderCalls++
	fn := f.createOrderFn
	f.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	return &models.Order{ID: 1, Status: "pending"}, nil
}

func (f *fakeAPI) AddOrderProducts(ctx context.Context, orderID uint, lines []platform.OrderLineRequest) (*models.Order, error) {
	f.mu.Lock()
	f.addProductsCalls++
	fn := f.addProductsFn
	f.mu.Unlock()
	if fn != nil {
		return fn(orderID, lines)
	}
	return &models.Order{ID: orderID, Status: "pending"}, nil
}

func (f *fakeAPI) UpdateOrderProduct(ctx context.Context, orderID, orderProductID uint, req platform.UpdateOrderProductRequest) (*models.OrderProduct, error) {
	return &models.OrderProduct{ID: orderProductID, Quantity: req.Quantity}, nil
}

func (f *fakeAPI) RemoveOrderProduct(ctx context.Context, orderID, orderProductID uint) error {
	return nil
}

func (f *fakeAPI) UpdateDeliveryAddress(ctx context.Context, orderID uint, delivery models.Delivery) (*models.Order, error) {
	return &models.Order{ID: orderID, Status: "pending", Delivery: delivery}, nil
}

func (f *fakeAPI) UpdateOrderNote(ctx context.Context, orderID uint, note string) (*models.Order, error) {
	return &models.Order{ID: orderID, Status: "pending", Note: note}, nil
}

func (f *fakeAPI) TransitionStatus(ctx context.Context, orderID uint, target string) (*models.Order, error) {
	f.mu.Lock()
	f.transitionCalls = append(f.transitionCalls, target)
	fn := f.transitionFn
	f.mu.Unlock()
	if fn != nil {
		return fn(orderID, target)
	}
	return &models.Order{ID: orderID, Status: target}, nil
}

func (f *fakeAPI) Order(ctx context.Context, orderID uint) (*models.Order, error) {
	f.mu.Lock()
	f.orderCalls++
	fn := f.orderFn
	f.mu.Unlock()
	if fn != nil {
		return fn(orderID)
	}
	return &models.Order{ID: orderID, Status: "pending"}, nil
}

func (f *fakeAPI) OrderLogs(ctx context.Context, orderID uint) ([]models.OrderLog, error) {
	return nil, nil
}

func (f *fakeAPI) snapshotCalls() (findVariant, validateCoupon, createOrder, addProducts int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findVariantCalls, f.validateCouponCalls, f.createOrderCalls, f.addProductsCalls
}

var _ platform.API = (*fakeAPI)(nil)

// testSession 创建测试会话
func testSession(orderID uint) *Session {
	svc := NewSessionService(30)
	return svc.Create("default", orderID)
}

func moneyPtr(amount float64) *models.Money {
	m := models.NewMoneyFromFloat(amount)
	return &m
}
