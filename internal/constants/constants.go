package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 优惠券类型常量
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// 优惠券适用范围常量
const (
	CouponScopeAll        = "all"
	CouponScopeProducts   = "products"
	CouponScopeCategories = "categories"
)

// 会话内进行中操作标识
const (
	PendingOpResolveVariant = "resolve_variant"
	PendingOpValidateCoupon = "validate_coupon"
	PendingOpPlaceOrder     = "place_order"
	PendingOpAppendOrder    = "append_order"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskOrderRefresh = "order:refresh"
	TaskCatalogWarm  = "catalog:warm"
)

// 订单日志动作常量
const (
	OrderLogCreated          = "created"
	OrderLogStatusChanged    = "status_changed"
	OrderLogProductAdded     = "product_added"
	OrderLogProductRemoved   = "product_removed"
	OrderLogProductUpdated   = "product_updated"
	OrderLogAddressUpdated   = "address_updated"
	OrderLogNoteUpdated      = "note_updated"
	OrderLogCancelledByStore = "cancelled_by_store"
	OrderLogCancelledByBuyer = "cancelled_by_customer"
)
