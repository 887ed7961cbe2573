package models

import "time"

// Order 订单（由平台创建与计价，本服务只读与触发变更）
type Order struct {
	ID          uint           `json:"id"`
	Status      string         `json:"status"`
	Customer    Customer       `json:"customer"`
	Delivery    Delivery       `json:"delivery"`
	Note        string         `json:"note"`
	Products    []OrderProduct `json:"products"`
	Coupons     []Coupon       `json:"coupons"`
	Redemptions []Redemption   `json:"redemptions"`
	Pricing     Pricing        `json:"pricing"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// HasCoupon 判断订单是否已挂有优惠券
// 控制台只允许每单应用一次优惠券，已有优惠券时隐藏应用入口。
func (o *Order) HasCoupon() bool {
	return o != nil && len(o.Coupons) > 0
}

// Customer 客户信息
type Customer struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Delivery 配送信息（州/大区/最近取货点）
type Delivery struct {
	StateID      uint   `json:"state_id"`
	RegionID     uint   `json:"region_id,omitempty"`
	NearestPoint string `json:"nearest_point,omitempty"`
}

// OrderProduct 订单行（含下单时捕获的单价）
type OrderProduct struct {
	ID        uint     `json:"id"`
	ProductID uint     `json:"product_id"`
	VariantID *uint    `json:"variant_id,omitempty"`
	Product   *Product `json:"product,omitempty"`
	Variant   *Variant `json:"variant,omitempty"`
	Quantity  int      `json:"quantity"`
	UnitPrice Money    `json:"unit_price"`
}

// Pricing 订单价格汇总（小计/折扣/总计均为平台计算）
type Pricing struct {
	Subtotal Money `json:"subtotal"`
	Discount Money `json:"discount"`
	Total    Money `json:"total"`
}

// Coupon 优惠券
type Coupon struct {
	ID       uint       `json:"id"`
	Code     string     `json:"code"`
	Type     string     `json:"type"`  // percentage / fixed
	Value    Money      `json:"value"` // 折扣比例或固定金额
	Scope    string     `json:"scope"` // all / products / categories
	MinTotal Money      `json:"min_total"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// Redemption 优惠核销（单券对单订单的平台计算折扣额，纯派生数据）
type Redemption struct {
	ID       uint  `json:"id"`
	CouponID uint  `json:"coupon_id"`
	OrderID  uint  `json:"order_id"`
	Amount   Money `json:"amount"`
}

// OrderLog 订单审计日志（平台追加写入，仅展示）
type OrderLog struct {
	ID        uint             `json:"id"`
	OrderID   uint             `json:"order_id"`
	Action    string           `json:"action"`
	Message   string           `json:"message"`
	Changes   []OrderLogChange `json:"changes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// OrderLogChange 字段级变更明细
type OrderLogChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}
