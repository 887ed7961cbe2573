package models

// Product 商品（平台目录的只读投影）
type Product struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Price       *Money    `json:"price"` // 无规格商品的基准价；按规格定价时为空
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Options     []Option  `json:"options"`
	Variants    []Variant `json:"variants"`
	CategoryIDs []uint    `json:"category_ids"`
	DiscountIDs []uint    `json:"discount_ids"`
}

// HasOptions 判断商品是否带规格选项
// 带选项的商品必须解析到唯一 Variant 后才可加入购物车。
func (p *Product) HasOptions() bool {
	return p != nil && len(p.Options) > 0
}

// Option 商品规格选项（同一商品内名称唯一）
type Option struct {
	ID     uint          `json:"id"`
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

// OptionValue 规格选项值（同一选项内值唯一）
type OptionValue struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Variant 商品规格组合（每个选项恰好取一个值）
type Variant struct {
	ID           uint          `json:"id"`
	ProductID    uint          `json:"product_id"`
	SKU          string        `json:"sku"`
	QRCode       string        `json:"qr_code"`
	Price        *Money        `json:"price"` // 为空时回落到商品基准价
	Stock        int           `json:"stock"`
	Image        string        `json:"image,omitempty"`
	OptionValues []OptionValue `json:"option_values"`
}

// UnitPrice 解析行单价：规格价 > 商品价 > 0
func UnitPrice(product *Product, variant *Variant) Money {
	if variant != nil && variant.Price != nil {
		return *variant.Price
	}
	if product != nil && product.Price != nil {
		return *product.Price
	}
	return Money{}
}

// Category 商品分类引用
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PaymentMethod 启用的支付方式（仅读取，配置由平台维护）
type PaymentMethod struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
