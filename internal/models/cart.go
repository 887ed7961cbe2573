package models

import "fmt"

// CartLine 购物车行
// 归并键为 (product_id, variant_id-or-0)；同键的行在添加时必须合并。
type CartLine struct {
	Product    *Product          `json:"product"`
	Variant    *Variant          `json:"variant,omitempty"`
	Selections map[string]string `json:"selections"` // 选项名 -> 已选值
	Quantity   int               `json:"quantity"`
}

// Key 返回行的归并键
func (l *CartLine) Key() string {
	variantID := uint(0)
	if l.Variant != nil {
		variantID = l.Variant.ID
	}
	productID := uint(0)
	if l.Product != nil {
		productID = l.Product.ID
	}
	return CartLineKey(productID, variantID)
}

// CartLineKey 构造归并键
func CartLineKey(productID, variantID uint) string {
	return fmt.Sprintf("%d:%d", productID, variantID)
}

// Subtotal 行小计：(规格价 ?? 商品价 ?? 0) × 数量
func (l *CartLine) Subtotal() Money {
	return UnitPrice(l.Product, l.Variant).MulInt(l.Quantity)
}
