package qr

import (
	"encoding/json"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/storefront-console/internal/models"
)

// defaultSize 二维码图片边长(像素)
const defaultSize = 256

// labelPayload 变体标签二维码内容
type labelPayload struct {
	ProductID uint   `json:"product_id"`
	VariantID uint   `json:"variant_id"`
	SKU       string `json:"sku,omitempty"`
}

// Generator 变体标签二维码生成器
type Generator struct {
	size  int
	level qrcode.RecoveryLevel
}

// NewGenerator 创建二维码生成器 size<=0 时使用默认尺寸
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{size: size, level: qrcode.Medium}
}

// VariantLabel 生成变体标签二维码PNG 优先使用后端下发的二维码内容
func (g *Generator) VariantLabel(variant *models.Variant) ([]byte, error) {
	content := variant.QRCode
	if content == "" {
		payload := labelPayload{
			ProductID: variant.ProductID,
			VariantID: variant.ID,
			SKU:       variant.SKU,
		}
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal label payload: %w", err)
		}
		content = string(data)
	}

	png, err := qrcode.Encode(content, g.level, g.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr label: %w", err)
	}
	return png, nil
}
