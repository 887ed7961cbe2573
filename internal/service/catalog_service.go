package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-console/internal/cache"
	"github.com/storefront-console/internal/logger"
	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

const defaultCatalogCacheTTL = time.Minute

// CatalogService 目录服务
// 商品、选项、规格、库存均为平台数据的只读投影，按店铺短时缓存。
type CatalogService struct {
	api      platform.API
	cacheTTL time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(api platform.API, cacheTTLSeconds int) *CatalogService {
	ttl := defaultCatalogCacheTTL
	if cacheTTLSeconds > 0 {
		ttl = time.Duration(cacheTTLSeconds) * time.Second
	}
	return &CatalogService{api: api, cacheTTL: ttl}
}

func catalogCacheKey(store string, categoryID uint) string {
	return fmt.Sprintf("catalog:%s:%d", store, categoryID)
}

// Products 获取店铺商品列表（含选项与规格，优先缓存）
func (s *CatalogService) Products(ctx context.Context, store string, categoryID uint) ([]models.Product, error) {
	store = strings.TrimSpace(store)
	if store == "" {
		return nil, ErrProductInvalid
	}

	key := catalogCacheKey(store, categoryID)
	var cached []models.Product
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("catalog_cache_read_failed", "store", store, "error", err)
	}
	if hit {
		return cached, nil
	}

	products, err := s.api.Products(ctx, store, categoryID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, key, products, s.cacheTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "store", store, "error", err)
	}
	return products, nil
}

// Product 按 ID 获取单个商品
func (s *CatalogService) Product(ctx context.Context, store string, productID uint) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductInvalid
	}
	products, err := s.Products(ctx, store, 0)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductInvalid
}

// Variant 在店铺目录内按 ID 查找规格（用于二维码标签等场景）
func (s *CatalogService) Variant(ctx context.Context, store string, variantID uint) (*models.Variant, error) {
	if variantID == 0 {
		return nil, ErrVariantNotFound
	}
	products, err := s.Products(ctx, store, 0)
	if err != nil {
		return nil, err
	}
	for i := range products {
		for j := range products[i].Variants {
			if products[i].Variants[j].ID == variantID {
				return &products[i].Variants[j], nil
			}
		}
	}
	return nil, ErrVariantNotFound
}

// PaymentMethods 读取店铺启用的支付方式（仅读取）
func (s *CatalogService) PaymentMethods(ctx context.Context, store string) ([]models.PaymentMethod, error) {
	store = strings.TrimSpace(store)
	if store == "" {
		return nil, ErrProductInvalid
	}
	return s.api.PaymentMethods(ctx, store)
}

// InvalidateStore 失效店铺的目录缓存
func (s *CatalogService) InvalidateStore(ctx context.Context, store string) {
	// 分类维度键未知，逐一删除成本高；只处理全量键，分类键靠 TTL 过期
	if err := cache.Delete(ctx, catalogCacheKey(store, 0)); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "store", store, "error", err)
	}
}
