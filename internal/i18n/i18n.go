package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultLocale = "en"

// messages 文案目录（按 locale -> key）
// 平台返回的拒绝原因优先于这里的兜底文案。
var messages = map[string]map[string]string{
	"en": {
		"error.request_invalid":         "invalid request payload",
		"error.session_not_found":       "checkout session not found or expired",
		"error.product_invalid":         "product not found or unavailable",
		"error.cart_line_not_found":     "cart line not found",
		"error.cart_empty":              "cart is empty",
		"error.quantity_invalid":        "quantity must be at least 1",
		"error.variant_required":        "select product options before adding to cart",
		"error.selection_incomplete":    "select a value for every option",
		"error.variant_not_found":       "no matching variant for the selected options",
		"error.coupon_code_empty":       "enter a coupon code first",
		"error.coupon_code_too_short":   "coupon code is too short",
		"error.coupon_already_applied":  "a coupon is already applied to this order",
		"error.coupon_validate_failed":  "could not validate the coupon, try again",
		"error.coupon_apply_failed":     "could not apply the coupon",
		"error.order_not_found":         "order not found",
		"error.order_not_editable":      "this order can no longer be edited",
		"error.transition_not_allowed":  "status change not allowed from the current status",
		"error.operation_in_flight":     "a request is already in progress",
		"error.checkout_fields_missing": "fill in all required checkout fields",
		"error.order_create_failed":     "could not place the order",
		"error.order_append_failed":     "could not add products to the order",
		"error.order_fetch_failed":      "could not load the order",
		"error.order_update_failed":     "could not update the order",
		"error.catalog_fetch_failed":    "could not load the catalog",
		"error.qr_render_failed":        "could not render the QR label",
		"error.rate_limited":            "too many requests, slow down",
		"error.rate_limit_unavailable":  "rate limiter unavailable",
	},
	"ar": {
		"error.request_invalid":         "طلب غير صالح",
		"error.session_not_found":       "جلسة الدفع غير موجودة أو منتهية",
		"error.product_invalid":         "المنتج غير متوفر",
		"error.cart_line_not_found":     "عنصر السلة غير موجود",
		"error.cart_empty":              "السلة فارغة",
		"error.quantity_invalid":        "الكمية يجب أن تكون 1 على الأقل",
		"error.variant_required":        "اختر خيارات المنتج قبل الإضافة إلى السلة",
		"error.selection_incomplete":    "اختر قيمة لكل خيار",
		"error.variant_not_found":       "لا يوجد تشكيلة مطابقة لهذه الخيارات",
		"error.coupon_code_empty":       "أدخل رمز القسيمة أولاً",
		"error.coupon_code_too_short":   "رمز القسيمة قصير جداً",
		"error.coupon_already_applied":  "تم تطبيق قسيمة على هذا الطلب بالفعل",
		"error.coupon_validate_failed":  "تعذر التحقق من القسيمة، حاول مجدداً",
		"error.coupon_apply_failed":     "تعذر تطبيق القسيمة",
		"error.order_not_found":         "الطلب غير موجود",
		"error.order_not_editable":      "لا يمكن تعديل هذا الطلب",
		"error.transition_not_allowed":  "لا يمكن تغيير الحالة من الوضع الحالي",
		"error.operation_in_flight":     "هناك طلب قيد التنفيذ بالفعل",
		"error.checkout_fields_missing": "أكمل جميع حقول الدفع المطلوبة",
		"error.order_create_failed":     "تعذر إنشاء الطلب",
		"error.order_append_failed":     "تعذر إضافة المنتجات إلى الطلب",
		"error.order_fetch_failed":      "تعذر تحميل الطلب",
		"error.order_update_failed":     "تعذر تحديث الطلب",
		"error.catalog_fetch_failed":    "تعذر تحميل المنتجات",
		"error.qr_render_failed":        "تعذر توليد رمز QR",
		"error.rate_limited":            "طلبات كثيرة جداً، تمهّل",
		"error.rate_limit_unavailable":  "خدمة تحديد المعدل غير متاحة",
	},
}

// T 取 locale 下的文案；缺失时回落到默认语言，再缺失时返回 key 本身
func T(locale, key string) string {
	if catalog, ok := messages[normalize(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[defaultLocale][key]; ok {
		return msg
	}
	return key
}

// ResolveLocale 从请求头解析语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return defaultLocale
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return defaultLocale
	}
	// 只取第一个语言标签的主语言段
	first := strings.Split(header, ",")[0]
	primary := strings.Split(strings.TrimSpace(first), "-")[0]
	if _, ok := messages[normalize(primary)]; ok {
		return normalize(primary)
	}
	return defaultLocale
}

func normalize(locale string) string {
	return strings.ToLower(strings.TrimSpace(locale))
}
