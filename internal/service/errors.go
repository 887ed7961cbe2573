package service

import (
	"errors"
	"fmt"
	"strings"
)

// 服务层业务错误
// Handler 层通过 errors.Is 映射为响应码与文案。
var (
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrProductInvalid       = errors.New("product invalid")
	ErrCartLineNotFound     = errors.New("cart line not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrQuantityInvalid      = errors.New("quantity invalid")
	ErrVariantRequired      = errors.New("variant required for product with options")
	ErrSelectionIncomplete  = errors.New("option selection incomplete")
	ErrVariantNotFound      = errors.New("no matching variant")
	ErrResolveSuperseded    = errors.New("variant lookup superseded")
	ErrCouponCodeEmpty      = errors.New("coupon code empty")
	ErrCouponCodeTooShort   = errors.New("coupon code too short")
	ErrCouponAlreadyApplied = errors.New("coupon already applied to order")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderNotEditable     = errors.New("order composition locked")
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
	ErrOperationInFlight    = errors.New("operation already in flight")
)

// FieldValidationError 结账前置校验失败（缺少必填字段）
// 不触发任何网络请求，直接阻断提交。
type FieldValidationError struct {
	Fields []string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IsFieldValidationError 判断并提取字段校验错误
func IsFieldValidationError(err error) (*FieldValidationError, bool) {
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	return nil, false
}
