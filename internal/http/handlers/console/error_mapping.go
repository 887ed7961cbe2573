package console

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/storefront-console/internal/http/response"
	"github.com/storefront-console/internal/i18n"
	"github.com/storefront-console/internal/platform"
	"github.com/storefront-console/internal/service"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	if fieldErr, ok := service.IsFieldValidationError(err); ok {
		locale := i18n.ResolveLocale(c)
		response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.checkout_fields_missing"), gin.H{
			"missing_fields": fieldErr.Fields,
		})
		return
	}
	// 平台返回的业务错误直接透出其文案
	if msg := platform.RemoteMessage(err); msg != "" {
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	if errors.Is(err, platform.ErrRequestFailed) || errors.Is(err, platform.ErrResponseInvalid) {
		respondError(c, response.CodeBadGateway, fallbackKey, err)
		return
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.product_invalid"},
	{target: service.ErrVariantRequired, code: response.CodeBadRequest, key: "error.variant_required"},
	{target: service.ErrCartLineNotFound, code: response.CodeNotFound, key: "error.cart_line_not_found"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeNotFound, key: "error.product_invalid"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, key: "error.variant_not_found"},
}

var variantResolveErrorRules = []mappedHandlerError{
	{target: service.ErrProductInvalid, code: response.CodeBadRequest, key: "error.product_invalid"},
	{target: service.ErrSelectionIncomplete, code: response.CodeBadRequest, key: "error.selection_incomplete"},
	{target: service.ErrVariantNotFound, code: response.CodeNotFound, key: "error.variant_not_found"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponCodeEmpty, code: response.CodeBadRequest, key: "error.coupon_code_empty"},
	{target: service.ErrCouponCodeTooShort, code: response.CodeBadRequest, key: "error.coupon_code_too_short"},
	{target: service.ErrCouponAlreadyApplied, code: response.CodeConflict, key: "error.coupon_already_applied"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotEditable, code: response.CodeConflict, key: "error.order_not_editable"},
}

var checkoutCommonErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrOperationInFlight, code: response.CodeConflict, key: "error.operation_in_flight"},
}

var checkoutAppendExtraErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotEditable, code: response.CodeConflict, key: "error.order_not_editable"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderNotEditable, code: response.CodeConflict, key: "error.order_not_editable"},
	{target: service.ErrTransitionNotAllowed, code: response.CodeConflict, key: "error.transition_not_allowed"},
	{target: service.ErrQuantityInvalid, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrCartLineNotFound, code: response.CodeNotFound, key: "error.cart_line_not_found"},
}

func respondCatalogError(c *gin.Context, err error) {
	respondWithMappedError(c, err, catalogErrorRules, response.CodeBadGateway, "error.catalog_fetch_failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.order_update_failed")
}

func respondVariantResolveError(c *gin.Context, err error) {
	respondWithMappedError(c, err, variantResolveErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
}

func respondCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "error.coupon_apply_failed")
}

func respondCheckoutCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutCommonErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondCheckoutAppendError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(checkoutCommonErrorRules, checkoutAppendExtraErrorRules), response.CodeInternal, "error.order_append_failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.order_update_failed")
}
