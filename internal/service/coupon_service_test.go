package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storefront-console/internal/models"
	"github.com/storefront-console/internal/platform"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newCouponFixture(api *fakeAPI, debounceMS int) (*CouponService, *Session) {
	orders := NewOrderService(api, nil)
	return NewCouponService(api, orders, debounceMS, 2), testSession(0)
}

func TestDebounceCollapsesKeystrokes(t *testing.T) {
	var lastCode string
	api := &fakeAPI{
		validateCouponFn: func(code string, orderTotal models.Money) (*platform.CouponValidation, error) {
			lastCode = code
			return &platform.CouponValidation{Valid: true}, nil
		},
	}
	svc, session := newCouponFixture(api, 30)

	// 连续键入，只有最终值应触发一次校验
	for _, code := range []string{"SA", "SAV", "SAVE", "SAVE10"} {
		if err := svc.ValidateAsync(session, code, models.NewMoneyFromFloat(100), 0); err != nil {
			t.Fatalf("input %q error: %v", code, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, "debounced validation", func() bool {
		return svc.ValidationState(session).Checked
	})

	if _, calls, _, _ := api.snapshotCalls(); calls != 1 {
		t.Fatalf("expected exactly 1 validation call, got %d", calls)
	}
	if lastCode != "SAVE10" {
		t.Fatalf("expected final code SAVE10 to be validated, got %q", lastCode)
	}
	state := svc.ValidationState(session)
	if !state.Valid {
		t.Fatalf("expected valid result, got %+v", state)
	}
}

func TestDebouncedValidationUsesLiveCartTotal(t *testing.T) {
	var gotTotal string
	api := &fakeAPI{
		validateCouponFn: func(code string, orderTotal models.Money) (*platform.CouponValidation, error) {
			gotTotal = orderTotal.String()
			return &platform.CouponValidation{Valid: true}, nil
		},
	}
	svc, session := newCouponFixture(api, 60)

	cart := NewCartService()
	if err := cart.Add(session, simpleProduct(1, moneyPtr(10)), nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	if err := svc.ValidateAsync(session, "SAVE10", cart.Total(session), 0); err != nil {
		t.Fatalf("input error: %v", err)
	}
	// 防抖窗口内购物车继续变动，校验必须用触发时刻的总额
	if err := cart.Add(session, simpleProduct(2, moneyPtr(10)), nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	waitFor(t, "debounced validation", func() bool {
		return svc.ValidationState(session).Checked
	})
	if gotTotal != "20.00" {
		t.Fatalf("expected live total 20.00 to be validated, got %s", gotTotal)
	}
}

func TestShortCodeSkipsLookup(t *testing.T) {
	api := &fakeAPI{}
	svc, session := newCouponFixture(api, 10)

	if err := svc.ValidateAsync(session, "A", models.NewMoneyFromFloat(50), 0); !errors.Is(err, ErrCouponCodeTooShort) {
		t.Fatalf("expected ErrCouponCodeTooShort, got %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if _, calls, _, _ := api.snapshotCalls(); calls != 0 {
		t.Fatalf("short code must not hit the platform, got %d calls", calls)
	}
	if state := svc.ValidationState(session); state.Checked || state.Validating {
		t.Fatalf("short code should clear validation state, got %+v", state)
	}
}

func TestEmptyCodeClearsState(t *testing.T) {
	api := &fakeAPI{}
	svc, session := newCouponFixture(api, 10)

	if err := svc.ValidateAsync(session, "SAVE10", models.NewMoneyFromFloat(50), 0); err != nil {
		t.Fatalf("input error: %v", err)
	}
	waitFor(t, "validation", func() bool { return svc.ValidationState(session).Checked })

	if err := svc.ValidateAsync(session, "", models.NewMoneyFromFloat(50), 0); err != nil {
		t.Fatalf("clearing input should not error, got %v", err)
	}
	state := svc.ValidationState(session)
	if state.Checked || state.Valid || state.Code != "" {
		t.Fatalf("expected cleared state, got %+v", state)
	}
}

func TestInvalidCouponMessageSurfaced(t *testing.T) {
	api := &fakeAPI{
		validateCouponFn: func(code string, orderTotal models.Money) (*platform.CouponValidation, error) {
			return &platform.CouponValidation{Valid: false, Message: "coupon expired"}, nil
		},
	}
	svc, session := newCouponFixture(api, 10)

	if err := svc.ValidateAsync(session, "OLD42", models.NewMoneyFromFloat(80), 0); err != nil {
		t.Fatalf("input error: %v", err)
	}
	waitFor(t, "validation", func() bool { return svc.ValidationState(session).Checked })

	state := svc.ValidationState(session)
	if state.Valid {
		t.Fatalf("expected invalid result")
	}
	if state.Message != "coupon expired" {
		t.Fatalf("expected platform message surfaced, got %q", state.Message)
	}
}

func TestApplyRejectedWhenOrderAlreadyHasCoupon(t *testing.T) {
	api := &fakeAPI{
		orderFn: func(orderID uint) (*models.Order, error) {
			return &models.Order{
				ID:      orderID,
				Status:  "pending",
				Coupons: []models.Coupon{{ID: 1, Code: "SAVE10"}},
			}, nil
		},
	}
	orders := NewOrderService(api, nil)
	svc := NewCouponService(api, orders, 10, 2)

	_, err := svc.Apply(context.Background(), 7, "EXTRA5", models.NewMoneyFromFloat(100))
	if !errors.Is(err, ErrCouponAlreadyApplied) {
		t.Fatalf("expected ErrCouponAlreadyApplied, got %v", err)
	}
	if api.applyCouponCalls != 0 {
		t.Fatalf("apply must not reach the platform, got %d calls", api.applyCouponCalls)
	}
}

func TestApplyRejectedWhenOrderNotEditable(t *testing.T) {
	api := &fakeAPI{
		orderFn: func(orderID uint) (*models.Order, error) {
			return &models.Order{ID: orderID, Status: "shipped"}, nil
		},
	}
	orders := NewOrderService(api, nil)
	svc := NewCouponService(api, orders, 10, 2)

	_, err := svc.Apply(context.Background(), 7, "SAVE10", models.NewMoneyFromFloat(100))
	if !errors.Is(err, ErrOrderNotEditable) {
		t.Fatalf("expected ErrOrderNotEditable, got %v", err)
	}
}

func TestApplySucceedsOnce(t *testing.T) {
	api := &fakeAPI{}
	orders := NewOrderService(api, nil)
	svc := NewCouponService(api, orders, 10, 2)

	redemptions, err := svc.Apply(context.Background(), 7, "SAVE10", models.NewMoneyFromFloat(100))
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if len(redemptions) != 1 || redemptions[0].OrderID != 7 {
		t.Fatalf("unexpected redemptions: %+v", redemptions)
	}
}
