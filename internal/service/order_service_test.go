package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/storefront-console/internal/constants"
	"github.com/storefront-console/internal/models"
)

func TestCanTransitionMatrix(t *testing.T) {
	svc := NewOrderService(&fakeAPI{}, nil)
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusPending, false},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, true},
		{constants.OrderStatusShipped, constants.OrderStatusProcessing, false},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		if got := svc.CanTransition(tc.current, tc.target); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) want %v got %v", tc.current, tc.target, tc.want, got)
		}
	}
}

func TestNextTransitions(t *testing.T) {
	svc := NewOrderService(&fakeAPI{}, nil)
	cases := []struct {
		current string
		want    []string
	}{
		{constants.OrderStatusPending, []string{constants.OrderStatusProcessing, constants.OrderStatusCancelled}},
		{constants.OrderStatusProcessing, []string{constants.OrderStatusShipped, constants.OrderStatusCancelled}},
		{constants.OrderStatusShipped, []string{constants.OrderStatusDelivered, constants.OrderStatusCancelled}},
		{constants.OrderStatusDelivered, nil},
		{constants.OrderStatusCancelled, nil},
	}
	for _, tc := range cases {
		if got := svc.NextTransitions(tc.current); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("NextTransitions(%s) want %v got %v", tc.current, tc.want, got)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	svc := NewOrderService(&fakeAPI{}, nil)
	if !svc.IsTerminal(constants.OrderStatusDelivered) || !svc.IsTerminal(constants.OrderStatusCancelled) {
		t.Fatalf("delivered and cancelled must be terminal")
	}
	for _, status := range []string{constants.OrderStatusPending, constants.OrderStatusProcessing, constants.OrderStatusShipped} {
		if svc.IsTerminal(status) {
			t.Fatalf("%s must not be terminal", status)
		}
	}
}

func TestCanEditComposition(t *testing.T) {
	svc := NewOrderService(&fakeAPI{}, nil)
	editable := map[string]bool{
		constants.OrderStatusPending:    true,
		constants.OrderStatusProcessing: true,
		constants.OrderStatusShipped:    false,
		constants.OrderStatusDelivered:  false,
		constants.OrderStatusCancelled:  false,
	}
	for status, want := range editable {
		if got := svc.CanEditComposition(status); got != want {
			t.Fatalf("CanEditComposition(%s) want %v got %v", status, want, got)
		}
	}
}

func TestTransitionRejectedLocally(t *testing.T) {
	api := &fakeAPI{
		orderFn: func(orderID uint) (*models.Order, error) {
			return &models.Order{ID: orderID, Status: constants.OrderStatusDelivered}, nil
		},
	}
	svc := NewOrderService(api, nil)

	_, err := svc.Transition(context.Background(), 7, constants.OrderStatusCancelled)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
	if len(api.transitionCalls) != 0 {
		t.Fatalf("illegal transition must not reach the platform, got %v", api.transitionCalls)
	}
}

func TestTransitionRefetchesOrder(t *testing.T) {
	status := constants.OrderStatusPending
	api := &fakeAPI{}
	api.orderFn = func(orderID uint) (*models.Order, error) {
		return &models.Order{ID: orderID, Status: status}, nil
	}
	api.transitionFn = func(orderID uint, target string) (*models.Order, error) {
		status = target
		return &models.Order{ID: orderID, Status: target}, nil
	}
	svc := NewOrderService(api, nil)

	order, err := svc.Transition(context.Background(), 7, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected refetched status processing, got %s", order.Status)
	}
	if len(api.transitionCalls) != 1 || api.transitionCalls[0] != constants.OrderStatusProcessing {
		t.Fatalf("unexpected transition calls: %v", api.transitionCalls)
	}
	// 迁移前读一次、迁移后重取一次
	if api.orderCalls != 2 {
		t.Fatalf("expected 2 order fetches around transition, got %d", api.orderCalls)
	}
}

func TestUpdateProductValidation(t *testing.T) {
	api := &fakeAPI{
		orderFn: func(orderID uint) (*models.Order, error) {
			return &models.Order{ID: orderID, Status: constants.OrderStatusShipped}, nil
		},
	}
	svc := NewOrderService(api, nil)

	if _, err := svc.UpdateProduct(context.Background(), 7, 1, nil, 0); !errors.Is(err, ErrQuantityInvalid) {
		t.Fatalf("expected ErrQuantityInvalid, got %v", err)
	}
	if _, err := svc.UpdateProduct(context.Background(), 7, 1, nil, 2); !errors.Is(err, ErrOrderNotEditable) {
		t.Fatalf("expected ErrOrderNotEditable for shipped order, got %v", err)
	}
}

func TestRemoveProductLockedOrder(t *testing.T) {
	api := &fakeAPI{
		orderFn: func(orderID uint) (*models.Order, error) {
			return &models.Order{ID: orderID, Status: constants.OrderStatusCancelled}, nil
		},
	}
	svc := NewOrderService(api, nil)

	if err := svc.RemoveProduct(context.Background(), 7, 1); !errors.Is(err, ErrOrderNotEditable) {
		t.Fatalf("expected ErrOrderNotEditable, got %v", err)
	}
}

func TestGetRejectsZeroOrderID(t *testing.T) {
	svc := NewOrderService(&fakeAPI{}, nil)
	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
