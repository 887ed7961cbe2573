package service

import (
	"errors"
	"testing"

	"github.com/storefront-console/internal/models"
)

func simpleProduct(id uint, price *models.Money) *models.Product {
	return &models.Product{ID: id, Title: "item", Price: price}
}

func optionProduct(id uint) *models.Product {
	return &models.Product{
		ID:    id,
		Title: "shirt",
		Options: []models.Option{
			{ID: 1, Name: "size", Values: []models.OptionValue{{ID: 1, Value: "m"}, {ID: 2, Value: "l"}}},
			{ID: 2, Name: "color", Values: []models.OptionValue{{ID: 3, Value: "red"}, {ID: 4, Value: "blue"}}},
		},
	}
}

func TestAddMergesSameProductAndVariant(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	product := optionProduct(1)
	variant := &models.Variant{ID: 10, ProductID: 1, Price: moneyPtr(15)}

	for i := 0; i < 3; i++ {
		if err := cart.Add(session, product, variant, map[string]string{"size": "m", "color": "red"}); err != nil {
			t.Fatalf("add #%d error: %v", i, err)
		}
	}

	lines := cart.Lines(session)
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddKeepsDistinctVariantsSeparate(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	product := optionProduct(1)

	if err := cart.Add(session, product, &models.Variant{ID: 10, ProductID: 1}, map[string]string{"size": "m", "color": "red"}); err != nil {
		t.Fatalf("add variant 10 error: %v", err)
	}
	if err := cart.Add(session, product, &models.Variant{ID: 11, ProductID: 1}, map[string]string{"size": "l", "color": "red"}); err != nil {
		t.Fatalf("add variant 11 error: %v", err)
	}

	lines := cart.Lines(session)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines for distinct variants, got %d", len(lines))
	}
}

func TestAddRequiresVariantForOptionProduct(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)

	err := cart.Add(session, optionProduct(1), nil, nil)
	if !errors.Is(err, ErrVariantRequired) {
		t.Fatalf("expected ErrVariantRequired, got %v", err)
	}
	if len(cart.Lines(session)) != 0 {
		t.Fatalf("cart should stay empty after rejected add")
	}
}

func TestAdjustQuantityRemovesLineAtZero(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	if err := cart.Add(session, simpleProduct(1, moneyPtr(5)), nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	if err := cart.AdjustQuantity(session, 0, 2); err != nil {
		t.Fatalf("increment error: %v", err)
	}
	if lines := cart.Lines(session); lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}

	if err := cart.AdjustQuantity(session, 0, -3); err != nil {
		t.Fatalf("decrement error: %v", err)
	}
	if lines := cart.Lines(session); len(lines) != 0 {
		t.Fatalf("expected line removed at zero, got %d lines", len(lines))
	}
}

func TestAdjustQuantityClampsBelowZero(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	if err := cart.Add(session, simpleProduct(1, moneyPtr(5)), nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	if err := cart.AdjustQuantity(session, 0, -10); err != nil {
		t.Fatalf("adjust error: %v", err)
	}
	if lines := cart.Lines(session); len(lines) != 0 {
		t.Fatalf("expected removal for clamped quantity, got %d lines", len(lines))
	}
}

func TestAdjustQuantityUnknownIndex(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	if err := cart.AdjustQuantity(session, 5, 1); !errors.Is(err, ErrCartLineNotFound) {
		t.Fatalf("expected ErrCartLineNotFound, got %v", err)
	}
}

func TestTotalPrefersVariantPriceOverProductPrice(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)

	// 规格价优先于商品价
	withVariantPrice := optionProduct(1)
	if err := cart.Add(session, withVariantPrice, &models.Variant{ID: 10, ProductID: 1, Price: moneyPtr(12)}, map[string]string{"size": "m", "color": "red"}); err != nil {
		t.Fatalf("add error: %v", err)
	}
	if err := cart.AdjustQuantity(session, 0, 1); err != nil {
		t.Fatalf("adjust error: %v", err)
	}

	// 规格无价时回落商品价
	fallback := optionProduct(2)
	fallback.Price = moneyPtr(7)
	if err := cart.Add(session, fallback, &models.Variant{ID: 20, ProductID: 2}, map[string]string{"size": "l", "color": "blue"}); err != nil {
		t.Fatalf("add error: %v", err)
	}

	// 两者都无价时按 0 计
	free := simpleProduct(3, nil)
	if err := cart.Add(session, free, nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	total := cart.Total(session)
	if total.String() != "31.00" {
		t.Fatalf("expected total 31.00, got %s", total.String())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	cart := NewCartService()
	session := testSession(0)
	if err := cart.Add(session, simpleProduct(1, moneyPtr(5)), nil, nil); err != nil {
		t.Fatalf("add error: %v", err)
	}

	cart.Clear(session)
	if lines := cart.Lines(session); len(lines) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(lines))
	}
	if total := cart.Total(session); total.String() != "0.00" {
		t.Fatalf("expected zero total after clear, got %s", total.String())
	}
}
