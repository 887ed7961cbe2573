package service

import (
	"testing"
	"time"

	"github.com/storefront-console/internal/constants"
)

func TestSessionCreateAndGet(t *testing.T) {
	svc := NewSessionService(30)
	created := svc.Create("default", 9)
	if created.ID == "" {
		t.Fatal("session id should not be empty")
	}
	if created.OrderID != 9 || created.Store != "default" {
		t.Fatalf("unexpected session %+v", created)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Fatal("Get should return the same session instance")
	}

	if _, err := svc.Get("no-such-session"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionCloseRemovesAndClearsCart(t *testing.T) {
	svc := NewSessionService(30)
	session := svc.Create("default", 0)

	cart := NewCartService()
	if err := cart.Add(session, simpleProduct(1, moneyPtr(9)), nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	svc.Close(session.ID)
	if _, err := svc.Get(session.ID); err != ErrSessionNotFound {
		t.Fatalf("closed session should be gone, got %v", err)
	}
	if lines := cart.Lines(session); len(lines) != 0 {
		t.Fatalf("cart should be cleared on close, got %d lines", len(lines))
	}
}

func TestSessionPendingOpGuard(t *testing.T) {
	session := NewSessionService(30).Create("default", 0)

	if !session.beginOp(constants.PendingOpPlaceOrder) {
		t.Fatal("first beginOp should succeed")
	}
	if session.beginOp(constants.PendingOpPlaceOrder) {
		t.Fatal("second beginOp for the same op should be rejected")
	}
	ops := session.PendingOps()
	if len(ops) != 1 || ops[0] != constants.PendingOpPlaceOrder {
		t.Fatalf("unexpected pending ops %v", ops)
	}

	session.endOp(constants.PendingOpPlaceOrder)
	if len(session.PendingOps()) != 0 {
		t.Fatal("endOp should clear the pending marker")
	}
	if !session.beginOp(constants.PendingOpPlaceOrder) {
		t.Fatal("beginOp should succeed again after endOp")
	}
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	svc := NewSessionService(30)
	fresh := svc.Create("default", 0)
	stale := svc.Create("default", 0)

	stale.mu.Lock()
	stale.updatedAt = time.Now().Add(-time.Hour)
	stale.mu.Unlock()

	if removed := svc.Sweep(); removed != 1 {
		t.Fatalf("expected 1 removed session, got %d", removed)
	}
	if _, err := svc.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session should survive sweep: %v", err)
	}
	if _, err := svc.Get(stale.ID); err != ErrSessionNotFound {
		t.Fatalf("stale session should be swept, got %v", err)
	}
}
