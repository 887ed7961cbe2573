package queue

import (
	"encoding/json"
	"testing"

	"github.com/storefront-console/internal/config"
)

func TestDisabledClientEnqueuesAreNoOps(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if client.Enabled() {
		t.Fatal("client should report disabled")
	}
	if err := client.EnqueueCatalogWarm(CatalogWarmPayload{Store: "default"}); err != nil {
		t.Fatalf("disabled catalog warm enqueue should no-op, got %v", err)
	}
	if err := client.EnqueueOrderRefresh(OrderRefreshPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled order refresh enqueue should no-op, got %v", err)
	}

	var nilClient *Client
	if err := nilClient.EnqueueCatalogWarm(CatalogWarmPayload{Store: "default"}); err != nil {
		t.Fatalf("nil client enqueue should no-op, got %v", err)
	}
}

func TestNewCatalogWarmTask(t *testing.T) {
	task, err := NewCatalogWarmTask(CatalogWarmPayload{Store: "main"})
	if err != nil {
		t.Fatalf("NewCatalogWarmTask: %v", err)
	}
	if task.Type() != TaskCatalogWarm {
		t.Fatalf("task type want %s got %s", TaskCatalogWarm, task.Type())
	}
	var payload CatalogWarmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Store != "main" {
		t.Fatalf("payload store want main got %s", payload.Store)
	}
}
