package kitchen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func items(statuses ...ItemStatus) []Item {
	out := make([]Item, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, Item{ID: string(rune('a' + i)), Name: "x", Quantity: 1, Status: s})
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  OrderStatus
	}{
		{"all pending", items(ItemPending, ItemPending), OrderPending},
		{"one preparing", items(ItemPending, ItemPreparing), OrderPreparing},
		{"all preparing", items(ItemPreparing, ItemPreparing), OrderPreparing},
		{"some ready", items(ItemReady, ItemPreparing), OrderPreparing},
		// sudah ada yang ready, jadi order tidak kembali ke pending
		{"ready and pending without preparing counts as preparing", items(ItemReady, ItemPending, ItemPending), OrderPreparing},
		{"all ready", items(ItemReady, ItemReady, ItemReady), OrderReady},
		{"single ready", items(ItemReady), OrderReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.items))
		})
	}
}

func TestAggregateIgnoresItemOrder(t *testing.T) {
	assert.Equal(t, Aggregate(items(ItemReady, ItemPreparing, ItemPending)),
		Aggregate(items(ItemPending, ItemReady, ItemPreparing)))
}

func TestOrderStatusActive(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady} {
		assert.True(t, s.Active(), s)
	}
	for _, s := range []OrderStatus{OrderServed, OrderCompleted, OrderCancelled} {
		assert.False(t, s.Active(), s)
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("in_progress").Valid())
}
