package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusPtr(s OrderStatus) *OrderStatus { return &s }

func TestMergePatchKeepsItemProgress(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	// patch lama: i1 ready, belum terkirim
	earlier := Patch{
		OrderID:   "order-1",
		Items:     []ItemRecord{{ID: "i1", Status: "ready"}, {ID: "i2", Status: "pending"}},
		Status:    statusPtr(OrderPreparing),
		UpdatedAt: t0.Add(time.Minute),
	}
	// patch baru dibangun dari row lama: i2 ready, i1 masih pending
	later := Patch{
		OrderID:       "order-1",
		Items:         []ItemRecord{{ID: "i1", Status: "pending"}, {ID: "i2", Status: "ready"}},
		Status:        statusPtr(OrderPreparing),
		UpdatedAt:     t0.Add(2 * time.Minute),
		BaseUpdatedAt: t0,
	}
	require.False(t, later.BuiltOn(earlier))

	merged := MergePatch(earlier, later)
	require.Len(t, merged.Items, 2)
	assert.Equal(t, "ready", merged.Items[0].Status)
	assert.Equal(t, "ready", merged.Items[1].Status)
	assert.Equal(t, OrderReady, *merged.Status)
	assert.Equal(t, later.UpdatedAt, merged.UpdatedAt)
}

func TestMergePatchTerminalStatus(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC)
	served := Patch{Items: []ItemRecord{{ID: "i1", Status: "ready"}}, Status: statusPtr(OrderServed), UpdatedAt: t0.Add(time.Minute)}
	active := Patch{Items: []ItemRecord{{ID: "i1", Status: "ready"}}, Status: statusPtr(OrderReady), UpdatedAt: t0.Add(2 * time.Minute)}

	assert.Equal(t, OrderServed, *MergePatch(served, active).Status, "served is not undone by a later active patch")
	assert.Equal(t, OrderServed, *MergePatch(active, served).Status)

	cancelled := Patch{Status: statusPtr(OrderCancelled), UpdatedAt: t0.Add(3 * time.Minute)}
	assert.Equal(t, OrderCancelled, *MergePatch(served, cancelled).Status)
}

func TestRecordWithPatch(t *testing.T) {
	rec := mezeKebapTatli(time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC))
	at := rec.CreatedAt.Add(time.Minute)
	items := append([]ItemRecord(nil), rec.Items...)
	items[0].Status = "ready"

	got := rec.WithPatch(Patch{Items: items, Status: statusPtr(OrderPreparing), UpdatedAt: at})
	assert.Equal(t, "ready", got.Items[0].Status)
	assert.Equal(t, "pending", rec.Items[0].Status, "original record untouched")
	assert.Equal(t, "preparing", got.Status)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, at, *got.UpdatedAt)
}
