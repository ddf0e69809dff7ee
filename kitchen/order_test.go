package kitchen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortItemsIsStable(t *testing.T) {
	in := []Item{
		{ID: "1", Category: strPtr("Kebaplar")},
		{ID: "2", Category: strPtr("Tatlılar")},
		{ID: "3", Category: strPtr("Et Yemekleri")},
		{ID: "4", Category: strPtr("Soğuk Mezeler")},
		{ID: "5"},
		{ID: "6", Category: strPtr("Biralar")},
		{ID: "7", Category: strPtr("Ara Sıcaklar")},
	}

	sorted := SortItems(in)

	ids := make([]string, 0, len(sorted))
	for _, it := range sorted {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"4", "6", "5", "7", "1", "3", "2"}, ids)
	assert.Equal(t, "1", in[0].ID, "input must not be reordered")
}

func TestElapsedMinutesTruncates(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, 9, ElapsedMinutes(now.Add(-9*time.Minute-30*time.Second), now))
	assert.Equal(t, 0, ElapsedMinutes(now.Add(-59*time.Second), now))
	assert.Equal(t, 10, ElapsedMinutes(now.Add(-10*time.Minute), now))
	assert.Equal(t, 0, ElapsedMinutes(now.Add(time.Minute), now))
}

func TestBuildTicket(t *testing.T) {
	now := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	o := Order{
		ID:          "o1",
		OrderNumber: "A-12",
		TableNumber: strPtr("7"),
		Type:        OrderDineIn,
		Status:      OrderPending,
		CreatedAt:   now.Add(-11 * time.Minute),
		Items: []Item{
			{ID: "dessert", Category: strPtr("Tatlılar"), Status: ItemPending},
			{ID: "cold", Category: strPtr("Soğuk Mezeler"), Status: ItemPending},
		},
	}

	ticket := BuildTicket(o, now, DefaultOverdueAfter)

	require.Len(t, ticket.Lines, 2)
	assert.Equal(t, "cold", ticket.Lines[0].ID)
	assert.Equal(t, ThermalCold, ticket.Lines[0].ThermalClass)
	assert.Equal(t, 8, ticket.Lines[1].PriorityRank)
	assert.Equal(t, 11, ticket.ElapsedMinutes)
	assert.True(t, ticket.Overdue)

	o.Status = OrderReady
	assert.False(t, BuildTicket(o, now, DefaultOverdueAfter).Overdue)
}
