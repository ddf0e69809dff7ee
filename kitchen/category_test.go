package kitchen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestClassifyPriorityRank(t *testing.T) {
	tests := []struct {
		category *string
		want     int
	}{
		{strPtr("Soğuk Mezeler"), 1},
		{strPtr("Soğuk İçecekler"), 1},
		{strPtr("Biralar"), 1},
		{strPtr("Sıcak İçecekler"), 2},
		{strPtr("Salatalar"), 2},
		{strPtr("Çorbalar"), 3},
		{strPtr("Sıcak Mezeler"), 4},
		{strPtr("Ara Sıcaklar"), 5},
		{strPtr("Pizzalar"), 6},
		{strPtr("Makarnalar"), 6},
		{strPtr("Et Yemekleri"), 7},
		{strPtr("Kebaplar"), 7},
		{strPtr("Deniz Ürünleri"), 7},
		{strPtr("Tavuk Yemekleri"), 7},
		{strPtr("Tatlılar"), 8},
		{strPtr("Dondurma"), 8},
		{strPtr("Chef's Specials"), DefaultPriorityRank},
		{strPtr("   "), DefaultPriorityRank},
		{nil, DefaultPriorityRank},
	}

	for _, tt := range tests {
		name := "<nil>"
		if tt.category != nil {
			name = *tt.category
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.category).PriorityRank)
		})
	}
}

func TestClassifyThermalClass(t *testing.T) {
	assert.Equal(t, ThermalDrink, ClassifyName("Soğuk İçecekler").ThermalClass)
	assert.Equal(t, ThermalDrink, ClassifyName("Rakı").ThermalClass)
	assert.Equal(t, ThermalDrink, ClassifyName("Viski").ThermalClass)
	assert.Equal(t, ThermalCold, ClassifyName("Soğuk Mezeler").ThermalClass)
	assert.Equal(t, ThermalCold, ClassifyName("Salatalar").ThermalClass)
	assert.Equal(t, ThermalDessert, ClassifyName("Tatlılar").ThermalClass)
	assert.Equal(t, ThermalHot, ClassifyName("Kebaplar").ThermalClass)
	assert.Equal(t, ThermalHot, Classify(nil).ThermalClass)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, 7, ClassifyName("KEBAPLAR").PriorityRank)
	assert.Equal(t, 8, ClassifyName("TATLILAR").PriorityRank)
	assert.Equal(t, 1, ClassifyName("SOĞUK MEZELER").PriorityRank)
}
