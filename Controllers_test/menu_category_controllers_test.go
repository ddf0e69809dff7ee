package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type categoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	VenueID      string `json:"venue_id"`
	PriorityRank int    `json:"priority_rank"`
	ThermalClass string `json:"thermal_class"`
}

func TestCategoriesCarryClassification(t *testing.T) {
	app := setupApp(t, nil)
	staff := token(t, "staff", "venue-1")

	for _, name := range []string{"Soğuk Mezeler", "Ara Sıcaklar", "Sıcak İçecekler", "Tatlılar"} {
		w := app.do(t, "POST", "/venues/venue-1/categories", staff, map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := app.do(t, "POST", "/venues/venue-1/categories", staff, map[string]string{"name": "Tatlılar"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, "POST", "/venues/venue-1/categories", staff, map[string]string{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, "GET", "/venues/venue-1/categories", token(t, "chef", "venue-1"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []categoryResponse
	decode(t, w, &cats)
	require.Len(t, cats, 4)

	byName := make(map[string]categoryResponse)
	for _, c := range cats {
		byName[c.Name] = c
		assert.Equal(t, "venue-1", c.VenueID)
	}
	assert.Equal(t, 1, byName["Soğuk Mezeler"].PriorityRank)
	assert.Equal(t, "cold", byName["Soğuk Mezeler"].ThermalClass)
	assert.Equal(t, 5, byName["Ara Sıcaklar"].PriorityRank)
	assert.Equal(t, 2, byName["Sıcak İçecekler"].PriorityRank)
	assert.Equal(t, "drink", byName["Sıcak İçecekler"].ThermalClass)
	assert.Equal(t, 8, byName["Tatlılar"].PriorityRank)
	assert.Equal(t, "dessert", byName["Tatlılar"].ThermalClass)

	w = app.do(t, "GET", "/venues/venue-2/categories", token(t, "chef", "venue-2"), nil)
	decode(t, w, &cats)
	assert.Empty(t, cats)
}
