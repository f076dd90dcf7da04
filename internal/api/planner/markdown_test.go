package planner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

func TestRenderMarkdown(t *testing.T) {
	km := 1.2
	mins := 15
	it := &types.Itinerary{
		ID:          uuid.New(),
		Destination: "Algiers",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-02",
		Mode:        types.ModeFoot,
		Days: []types.Day{
			{
				Date: "2025-05-01",
				Items: []types.POI{
					{Name: "Grande Poste", MapURL: "https://www.openstreetmap.org/?mlat=36.7753&mlon=3.0588#map=15/36.7753/3.0588", DistanceKm: &km, DurationMin: &mins},
					{Name: "Jardin d'Essai", MapURL: "https://www.openstreetmap.org/?mlat=36.7470&mlon=3.0760#map=15/36.7470/3.0760", DistanceKm: &km},
				},
			},
		},
		Links: types.Links{Flights: "https://flights.example", Hotels: "https://hotels.example"},
		Notes: "two stops",
	}

	md := RenderMarkdown(it)

	assert.Contains(t, md, "# Algiers itinerary")
	assert.Contains(t, md, "**2025-05-01 to 2025-05-02** (mode: **foot**)")
	assert.Contains(t, md, "## 2025-05-01")
	assert.Contains(t, md, "1. **Grande Poste**")
	assert.Contains(t, md, "~1.2 km, 15 min on foot")
	assert.Contains(t, md, "[Map](https://www.openstreetmap.org/?mlat=36.7753&mlon=3.0588#map=15/36.7753/3.0588)")
	// No duration renders distance only.
	assert.Contains(t, md, "~1.2 km on foot")
	assert.Contains(t, md, "- [Flights](https://flights.example)")
	assert.Contains(t, md, "- [Hotels](https://hotels.example)")
	assert.Contains(t, md, "> two stops")
}

func TestRenderMarkdown_EmptyItinerary(t *testing.T) {
	it := &types.Itinerary{
		Destination: "Atlantis",
		StartDate:   "2025-05-01",
		EndDate:     "2025-05-03",
		Mode:        types.ModeFoot,
		Days:        []types.Day{},
		Links:       types.Links{Flights: "f", Hotels: "h"},
		Notes:       "Could not locate the city center for your destination.",
	}
	md := RenderMarkdown(it)
	assert.Contains(t, md, "# Atlantis itinerary")
	assert.NotContains(t, md, "## 2025-05-01")
	assert.Contains(t, md, "Could not locate the city center")
}
