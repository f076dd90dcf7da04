package planner

import (
	"fmt"
	"strings"

	"github.com/wanderplan/go-trip-planner/internal/types"
)

// RenderMarkdown formats an itinerary as a Markdown document suitable for
// saving or pasting into notes.
func RenderMarkdown(it *types.Itinerary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s itinerary\n\n", it.Destination)
	fmt.Fprintf(&b, "**%s to %s** (mode: **%s**)\n", it.StartDate, it.EndDate, it.Mode)

	for _, day := range it.Days {
		fmt.Fprintf(&b, "\n## %s\n\n", day.Date)
		for i, item := range day.Items {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, item.Name)
			switch {
			case item.DistanceKm != nil && item.DurationMin != nil:
				fmt.Fprintf(&b, "   - ~%v km, %d min on %s\n", *item.DistanceKm, *item.DurationMin, it.Mode)
			case item.DistanceKm != nil:
				fmt.Fprintf(&b, "   - ~%v km on %s\n", *item.DistanceKm, it.Mode)
			}
			fmt.Fprintf(&b, "   - [Map](%s)\n", item.MapURL)
		}
	}

	b.WriteString("\n## Bookings\n\n")
	fmt.Fprintf(&b, "- [Flights](%s)\n", it.Links.Flights)
	fmt.Fprintf(&b, "- [Hotels](%s)\n", it.Links.Hotels)

	if it.Notes != "" {
		fmt.Fprintf(&b, "\n> %s\n", it.Notes)
	}
	return b.String()
}
