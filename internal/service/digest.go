package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Pranali0315/NomadHelp/internal/model"
)

// formatDigest renders the human-readable text companion of a report.
// Section order is fixed: header, description, weather, events, cuisine.
// Sections absent from the report are skipped.
func formatDigest(loc *model.ResolvedLocation, report *model.TravelReport) string {
	var b strings.Builder

	b.WriteString("🌍 *" + loc.Name + "*")
	if loc.Country != "" && loc.Name != loc.Country {
		b.WriteString(" (" + loc.Country + ")")
	}

	if report.Description != "" {
		b.WriteString("\n📍 " + report.Description)
	}

	if report.Weather != nil {
		temp := strconv.FormatFloat(report.Weather.Temp, 'f', -1, 64)
		fmt.Fprintf(&b, "\n☀️ *Weather*: %s°C, %s", temp, report.Weather.Conditions)
	}

	if len(report.Events) > 0 {
		b.WriteString("\n🎟️ *Events*:")
		for _, e := range report.Events {
			venue := ""
			if e.Venue != "" {
				venue = " at " + e.Venue
			}
			fmt.Fprintf(&b, "\n• %s%s (%s)", e.Name, venue, e.Date)
		}
	}

	if len(report.Dishes) > 0 {
		b.WriteString("\n🍽️ *Local Cuisine*:")
		for _, d := range report.Dishes {
			b.WriteString("\n• " + d.Name)
		}
	}

	return b.String()
}
