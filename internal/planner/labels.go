package planner

import (
	"fmt"
	"strings"
	"time"
)

const (
	eventDateLayout = "2006-01-02"
	labelDateLayout = "Jan 02"
)

// Fixed period labels used when the event date does not parse.
var fixedTimelineLabels = []string{
	"6–4 Weeks Before",
	"4–2 Weeks Before",
	"1 Week Before",
	"Event Day",
}

// TimelineLabels derives four period-label hints from a YYYY-MM-DD event date:
// three windows ending 28, 14 and 1 days before the event, then the event day.
// Unparseable dates yield the fixed relative labels.
func TimelineLabels(eventDate string) []string {
	d, err := time.Parse(eventDateLayout, strings.TrimSpace(eventDate))
	if err != nil {
		labels := make([]string, len(fixedTimelineLabels))
		copy(labels, fixedTimelineLabels)
		return labels
	}

	window := func(fromDays, toDays int) string {
		return fmt.Sprintf("%s – %s",
			d.AddDate(0, 0, -fromDays).Format(labelDateLayout),
			d.AddDate(0, 0, -toDays).Format(labelDateLayout))
	}

	return []string{
		window(42, 28),
		window(28, 14),
		window(7, 1),
		d.Format(labelDateLayout) + " (Event Day)",
	}
}
