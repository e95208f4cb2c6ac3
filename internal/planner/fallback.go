package planner

import (
	"fmt"

	"neighborly/internal/core"
)

// FallbackIdeas returns the static idea set used when generation fails.
func FallbackIdeas() core.IdeaSet {
	return core.IdeaSet{
		Themes: []string{
			"Outdoor Movie Night",
			"Cultural Food Fair",
			"Neighborhood BBQ",
		},
		Food: []string{
			"Potluck-style shared dishes",
			"Local vendor stalls",
			"Snacks and lemonade stand",
		},
		Activities: []string{
			"Kids’ games and relay races",
			"Open mic or talent show",
			"Community raffle and cleanup crew",
		},
	}
}

// FallbackInvitations fills three fixed invitation templates with the
// request's event type, organizer, date, time and venue.
func FallbackInvitations(req core.PlanningRequest) []core.Invitation {
	base := fmt.Sprintf("%s organized by %s", req.EventType, req.Organizer)

	return []core.Invitation{
		{
			Title: invitationTitle(1),
			Body: fmt.Sprintf("Dear neighbors, you are warmly invited to %s.\n\n"+
				"Date: %s\nTime: %s\nLocation: %s\n\n"+
				"We look forward to celebrating our community together!",
				base, req.EventDate, req.EventTime, req.Venue),
		},
		{
			Title: invitationTitle(2),
			Body: fmt.Sprintf("Please join us for our community %s at %s on %s. "+
				"Festivities begin at %s. Bring family, food, and friends to share.",
				req.EventType, req.Venue, req.EventDate, req.EventTime),
		},
		{
			Title: invitationTitle(3),
			Body: fmt.Sprintf("Celebrate %s with us!\n\nWhen: %s at %s\n"+
				"Where: %s\n\nAll are welcome — let’s make it a great neighborhood gathering!",
				base, req.EventDate, req.EventTime, req.Venue),
		},
	}
}

var fallbackTasks = [][]string{
	{
		"Form volunteer committee",
		"Apply for permits if required",
		"Set event budget & attendance goals",
	},
	{
		"Design and distribute flyers",
		"Confirm potluck sign-ups or food vendors",
		"Plan group activities and entertainment",
	},
	{
		"Finalize equipment rentals (tables, chairs)",
		"Confirm volunteer roles",
		"Purchase supplies",
	},
	{
		"Set up booths, tables, and greeting station",
		"Coordinate food and activity areas",
		"Enjoy the community gathering & cleanup",
	},
}

// FallbackTimeline returns four fixed task blocks labelled with
// TimelineLabels(req.EventDate).
func FallbackTimeline(req core.PlanningRequest) []core.TimelinePeriod {
	labels := TimelineLabels(req.EventDate)

	timeline := make([]core.TimelinePeriod, len(fallbackTasks))
	for i, tasks := range fallbackTasks {
		timeline[i] = core.TimelinePeriod{
			Period: labels[i],
			Tasks:  append([]string(nil), tasks...),
		}
	}
	return timeline
}
