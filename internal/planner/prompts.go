package planner

import (
	"fmt"
	"strings"

	"neighborly/internal/core"
)

// Sampling temperatures per content kind
const (
	IdeasTemperature       float32 = 0.7
	InvitationsTemperature float32 = 0.7
	TimelineTemperature    float32 = 0.6
)

// Prompt is a system instruction plus the user payload for one model call.
type Prompt struct {
	System string
	User   string
}

// BuildIdeasPrompt asks for 3-6 ideas in each of the three idea categories.
func BuildIdeasPrompt(req core.PlanningRequest) Prompt {
	system := "You are a neighborhood event planning assistant. " +
		"Respond ONLY as strict JSON with keys: Themes, Food, Activities. " +
		"Each value must be an array of 3-6 short, practical ideas. " +
		"Keep suggestions family-friendly, inclusive, and affordable. " +
		"Encourage collaboration (potlucks, cultural sharing, talent shows, cleanup drives). " +
		"No prose, no markdown, no extra keys."

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Event type: %s\n", req.EventType))
	user.WriteString(fmt.Sprintf("Expected neighbors: %d\n", req.Guests))
	user.WriteString(fmt.Sprintf("Budget: %s\n", req.Budget))
	user.WriteString(fmt.Sprintf("Location: %s\n", req.Location))
	user.WriteString("Return JSON with 3 arrays: Themes, Food, Activities.")

	return Prompt{System: system, User: user.String()}
}

// BuildInvitationsPrompt asks for exactly three plain-text invitations.
func BuildInvitationsPrompt(req core.PlanningRequest) Prompt {
	system := "You write concise community invitation messages. " +
		"Return ONLY JSON with key 'invitations' which is an array of exactly 3 objects. " +
		"Each object has 'title' and 'body' (plain text, no markdown)."

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Generate 3 friendly, community-focused invitations for a %s.\n", req.EventType))
	user.WriteString(fmt.Sprintf("Organized by: %s\n", req.Organizer))
	user.WriteString(fmt.Sprintf("Date: %s\n", req.EventDate))
	user.WriteString(fmt.Sprintf("Time: %s\n", req.EventTime))
	user.WriteString(fmt.Sprintf("Location: %s\n", req.Venue))
	user.WriteString(fmt.Sprintf("Tone: %s\n", req.Tone))
	user.WriteString("Make them warm and inclusive, suitable for neighbors. Return JSON only.")

	return Prompt{System: system, User: user.String()}
}

// BuildTimelinePrompt asks for 4-6 preparation periods and passes the derived
// period labels as hints.
func BuildTimelinePrompt(req core.PlanningRequest) Prompt {
	system := "You are a community event timeline planner. " +
		"Return ONLY JSON with key 'timeline' which is an array of 4-6 objects. " +
		"Each object has 'period' (string label) and 'tasks' (array of 3-6 short items). " +
		"No extra text, no markdown."

	labels := TimelineLabels(req.EventDate)
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Generate a planning timeline for a neighborhood/community event: %s, on %s.\n", req.EventType, req.EventDate))
	user.WriteString("Include early tasks (permissions, flyers, volunteer committees), ")
	user.WriteString("mid-term tasks (confirm food, activities, vendors), and event-day setup.\n")
	user.WriteString(fmt.Sprintf("Suggested period labels: [%s]\n", strings.Join(quoted, ", ")))
	user.WriteString("Return JSON only.")

	return Prompt{System: system, User: user.String()}
}
