package core

import "time"

// Kind identifies one of the generated content kinds.
type Kind string

const (
	KindIdeas       Kind = "ideas"
	KindInvitations Kind = "invitations"
	KindTimeline    Kind = "timeline"
)

// Kinds returns all content kinds in the order they are presented.
func Kinds() []Kind {
	return []Kind{KindIdeas, KindInvitations, KindTimeline}
}

// Default values applied when the planning form leaves a field blank.
const (
	DefaultEventType = "Block Party"
	DefaultGuests    = 50
	DefaultBudget    = "Moderate"
	DefaultTone      = "casual"
)

// PlanningRequest carries the parameters collected from the planning form.
type PlanningRequest struct {
	EventType string `json:"event_type"` // Kind of event (e.g., "Block Party")
	Guests    int    `json:"guests"`     // Expected number of guests
	Budget    string `json:"budget"`     // Budget label (e.g., "Moderate")
	Location  string `json:"location"`   // Free-text location, may be empty
	Organizer string `json:"organizer"`  // Host or organizing group
	EventDate string `json:"event_date"` // Expected as YYYY-MM-DD, not validated
	EventTime string `json:"event_time"` // Free-text time
	Venue     string `json:"venue"`      // Free-text venue
	Tone      string `json:"tone"`       // Tone for invitations (e.g., "casual")
}

// WithDefaults returns a copy of the request with blank fields defaulted.
// Guests below zero are reset to DefaultGuests.
func (r PlanningRequest) WithDefaults() PlanningRequest {
	if r.EventType == "" {
		r.EventType = DefaultEventType
	}
	if r.Guests < 0 {
		r.Guests = DefaultGuests
	}
	if r.Budget == "" {
		r.Budget = DefaultBudget
	}
	if r.Tone == "" {
		r.Tone = DefaultTone
	}
	return r
}

// Idea category names, also used as JSON keys in model responses.
const (
	CategoryThemes     = "Themes"
	CategoryFood       = "Food"
	CategoryActivities = "Activities"
)

// MaxIdeasPerCategory bounds each IdeaSet category.
const MaxIdeasPerCategory = 6

// IdeaSet holds short suggestions grouped by fixed category.
type IdeaSet struct {
	Themes     []string `json:"Themes"`
	Food       []string `json:"Food"`
	Activities []string `json:"Activities"`
}

// IdeaCategory is a named slice of an IdeaSet, used for ordered rendering.
type IdeaCategory struct {
	Name  string
	Items []string
}

// Categories returns the three categories in presentation order.
func (s IdeaSet) Categories() []IdeaCategory {
	return []IdeaCategory{
		{Name: CategoryThemes, Items: s.Themes},
		{Name: CategoryFood, Items: s.Food},
		{Name: CategoryActivities, Items: s.Activities},
	}
}

// IsEmpty reports whether no category has any suggestion.
func (s IdeaSet) IsEmpty() bool {
	return len(s.Themes) == 0 && len(s.Food) == 0 && len(s.Activities) == 0
}

// InvitationCount is the exact number of invitations in a result.
const InvitationCount = 3

// Invitation is a single plain-text invitation message.
type Invitation struct {
	Title string `json:"title"`
	Body  string `json:"body"` // Multi-line plain text
}

// Degenerate reports whether the invitation is a padding entry with no body.
func (i Invitation) Degenerate() bool {
	return i.Body == ""
}

// Timeline bounds.
const (
	MaxTimelinePeriods = 6
	MaxTasksPerPeriod  = 6
)

// TimelinePeriod is one block of preparation tasks.
type TimelinePeriod struct {
	Period string   `json:"period"` // Human-readable label (e.g., "1 Week Before")
	Tasks  []string `json:"tasks"`  // Ordered task list
}

// Source tells where an Outcome value came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// FailureKind classifies why a pipeline fell back.
type FailureKind string

const (
	FailureNone          FailureKind = ""
	FailureConfiguration FailureKind = "configuration"
	FailureInvocation    FailureKind = "invocation"
	FailureMalformed     FailureKind = "malformed_response"
	FailureEmptyResult   FailureKind = "empty_result"
)

// Outcome is the result of one pipeline invocation: either a normalized model
// value or the kind's fallback value.
type Outcome[T any] struct {
	Value  T           `json:"value"`
	Source Source      `json:"source"`
	Reason FailureKind `json:"reason,omitempty"` // Empty when Source is SourceModel
}

// Fallback reports whether the value is the deterministic fallback.
func (o Outcome[T]) Fallback() bool {
	return o.Source == SourceFallback
}

// Plan is the full generated content for a single request.
type Plan struct {
	ID          string                    `json:"id"`
	Request     PlanningRequest           `json:"request"`
	Ideas       Outcome[IdeaSet]          `json:"ideas"`
	Invitations Outcome[[]Invitation]     `json:"invitations"`
	Timeline    Outcome[[]TimelinePeriod] `json:"timeline"`
	Model       string                    `json:"model"`        // Model identifier used for the attempt
	GeneratedAt time.Time                 `json:"generated_at"` // Timestamp when the plan was assembled
}

// Degraded reports whether any part of the plan is fallback content.
func (p *Plan) Degraded() bool {
	return p.Ideas.Fallback() || p.Invitations.Fallback() || p.Timeline.Fallback()
}
