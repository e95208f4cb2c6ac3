package planner

import (
	"fmt"

	"neighborly/internal/core"
)

// NormalizeIdeas parses an ideas response. Each category keeps at most
// core.MaxIdeasPerCategory non-empty entries; all categories empty is ErrEmptyResult.
func NormalizeIdeas(text string) (core.IdeaSet, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return core.IdeaSet{}, err
	}

	set := core.IdeaSet{
		Themes:     stringList(obj[core.CategoryThemes], core.MaxIdeasPerCategory),
		Food:       stringList(obj[core.CategoryFood], core.MaxIdeasPerCategory),
		Activities: stringList(obj[core.CategoryActivities], core.MaxIdeasPerCategory),
	}
	if set.IsEmpty() {
		return core.IdeaSet{}, fmt.Errorf("%w: no ideas in any category", ErrEmptyResult)
	}
	return set, nil
}

// NormalizeInvitations parses an invitations response into exactly
// core.InvitationCount entries. Missing titles become "Invitation N" and short
// lists are padded with empty-bodied entries. A response without any body is
// ErrEmptyResult.
func NormalizeInvitations(text string) ([]core.Invitation, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	items := entries(obj["invitations"])
	if len(items) > core.InvitationCount {
		items = items[:core.InvitationCount]
	}

	out := make([]core.Invitation, 0, core.InvitationCount)
	usable := false
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: invitation %d is not an object", ErrMalformedResponse, i+1)
		}

		inv := core.Invitation{
			Title: stringify(entry["title"]),
			Body:  stringify(entry["body"]),
		}
		if inv.Title == "" {
			inv.Title = invitationTitle(i + 1)
		}
		if !inv.Degenerate() {
			usable = true
		}
		out = append(out, inv)
	}

	if !usable {
		return nil, fmt.Errorf("%w: no invitation has a body", ErrEmptyResult)
	}

	for len(out) < core.InvitationCount {
		out = append(out, core.Invitation{Title: invitationTitle(len(out) + 1)})
	}
	return out, nil
}

// NormalizeTimeline parses a timeline response. At most core.MaxTimelinePeriods
// entries are read; periods with a blank label or no tasks are dropped. Zero
// surviving periods is ErrEmptyResult.
func NormalizeTimeline(text string) ([]core.TimelinePeriod, error) {
	obj, err := decodeObject(text)
	if err != nil {
		return nil, err
	}

	items := entries(obj["timeline"])
	if len(items) > core.MaxTimelinePeriods {
		items = items[:core.MaxTimelinePeriods]
	}

	var out []core.TimelinePeriod
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: timeline entry %d is not an object", ErrMalformedResponse, i+1)
		}

		period := core.TimelinePeriod{
			Period: stringify(entry["period"]),
			Tasks:  stringList(entry["tasks"], core.MaxTasksPerPeriod),
		}
		if period.Period == "" || len(period.Tasks) == 0 {
			continue
		}
		out = append(out, period)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no timeline period survived", ErrEmptyResult)
	}
	return out, nil
}

func invitationTitle(n int) string {
	return fmt.Sprintf("Invitation %d", n)
}
