package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"neighborly/internal/core"
)

// DefaultOutputDir is used by WritePlanMarkdown when no directory is given.
const DefaultOutputDir = "plans"

// PlanMarkdown renders a plan as a markdown document. Sections built from
// fallback content are marked so readers know the text is generic.
func PlanMarkdown(plan *core.Plan) string {
	var md strings.Builder

	req := plan.Request
	md.WriteString(fmt.Sprintf("# %s Plan\n\n", req.EventType))
	writeRequestSummary(&md, req)

	md.WriteString(sectionHeading("Ideas", plan.Ideas.Source))
	for _, category := range plan.Ideas.Value.Categories() {
		md.WriteString(fmt.Sprintf("### %s\n\n", category.Name))
		for _, item := range category.Items {
			md.WriteString(fmt.Sprintf("- %s\n", item))
		}
		md.WriteString("\n")
	}

	md.WriteString(sectionHeading("Invitations", plan.Invitations.Source))
	for _, inv := range plan.Invitations.Value {
		md.WriteString(fmt.Sprintf("### %s\n\n", inv.Title))
		if inv.Body == "" {
			md.WriteString("_No text generated for this invitation._\n\n")
			continue
		}
		md.WriteString(inv.Body + "\n\n")
	}

	md.WriteString(sectionHeading("Timeline", plan.Timeline.Source))
	for _, period := range plan.Timeline.Value {
		md.WriteString(fmt.Sprintf("### %s\n\n", period.Period))
		for _, task := range period.Tasks {
			md.WriteString(fmt.Sprintf("- [ ] %s\n", task))
		}
		md.WriteString("\n")
	}

	md.WriteString("---\n\n")
	md.WriteString(fmt.Sprintf("*Plan %s generated %s", plan.ID, plan.GeneratedAt.UTC().Format(time.RFC3339)))
	if plan.Model != "" {
		md.WriteString(fmt.Sprintf(" with %s", plan.Model))
	}
	md.WriteString("*\n")

	return md.String()
}

func writeRequestSummary(md *strings.Builder, req core.PlanningRequest) {
	rows := []struct{ label, value string }{
		{"Organizer", req.Organizer},
		{"Guests", fmt.Sprintf("%d", req.Guests)},
		{"Budget", req.Budget},
		{"Location", req.Location},
		{"Date", req.EventDate},
		{"Time", req.EventTime},
		{"Venue", req.Venue},
		{"Tone", req.Tone},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		md.WriteString(fmt.Sprintf("- **%s:** %s\n", row.label, row.value))
	}
	md.WriteString("\n")
}

func sectionHeading(name string, source core.Source) string {
	if source == core.SourceFallback {
		return fmt.Sprintf("## %s (fallback)\n\n", name)
	}
	return fmt.Sprintf("## %s\n\n", name)
}

// WritePlanMarkdown writes the markdown rendering of plan to
// outputDir/plan_<date>_<event>_<id>.md, creating the directory if needed.
// The plan ID prefix keeps same-day plans for the same event apart.
func WritePlanMarkdown(plan *core.Plan, outputDir string) (string, error) {
	generated := plan.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	filename := PlanFilename(plan, generated)

	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(filePath, []byte(PlanMarkdown(plan)), 0644); err != nil {
		return "", fmt.Errorf("failed to write plan file %s: %w", filePath, err)
	}

	return filePath, nil
}

const planIDPrefixLen = 8

// PlanFilename names a plan file from its date, event type and ID prefix.
func PlanFilename(plan *core.Plan, generated time.Time) string {
	parts := []string{"plan", generated.UTC().Format("2006-01-02")}
	if slug := slugify(plan.Request.EventType); slug != "" {
		parts = append(parts, slug)
	}
	id := strings.ReplaceAll(plan.ID, "-", "")
	if len(id) > planIDPrefixLen {
		id = id[:planIDPrefixLen]
	}
	if id != "" {
		parts = append(parts, id)
	}
	return strings.Join(parts, "_") + ".md"
}

// slugify lowercases s and joins its letter and digit runs with hyphens.
func slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	fallbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	subtleStyle   = lipgloss.NewStyle().Faint(true)
)

// SectionTitle styles a section heading, marking fallback content.
func SectionTitle(name string, source core.Source) string {
	title := headingStyle.Render(name)
	if source == core.SourceFallback {
		title += " " + fallbackStyle.Render("(fallback)")
	}
	return title
}

// IdeasText renders the idea categories as indented bullet lists.
func IdeasText(ideas core.IdeaSet) string {
	var b strings.Builder
	for _, category := range ideas.Categories() {
		b.WriteString(category.Name + "\n")
		for _, item := range category.Items {
			b.WriteString("  • " + item + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// InvitationsText renders each invitation title followed by its body.
func InvitationsText(invitations []core.Invitation) string {
	blocks := make([]string, 0, len(invitations))
	for _, inv := range invitations {
		body := inv.Body
		if body == "" {
			body = subtleStyle.Render("(no text generated)")
		}
		blocks = append(blocks, inv.Title+"\n"+body)
	}
	return strings.Join(blocks, "\n\n")
}

// TimelineText renders the timeline as labelled checklists.
func TimelineText(periods []core.TimelinePeriod) string {
	var b strings.Builder
	for _, period := range periods {
		b.WriteString(period.Period + "\n")
		for _, task := range period.Tasks {
			b.WriteString("  [ ] " + task + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// PlanTerminal renders a plan for terminal output.
func PlanTerminal(plan *core.Plan) string {
	sections := []string{
		titleStyle.Render(plan.Request.EventType + " Plan"),
		SectionTitle("Ideas", plan.Ideas.Source) + "\n" + IdeasText(plan.Ideas.Value),
		SectionTitle("Invitations", plan.Invitations.Source) + "\n" + InvitationsText(plan.Invitations.Value),
		SectionTitle("Timeline", plan.Timeline.Source) + "\n" + TimelineText(plan.Timeline.Value),
	}
	if plan.Model != "" {
		sections = append(sections, subtleStyle.Render("model: "+plan.Model))
	}
	return strings.Join(sections, "\n\n") + "\n"
}
