package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"neighborly/internal/core"
	"neighborly/internal/render"
)

type section struct {
	name   string
	source core.Source
	body   string
}

// model is the plan browser state: a section list on the left and the
// selected section's content on the right.
type model struct {
	plan        *core.Plan
	sections    []section
	selectedIdx int
	width       int
	height      int
	quitting    bool
}

func newModel(plan *core.Plan) model {
	return model{
		plan: plan,
		sections: []section{
			{name: "Ideas", source: plan.Ideas.Source, body: render.IdeasText(plan.Ideas.Value)},
			{name: "Invitations", source: plan.Invitations.Source, body: render.InvitationsText(plan.Invitations.Value)},
			{name: "Timeline", source: plan.Timeline.Source, body: render.TimelineText(plan.Timeline.Value)},
		},
		width: 100,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j", "tab":
			if m.selectedIdx < len(m.sections)-1 {
				m.selectedIdx++
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	listWidth := 20
	detailWidth := m.width - listWidth - 10
	if detailWidth < 30 {
		detailWidth = 30
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(listWidth)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(detailWidth)

	list := m.plan.Request.EventType + "\n\n"
	for i, s := range m.sections {
		cursor := " "
		if i == m.selectedIdx {
			cursor = ">"
		}
		marker := ""
		if s.source == core.SourceFallback {
			marker = " *"
		}
		list += fmt.Sprintf("%s %s%s\n", cursor, s.name, marker)
	}

	current := m.sections[m.selectedIdx]
	detail := render.SectionTitle(current.name, current.source) + "\n\n" + current.body

	main := lipgloss.JoinHorizontal(lipgloss.Top, listStyle.Render(list), detailStyle.Render(detail))
	help := "\n\n[↑/k] Up | [↓/j] Down | [q] Quit   * fallback content"

	return docStyle.Render(main + help)
}

// Run opens the interactive plan browser and blocks until the user quits.
func Run(plan *core.Plan) error {
	p := tea.NewProgram(newModel(plan), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("plan browser failed: %w", err)
	}
	return nil
}
