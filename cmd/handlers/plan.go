package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"neighborly/internal/core"
	"neighborly/internal/llm"
	"neighborly/internal/planner"
	"neighborly/internal/render"
	"neighborly/internal/tui"
)

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type planOptions struct {
	request     core.PlanningRequest
	format      string
	outputDir   string
	interactive bool
}

// NewPlanCmd creates the plan command for generating a plan from the terminal
func NewPlanCmd() *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate an event plan in the terminal",
		Long: `Generate ideas, invitations and a timeline for a neighborhood event.

Examples:
  # Plan a block party with defaults
  neighborly plan

  # Plan a potluck and save it as markdown
  neighborly plan --event-type Potluck --date 2025-12-25 --organizer "Maple Street Association" \
    --format markdown --output ./plans

  # Browse the plan interactively
  neighborly plan --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	req := &opts.request
	cmd.Flags().StringVar(&req.EventType, "event-type", core.DefaultEventType, "Kind of event")
	cmd.Flags().IntVar(&req.Guests, "guests", core.DefaultGuests, "Expected number of guests")
	cmd.Flags().StringVar(&req.Budget, "budget", core.DefaultBudget, "Budget level (Low, Moderate, High)")
	cmd.Flags().StringVar(&req.Location, "location", "", "City or neighborhood")
	cmd.Flags().StringVar(&req.Organizer, "organizer", "", "Organizing group")
	cmd.Flags().StringVar(&req.EventDate, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EventTime, "time", "", "Event time, e.g. \"4 PM\"")
	cmd.Flags().StringVar(&req.Venue, "venue", "", "Venue")
	cmd.Flags().StringVar(&req.Tone, "tone", core.DefaultTone, "Tone of the invitations")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format: text, markdown or json")
	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Write a markdown plan file to this directory")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Browse the plan in an interactive terminal UI")

	return cmd
}

func runPlan(ctx context.Context, out io.Writer, opts planOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	switch format {
	case formatText, formatMarkdown, formatJSON:
	default:
		return fmt.Errorf("unknown format %q (expected text, markdown or json)", opts.format)
	}

	// Logs go to stderr so stdout stays clean for the plan itself.
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}

	gen, err := llm.New(cfg.AI)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer closeGenerator(gen)

	if ctx == nil {
		ctx = context.Background()
	}
	plan := planner.New(gen, cfg.Planner).Plan(ctx, opts.request)

	if opts.outputDir != "" {
		path, err := render.WritePlanMarkdown(plan, opts.outputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Plan saved to %s\n", path)
	}

	if opts.interactive {
		return tui.Run(plan)
	}

	return writePlan(out, plan, format)
}

func writePlan(out io.Writer, plan *core.Plan, format string) error {
	var err error
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(plan)
	case formatMarkdown:
		_, err = io.WriteString(out, render.PlanMarkdown(plan))
	default:
		_, err = io.WriteString(out, render.PlanTerminal(plan))
	}
	if err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
