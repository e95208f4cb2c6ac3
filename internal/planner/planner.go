package planner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"neighborly/internal/config"
	"neighborly/internal/core"
	"neighborly/internal/llm"
	"neighborly/internal/logger"
)

// Planner produces event ideas, invitations and a timeline for a request.
// Every method returns a valid value; failures fall back to canned content.
type Planner struct {
	gen      llm.Generator
	parallel bool
}

// New creates a Planner backed by gen.
func New(gen llm.Generator, cfg config.Planner) *Planner {
	return &Planner{
		gen:      gen,
		parallel: cfg.Parallel,
	}
}

// Model returns the identifier of the model behind the planner.
func (p *Planner) Model() string {
	return p.gen.Model()
}

// Enabled reports whether the planner can reach a model at all.
func (p *Planner) Enabled() bool {
	if e, ok := p.gen.(interface{ Enabled() bool }); ok {
		return e.Enabled()
	}
	return true
}

// Ideas generates themes, food and activity suggestions.
func (p *Planner) Ideas(ctx context.Context, req core.PlanningRequest) core.Outcome[core.IdeaSet] {
	return ideasPipeline.run(ctx, p.gen, req.WithDefaults())
}

// Invitations generates exactly three invitation messages.
func (p *Planner) Invitations(ctx context.Context, req core.PlanningRequest) core.Outcome[[]core.Invitation] {
	return invitationsPipeline.run(ctx, p.gen, req.WithDefaults())
}

// Timeline generates the preparation timeline.
func (p *Planner) Timeline(ctx context.Context, req core.PlanningRequest) core.Outcome[[]core.TimelinePeriod] {
	return timelinePipeline.run(ctx, p.gen, req.WithDefaults())
}

// Plan runs all three pipelines for req. With parallel enabled they run
// concurrently; results are identical either way.
func (p *Planner) Plan(ctx context.Context, req core.PlanningRequest) *core.Plan {
	req = req.WithDefaults()
	plan := &core.Plan{
		ID:      uuid.NewString(),
		Request: req,
		Model:   p.gen.Model(),
	}

	startTime := time.Now()
	if p.parallel {
		var g errgroup.Group
		g.Go(func() error {
			plan.Ideas = p.Ideas(ctx, req)
			return nil
		})
		g.Go(func() error {
			plan.Invitations = p.Invitations(ctx, req)
			return nil
		})
		g.Go(func() error {
			plan.Timeline = p.Timeline(ctx, req)
			return nil
		})
		_ = g.Wait()
	} else {
		plan.Ideas = p.Ideas(ctx, req)
		plan.Invitations = p.Invitations(ctx, req)
		plan.Timeline = p.Timeline(ctx, req)
	}
	plan.GeneratedAt = time.Now().UTC()

	logger.FromContext(ctx).Info("Plan generated",
		"plan_id", plan.ID,
		"event_type", req.EventType,
		"model", plan.Model,
		"degraded", plan.Degraded(),
		"duration", time.Since(startTime))

	return plan
}
