package planner

import (
	"context"

	"neighborly/internal/core"
	"neighborly/internal/llm"
	"neighborly/internal/logger"
)

// pipeline is the generate-with-fallback flow for one content kind:
// build prompt, one model call, normalize, or substitute the fallback.
type pipeline[T any] struct {
	kind        core.Kind
	temperature float32
	prompt      func(core.PlanningRequest) Prompt
	normalize   func(string) (T, error)
	fallback    func(core.PlanningRequest) T
}

var (
	ideasPipeline = pipeline[core.IdeaSet]{
		kind:        core.KindIdeas,
		temperature: IdeasTemperature,
		prompt:      BuildIdeasPrompt,
		normalize:   NormalizeIdeas,
		fallback:    func(core.PlanningRequest) core.IdeaSet { return FallbackIdeas() },
	}
	invitationsPipeline = pipeline[[]core.Invitation]{
		kind:        core.KindInvitations,
		temperature: InvitationsTemperature,
		prompt:      BuildInvitationsPrompt,
		normalize:   NormalizeInvitations,
		fallback:    FallbackInvitations,
	}
	timelinePipeline = pipeline[[]core.TimelinePeriod]{
		kind:        core.KindTimeline,
		temperature: TimelineTemperature,
		prompt:      BuildTimelinePrompt,
		normalize:   NormalizeTimeline,
		fallback:    FallbackTimeline,
	}
)

// run never fails: every error is classified, logged and replaced by the fallback.
func (p pipeline[T]) run(ctx context.Context, gen llm.Generator, req core.PlanningRequest) core.Outcome[T] {
	prompt := p.prompt(req)

	text, err := gen.GenerateText(ctx, llm.TextRequest{
		System:      prompt.System,
		User:        prompt.User,
		Temperature: p.temperature,
		JSONObject:  true,
	})
	if err == nil {
		var value T
		if value, err = p.normalize(text); err == nil {
			recordOutcome(p.kind, core.SourceModel, core.FailureNone)
			return core.Outcome[T]{Value: value, Source: core.SourceModel}
		}
	}

	reason := Classify(err)
	log := logger.FromContext(ctx)
	if reason == core.FailureConfiguration {
		log.Debug("Model not configured, using fallback", "kind", p.kind)
	} else {
		log.Warn("Generation failed, using fallback",
			"kind", p.kind,
			"reason", reason,
			"error", err)
	}
	recordOutcome(p.kind, core.SourceFallback, reason)

	return core.Outcome[T]{
		Value:  p.fallback(req),
		Source: core.SourceFallback,
		Reason: reason,
	}
}
