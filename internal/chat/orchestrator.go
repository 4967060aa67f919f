package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"maps-assistant-backend/internal/intent"
	"maps-assistant-backend/internal/llm"
	"maps-assistant-backend/internal/types"
)

// Conversant is the conversational model. Implementations must not fail;
// errors are reported as a degraded llm.Outcome.
type Conversant interface {
	Converse(ctx context.Context, systemPrompt string, history []types.ConversationTurn, message string) llm.Outcome
}

// Tool runs the map capability for extracted parameters.
type Tool interface {
	Invoke(ctx context.Context, params intent.Params) ToolOutcome
}

type Orchestrator struct {
	model        Conversant
	systemPrompt string
	extractor    *intent.Extractor
	tool         Tool
	log          zerolog.Logger
}

func NewOrchestrator(model Conversant, systemPrompt string, extractor *intent.Extractor, tool Tool, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		model:        model,
		systemPrompt: systemPrompt,
		extractor:    extractor,
		tool:         tool,
		log:          log.With().Str("component", "chat").Logger(),
	}
}

// HandleTurn answers one chat message. The model call and the
// classify/extract/invoke pipeline run concurrently; both work from the raw
// message. It always returns a response with non-empty text.
func (o *Orchestrator) HandleTurn(ctx context.Context, req types.ChatRequest) types.ChatResponse {
	start := time.Now()
	log := o.log.With().Str("turn_id", uuid.NewString()).Logger()

	var (
		out  llm.Outcome
		tool = ToolOutcome{Status: ToolSkipped}
		kind = intent.KindNone
	)
	var g errgroup.Group
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				out = llm.Outcome{Text: fmt.Sprintf("LLM error: %v", r), Kind: llm.FailureProtocol, Err: fmt.Errorf("panic: %v", r)}
			}
		}()
		out = o.model.Converse(ctx, o.systemPrompt, req.History, req.Message)
		return nil
	})
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				tool = ToolOutcome{Status: ToolFailure, Reason: fmt.Sprintf("panic: %v", r)}
			}
		}()
		kind = intent.Classify(req.Message)
		if kind == intent.KindNone {
			return nil
		}
		params, ok := o.extractor.Extract(kind, req.Message)
		if !ok {
			log.Debug().Str("intent", string(kind)).Msg("no parameters extracted")
			return nil
		}
		tool = o.tool.Invoke(ctx, params)
		return nil
	})
	_ = g.Wait()

	resp := Compose(out, tool)

	result := "ok"
	if out.Degraded() {
		result = string(out.Kind)
	}
	turnsTotal.WithLabelValues(string(kind)).Inc()
	llmOutcomesTotal.WithLabelValues(result).Inc()
	toolOutcomesTotal.WithLabelValues(string(kind), string(tool.Status)).Inc()
	turnLatencySeconds.Observe(time.Since(start).Seconds())

	ev := log.Info()
	if tool.Status == ToolFailure {
		ev = log.Warn().Str("reason", tool.Reason)
	}
	ev.Str("intent", string(kind)).
		Str("llm", result).
		Str("tool", string(tool.Status)).
		Bool("artifact", resp.MapArtifact != nil).
		Dur("elapsed", time.Since(start)).
		Msg("chat turn")
	return resp
}
