package chat

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"maps-assistant-backend/internal/llm"
	"maps-assistant-backend/internal/maps"
	"maps-assistant-backend/internal/types"
)

type fakeProvider struct {
	mu     sync.Mutex
	calls  int
	query  string
	radius int
	resp   *maps.TextSearchResponse
	err    error
	// hadDeadline records whether the call carried a deadline
	hadDeadline bool
}

func (f *fakeProvider) TextSearch(ctx context.Context, query, location string, radius int) (*maps.TextSearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.query, f.radius = query, radius
	_, f.hadDeadline = ctx.Deadline()
	return f.resp, f.err
}

type fakeModel struct {
	out     llm.Outcome
	history []types.ConversationTurn
	prompt  string
}

func (f *fakeModel) Converse(_ context.Context, systemPrompt string, history []types.ConversationTurn, _ string) llm.Outcome {
	f.prompt, f.history = systemPrompt, history
	return f.out
}

func rating(v float64) *float64 { return &v }

func newInvoker(p maps.Provider) *Invoker {
	return NewInvoker(p, maps.NewURLBuilder("KEY"), time.Second, zerolog.Nop())
}
