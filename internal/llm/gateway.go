package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"maps-assistant-backend/internal/types"
)

// FailureKind classifies why a model call degraded.
type FailureKind string

const (
	FailureTimeout           FailureKind = "timeout"
	FailureConnectionRefused FailureKind = "connection_refused"
	FailureProtocol          FailureKind = "protocol_error"
)

const (
	TimeoutFallback    = "The LLM is taking too long to respond. This is normal for the first request as the model loads into memory."
	ConnectionFallback = "Cannot connect to the LLM service. Please make sure it's running (for Ollama: ollama serve)."
)

// Outcome is the result of one model call. Text is always safe to show: the
// reply on success, the fallback for Kind otherwise.
type Outcome struct {
	Text string
	Kind FailureKind
	Err  error
}

func (o Outcome) Degraded() bool { return o.Kind != "" }

func degrade(kind FailureKind, err error) Outcome {
	var text string
	switch kind {
	case FailureTimeout:
		text = TimeoutFallback
	case FailureConnectionRefused:
		text = ConnectionFallback
	default:
		text = fmt.Sprintf("LLM error: %v", err)
	}
	return Outcome{Text: text, Kind: kind, Err: err}
}

type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Prompt  PromptSpec
}

// Gateway calls an OpenAI-compatible chat completion endpoint.
type Gateway struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	prompt  PromptSpec
	log     zerolog.Logger
}

func NewGateway(opts Options, log zerolog.Logger) *Gateway {
	oc := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Gateway{
		client:  openai.NewClientWithConfig(oc),
		model:   opts.Model,
		timeout: opts.Timeout,
		prompt:  opts.Prompt,
		log:     log.With().Str("component", "llm").Logger(),
	}
}

// SystemPrompt is the configured assistant instruction.
func (g *Gateway) SystemPrompt() string { return g.prompt.System }

// Converse sends system prompt, history (verbatim, in order) and the new user
// message. It never returns an error; failures come back as a degraded Outcome.
func (g *Gateway) Converse(ctx context.Context, systemPrompt string, history []types.ConversationTurn, message string) Outcome {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	for _, t := range history {
		role := t.Role
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.prompt.Style.Temperature,
		MaxTokens:   g.prompt.Style.MaxTokens,
	})
	if err != nil {
		out := degrade(classify(ctx, err), err)
		g.log.Warn().Err(err).Str("kind", string(out.Kind)).Dur("elapsed", time.Since(start)).Msg("chat completion degraded")
		return out
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		err := errors.New("empty completion")
		g.log.Warn().Err(err).Str("kind", string(FailureProtocol)).Msg("chat completion degraded")
		return degrade(FailureProtocol, err)
	}
	g.log.Debug().Dur("elapsed", time.Since(start)).Int("history", len(history)).Msg("chat completion")
	return Outcome{Text: resp.Choices[0].Message.Content}
}

func classify(ctx context.Context, err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return FailureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return FailureConnectionRefused
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return FailureConnectionRefused
	}
	return FailureProtocol
}
