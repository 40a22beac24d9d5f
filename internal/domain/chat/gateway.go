package chat

import (
	"context"

	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
)

// PromptMessage is one turn of model-facing context. It deliberately carries
// no persistence concerns so gateways and caches can share it.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RoleSystem exists only in model-facing prompts, never on stored messages.
const RoleSystem = "system"

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the serialized output of one executed tool call, fed back to
// the model for the final response.
type ToolResult struct {
	CallID string
	Name   string
	Output string
}

// GenerateResult is the outcome of a single generation call: either a direct
// answer, or a set of tool calls the caller must execute first.
type GenerateResult struct {
	Text      string
	ToolCalls []ToolCall
	Usage     usage.Record
}

// ModelGateway abstracts the language model provider. Implementations report
// per-call token usage so the orchestrator can account for every answer.
type ModelGateway interface {
	// GenerateTitle produces a short conversation title from the opening
	// message, reporting the tokens the call consumed.
	GenerateTitle(ctx context.Context, firstMessage string) (string, usage.Record, error)

	// DetectIntent classifies how much conversation context the given
	// message needs, optionally informed by the most recent exchange.
	DetectIntent(ctx context.Context, text string, recent []PromptMessage) (ContextNeed, usage.Record, error)

	// Summarize condenses text to at most maxWords words.
	Summarize(ctx context.Context, text string, maxWords int) (string, usage.Record, error)

	// GenerateWithTools runs a generation with the book tools exposed. The
	// result carries tool calls when the model decided to use them.
	GenerateWithTools(ctx context.Context, history []PromptMessage) (GenerateResult, error)

	// GenerateFinalResponse runs the follow-up generation that folds tool
	// outputs into a user-facing answer.
	GenerateFinalResponse(ctx context.Context, history []PromptMessage, calls []ToolCall, results []ToolResult) (GenerateResult, error)
}
