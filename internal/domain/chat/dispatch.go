package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/B3N14M1N/ChatAI/internal/domain/books"
	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/metrics"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/observability"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// Tool names exposed to the model.
const (
	ToolGetBookRecommendations = "get_book_recommendations"
	ToolGetBookSummaries       = "get_book_summaries"
)

// Answer is the outcome of one dispatched generation: the final text, the
// aggregated usage of every model call behind it, and the tool results that
// grounded it.
type Answer struct {
	Text        string
	Usage       usage.Record
	ToolResults []ToolResult
}

// ToolDispatcher runs the generate → execute tools → generate-final loop.
// Tool execution errors never abort the turn: they are serialized into the
// tool output so the model can tell the user what went wrong.
type ToolDispatcher struct {
	gateway ModelGateway
	store   books.Store
	logger  zerolog.Logger
}

// NewToolDispatcher creates a dispatcher backed by the given gateway and
// book store.
func NewToolDispatcher(gateway ModelGateway, store books.Store) *ToolDispatcher {
	return &ToolDispatcher{
		gateway: gateway,
		store:   store,
		logger:  logger.GetLogger(),
	}
}

// Dispatch generates an answer for history. When the model requests tools,
// every call is executed and a second generation folds the outputs into the
// final text; the answer's usage then covers both calls, attributed to the
// final call's model.
func (d *ToolDispatcher) Dispatch(ctx context.Context, history []PromptMessage) (*Answer, error) {
	first, err := d.gateway.GenerateWithTools(ctx, history)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generation with tools failed")
	}

	if len(first.ToolCalls) == 0 {
		return &Answer{Text: first.Text, Usage: first.Usage}, nil
	}

	results := make([]ToolResult, 0, len(first.ToolCalls))
	for _, call := range first.ToolCalls {
		results = append(results, d.execute(ctx, call))
	}

	final, err := d.gateway.GenerateFinalResponse(ctx, history, first.ToolCalls, results)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "final response generation failed")
	}

	return &Answer{
		Text:        final.Text,
		Usage:       usage.Aggregate(first.Usage, final.Usage),
		ToolResults: results,
	}, nil
}

// execute runs a single tool call and serializes its outcome. Failures and
// unknown tool names become structured error payloads in the output.
func (d *ToolDispatcher) execute(ctx context.Context, call ToolCall) ToolResult {
	ctx, span := observability.StartSpan(ctx, "chat", "chat.tool."+call.Name)
	defer span.End()
	start := time.Now()

	var (
		output string
		err    error
	)
	switch call.Name {
	case ToolGetBookRecommendations:
		output, err = d.recommend(ctx, call.Arguments)
	case ToolGetBookSummaries:
		output, err = d.summaries(ctx, call.Arguments)
	default:
		err = platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"model requested unknown tool", nil, "c4a8f7de-1b52-4a5e-9f4e-8cf0d3a6b911")
	}

	status := "ok"
	if err != nil {
		status = "error"
		observability.RecordError(ctx, err)
		d.logger.Warn().
			Err(err).
			Str("tool", call.Name).
			Msg("tool execution failed")
		output = errorPayload(call.Name, err)
	}
	metrics.RecordToolCall(call.Name, status, time.Since(start))

	return ToolResult{CallID: call.ID, Name: call.Name, Output: output}
}

func (d *ToolDispatcher) recommend(ctx context.Context, arguments string) (string, error) {
	var query books.RecommendQuery
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &query); err != nil {
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"invalid recommendation arguments", err, "5b0b70cb-32a4-4a4f-8645-32b0f6a5c7d2")
		}
	}

	found, err := d.store.Recommend(ctx, query)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return `{"books":[],"message":"no books matched the requested criteria"}`, nil
	}

	payload, err := json.Marshal(map[string]any{"books": found})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

type summariesArguments struct {
	Titles []string `json:"titles"`
}

func (d *ToolDispatcher) summaries(ctx context.Context, arguments string) (string, error) {
	var args summariesArguments
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"invalid summary arguments", err, "9e2f4c81-7d0a-43bd-b1c6-0a5d8e2f4713")
		}
	}

	found, err := d.store.Summaries(ctx, args.Titles)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return `{"summaries":[],"message":"no summaries found for the requested books"}`, nil
	}

	payload, err := json.Marshal(map[string]any{"summaries": found})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// errorPayload serializes a tool failure so it can flow back to the model as
// regular tool output.
func errorPayload(tool string, err error) string {
	payload, marshalErr := json.Marshal(map[string]string{
		"error": err.Error(),
		"tool":  tool,
	})
	if marshalErr != nil {
		return `{"error":"tool execution failed"}`
	}
	return string(payload)
}
