package openaigw

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

const groundingPrompt = "You are a book recommendation assistant for an online bookstore. " +
	"Ground every recommendation in the results of your tools; never invent titles, authors or availability. " +
	"When a tool returns no matching books, tell the user plainly that nothing in the catalog matches."

const intentPrompt = `You classify how much conversation history is needed to answer a chat message.
Reply with a JSON object {"context_need": "<label>"} where <label> is one of:
- "none": the message stands alone (greetings, unrelated new topics)
- "last_message": the message refers to the immediately preceding exchange (short follow-ups, confirmations)
- "full": the message builds on the whole conversation`

// ModelConfig names the model used for each call kind.
type ModelConfig struct {
	Chat    string
	Title   string
	Intent  string
	Summary string
}

// Gateway implements chat.ModelGateway against an OpenAI-compatible API.
type Gateway struct {
	client *completionClient
	models ModelConfig
}

var _ chat.ModelGateway = (*Gateway)(nil)

// NewGateway creates a gateway posting through the shared resty client.
func NewGateway(client *resty.Client, baseURL, apiKey string, models ModelConfig) *Gateway {
	return &Gateway{
		client: newCompletionClient(client, baseURL, apiKey),
		models: models,
	}
}

func (g *Gateway) GenerateTitle(ctx context.Context, firstMessage string) (string, usage.Record, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.models.Title,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You name chat conversations. Reply with only the title, at most six words, no quotes.",
			},
			{Role: openai.ChatMessageRoleUser, Content: firstMessage},
		},
		MaxTokens:   24,
		Temperature: 0.2,
	})
	if err != nil {
		return "", usage.Record{}, err
	}
	return firstChoiceText(resp), usageFrom(resp, g.models.Title), nil
}

func (g *Gateway) DetectIntent(ctx context.Context, text string, recent []chat.PromptMessage) (chat.ContextNeed, usage.Record, error) {
	var prompt strings.Builder
	if len(recent) > 0 {
		prompt.WriteString("Recent exchange:\n")
		for _, m := range recent {
			fmt.Fprintf(&prompt, "%s: %s\n", m.Role, m.Content)
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("Message to classify: ")
	prompt.WriteString(text)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.models.Intent,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt.String()},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   16,
		Temperature: 0,
	})
	if err != nil {
		return "", usage.Record{}, err
	}

	var label struct {
		ContextNeed string `json:"context_need"`
	}
	if err := json.Unmarshal([]byte(firstChoiceText(resp)), &label); err != nil {
		return "", usageFrom(resp, g.models.Intent), platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"intent classifier returned malformed JSON", err, "b1e6f4d8-3a27-4c95-8e10-6d4f2a9c7b53")
	}
	return chat.ParseContextNeed(label.ContextNeed), usageFrom(resp, g.models.Intent), nil
}

func (g *Gateway) Summarize(ctx context.Context, text string, maxWords int) (string, usage.Record, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.models.Summary,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"Summarize the user's text in at most %d words. Keep names, titles and stated preferences. Reply with only the summary.",
					maxWords),
			},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", usage.Record{}, err
	}
	return firstChoiceText(resp), usageFrom(resp, g.models.Summary), nil
}

func (g *Gateway) GenerateWithTools(ctx context.Context, history []chat.PromptMessage) (chat.GenerateResult, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.models.Chat,
		Messages: promptToOpenAI(history),
		Tools:    toolDefinitions(),
	})
	if err != nil {
		return chat.GenerateResult{}, err
	}

	result := chat.GenerateResult{
		Text:  firstChoiceText(resp),
		Usage: usageFrom(resp, g.models.Chat),
	}
	if len(resp.Choices) > 0 {
		for _, call := range resp.Choices[0].Message.ToolCalls {
			result.ToolCalls = append(result.ToolCalls, chat.ToolCall{
				ID:        call.ID,
				Name:      call.Function.Name,
				Arguments: call.Function.Arguments,
			})
		}
	}
	return result, nil
}

func (g *Gateway) GenerateFinalResponse(ctx context.Context, history []chat.PromptMessage, calls []chat.ToolCall, results []chat.ToolResult) (chat.GenerateResult, error) {
	messages := promptToOpenAI(history)

	assistantCalls := make([]openai.ToolCall, 0, len(calls))
	for _, call := range calls {
		assistantCalls = append(assistantCalls, openai.ToolCall{
			ID:   call.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:      openai.ChatMessageRoleAssistant,
		ToolCalls: assistantCalls,
	})
	for _, result := range results {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result.Output,
			ToolCallID: result.CallID,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.models.Chat,
		Messages: messages,
	})
	if err != nil {
		return chat.GenerateResult{}, err
	}

	return chat.GenerateResult{
		Text:  firstChoiceText(resp),
		Usage: usageFrom(resp, g.models.Chat),
	}, nil
}

func promptToOpenAI(history []chat.PromptMessage) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: groundingPrompt,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return messages
}

func toolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        chat.ToolGetBookRecommendations,
				Description: "Search the bookstore catalog for books matching the given filters.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"genres": {"type": "array", "items": {"type": "string"}},
						"themes": {"type": "array", "items": {"type": "string"}},
						"authors": {"type": "array", "items": {"type": "string"}},
						"content": {"type": "string", "description": "Free-text description of what the reader wants"},
						"limit": {"type": "integer", "minimum": 1, "maximum": 20},
						"random": {"type": "boolean", "description": "Pick random matches instead of best matches"}
					}
				}`),
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        chat.ToolGetBookSummaries,
				Description: "Fetch short and full plot summaries for specific books by their titles.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"titles": {"type": "array", "items": {"type": "string"}}
					},
					"required": ["titles"]
				}`),
			},
		},
	}
}

func firstChoiceText(resp *openai.ChatCompletionResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func usageFrom(resp *openai.ChatCompletionResponse, requestedModel string) usage.Record {
	record := usage.Record{Model: requestedModel}
	if resp == nil {
		return record
	}
	if resp.Model != "" {
		record.Model = resp.Model
	}
	record.InputTokens = resp.Usage.PromptTokens
	record.OutputTokens = resp.Usage.CompletionTokens
	if resp.Usage.PromptTokensDetails != nil {
		record.CachedTokens = resp.Usage.PromptTokensDetails.CachedTokens
	}
	return record
}
