package chat_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3N14M1N/ChatAI/internal/domain/books"
	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
)

func TestDispatchWithoutToolCalls(t *testing.T) {
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				Text:  "just chatting",
				Usage: usage.Record{InputTokens: 15, OutputTokens: 8, Model: "gpt-4o-mini"},
			}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, &storeMock{})

	answer, err := dispatcher.Dispatch(context.Background(), []chat.PromptMessage{{Role: chat.RoleUser, Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "just chatting", answer.Text)
	assert.Equal(t, usage.Record{InputTokens: 15, OutputTokens: 8, Model: "gpt-4o-mini"}, answer.Usage)
	assert.Empty(t, answer.ToolResults)
}

func TestDispatchExecutesRecommendationTool(t *testing.T) {
	store := &storeMock{
		recommendFn: func(query books.RecommendQuery) ([]books.Book, error) {
			return []books.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert"}}, nil
		},
	}
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				ToolCalls: []chat.ToolCall{{
					ID:        "call_1",
					Name:      chat.ToolGetBookRecommendations,
					Arguments: `{"genres":["sci-fi"],"limit":3}`,
				}},
				Usage: usage.Record{InputTokens: 100, OutputTokens: 20, Model: "gpt-4o-mini"},
			}, nil
		},
		finalFn: func(history []chat.PromptMessage, calls []chat.ToolCall, results []chat.ToolResult) (chat.GenerateResult, error) {
			require.Len(t, results, 1)
			assert.Contains(t, results[0].Output, "Dune")
			return chat.GenerateResult{
				Text:  "You might enjoy Dune.",
				Usage: usage.Record{InputTokens: 200, OutputTokens: 50, CachedTokens: 80, Model: "gpt-4o"},
			}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, store)

	answer, err := dispatcher.Dispatch(context.Background(), []chat.PromptMessage{{Role: chat.RoleUser, Content: "recommend sci-fi"}})
	require.NoError(t, err)
	assert.Equal(t, "You might enjoy Dune.", answer.Text)

	// The query the model built reached the store intact.
	require.Len(t, store.recommendCalls, 1)
	assert.Equal(t, []string{"sci-fi"}, store.recommendCalls[0].Genres)
	assert.Equal(t, 3, store.recommendCalls[0].Limit)

	// Usage covers both calls, attributed to the final call's model.
	assert.Equal(t, usage.Record{InputTokens: 300, OutputTokens: 70, CachedTokens: 80, Model: "gpt-4o"}, answer.Usage)
}

func TestDispatchNoMatches(t *testing.T) {
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				ToolCalls: []chat.ToolCall{{ID: "call_1", Name: chat.ToolGetBookRecommendations, Arguments: `{"genres":["vogon poetry"]}`}},
			}, nil
		},
		finalFn: func(history []chat.PromptMessage, calls []chat.ToolCall, results []chat.ToolResult) (chat.GenerateResult, error) {
			require.Len(t, results, 1)
			assert.Contains(t, results[0].Output, "no books matched")
			return chat.GenerateResult{Text: "Nothing in the catalog matches, sorry."}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, &storeMock{})

	answer, err := dispatcher.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Nothing in the catalog matches, sorry.", answer.Text)
}

func TestDispatchUnknownTool(t *testing.T) {
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				ToolCalls: []chat.ToolCall{{ID: "call_1", Name: "launch_rockets"}},
			}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, &storeMock{})

	answer, err := dispatcher.Dispatch(context.Background(), nil)
	require.NoError(t, err, "an unknown tool must not abort the turn")

	require.Len(t, answer.ToolResults, 1)
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(answer.ToolResults[0].Output), &payload))
	assert.Contains(t, payload["error"], "unknown tool")
	assert.Equal(t, "launch_rockets", payload["tool"])
}

func TestDispatchStoreFailureBecomesToolOutput(t *testing.T) {
	store := &storeMock{
		recommendFn: func(books.RecommendQuery) ([]books.Book, error) {
			return nil, errors.New("bookstore unreachable")
		},
	}
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				ToolCalls: []chat.ToolCall{{ID: "call_1", Name: chat.ToolGetBookRecommendations}},
			}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, store)

	answer, err := dispatcher.Dispatch(context.Background(), nil)
	require.NoError(t, err, "a failing tool must not abort the turn")
	require.Len(t, answer.ToolResults, 1)
	assert.Contains(t, answer.ToolResults[0].Output, "error")
}

func TestDispatchSummariesTool(t *testing.T) {
	store := &storeMock{
		summariesFn: func(titles []string) ([]books.Summary, error) {
			assert.Equal(t, []string{"Dune", "Hyperion"}, titles)
			return []books.Summary{{
				Title:        "Dune",
				ShortSummary: "Desert planet politics.",
				FullSummary:  "Paul Atreides inherits a desert planet and its spice.",
				Genres:       []string{"sci-fi"},
			}}, nil
		},
	}
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{
				ToolCalls: []chat.ToolCall{{ID: "call_1", Name: chat.ToolGetBookSummaries, Arguments: `{"titles":["Dune","Hyperion"]}`}},
			}, nil
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, store)

	answer, err := dispatcher.Dispatch(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, answer.ToolResults, 1)
	assert.Contains(t, answer.ToolResults[0].Output, "short_summary")
	assert.Contains(t, answer.ToolResults[0].Output, "Desert planet politics.")
}

func TestDispatchGenerationFailure(t *testing.T) {
	gateway := &gatewayMock{
		withToolsFn: func(history []chat.PromptMessage) (chat.GenerateResult, error) {
			return chat.GenerateResult{}, errors.New("provider down")
		},
	}
	dispatcher := chat.NewToolDispatcher(gateway, &storeMock{})

	_, err := dispatcher.Dispatch(context.Background(), nil)
	assert.Error(t, err)
}
