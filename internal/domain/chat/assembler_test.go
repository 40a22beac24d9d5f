package chat_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
)

func TestAssembleNone(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	repo.seedMessage(conversation.ID, 0, "hello", "")

	cache := chat.NewContextCache(time.Minute)
	assembler := chat.NewContextAssembler(repo, cache, 50)

	got, err := assembler.Assemble(context.Background(), conversation, chat.ContextNone)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, repo.listCalls, "none must not touch the repository")
	assert.Equal(t, 0, cache.Len(), "none must not fill the cache")
}

func TestAssembleFullLoadsAndCaches(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	user := repo.seedMessage(conversation.ID, 0, "recommend me a book", "")
	repo.seedMessage(conversation.ID, user.ID, "How about Dune?", "")

	cache := chat.NewContextCache(time.Minute)
	assembler := chat.NewContextAssembler(repo, cache, 50)

	got, err := assembler.Assemble(context.Background(), conversation, chat.ContextFull)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, chat.PromptMessage{Role: chat.RoleUser, Content: "recommend me a book"}, got[0])
	assert.Equal(t, chat.PromptMessage{Role: chat.RoleAssistant, Content: "How about Dune?"}, got[1])

	// A second assembly is served from the cache and yields the same slice.
	again, err := assembler.Assemble(context.Background(), conversation, chat.ContextFull)
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Equal(t, 1, repo.listCalls, "cache hit must not reload from the repository")
}

func TestAssembleFullCapsHistory(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	for i := 0; i < 60; i++ {
		repo.seedMessage(conversation.ID, 0, fmt.Sprintf("message %d", i), "")
	}

	assembler := chat.NewContextAssembler(repo, chat.NewContextCache(time.Minute), 50)

	got, err := assembler.Assemble(context.Background(), conversation, chat.ContextFull)
	require.NoError(t, err)
	require.Len(t, got, 50)
	// Oldest-first within the capped window: messages 10..59.
	assert.Equal(t, "message 10", got[0].Content)
	assert.Equal(t, "message 59", got[49].Content)
}

func TestAssembleLastMessage(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	u1 := repo.seedMessage(conversation.ID, 0, "first question", "")
	repo.seedMessage(conversation.ID, u1.ID, "first answer", "")
	u2 := repo.seedMessage(conversation.ID, 0, "any sci-fi classics?", "")
	repo.seedMessage(conversation.ID, u2.ID, "Would you like more like this?", "")

	cache := chat.NewContextCache(time.Minute)
	assembler := chat.NewContextAssembler(repo, cache, 50)

	got, err := assembler.Assemble(context.Background(), conversation, chat.ContextLastMessage)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "any sci-fi classics?", got[0].Content)
	assert.Equal(t, "Would you like more like this?", got[1].Content)

	// The cache holds the full window even though only a slice was returned.
	cached, ok := cache.Get(conversation.PublicID)
	require.True(t, ok)
	assert.Len(t, cached, 4)
}

func TestAssemblePrefersSummaries(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	repo.seedMessage(conversation.ID, 0, "a very long rambling message about many books", "wants book recommendations")

	assembler := chat.NewContextAssembler(repo, chat.NewContextCache(time.Minute), 50)

	got, err := assembler.Assemble(context.Background(), conversation, chat.ContextFull)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "wants book recommendations", got[0].Content)
}

func TestAssembleRepositoryError(t *testing.T) {
	repo := newRepoMock()
	conversation := repo.seedConversation("conv_a", "Test")
	repo.failList = errors.New("connection refused")

	assembler := chat.NewContextAssembler(repo, chat.NewContextCache(time.Minute), 50)

	_, err := assembler.Assemble(context.Background(), conversation, chat.ContextFull)
	assert.Error(t, err)
}
