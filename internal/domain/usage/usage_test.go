package usage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		records  []usage.Record
		expected usage.Record
	}{
		{
			name:     "no records",
			records:  nil,
			expected: usage.Record{},
		},
		{
			name: "single record",
			records: []usage.Record{
				{InputTokens: 120, OutputTokens: 40, CachedTokens: 0, Model: "gpt-4o-mini"},
			},
			expected: usage.Record{InputTokens: 120, OutputTokens: 40, Model: "gpt-4o-mini"},
		},
		{
			name: "tool call plus final response sums tokens and keeps final model",
			records: []usage.Record{
				{InputTokens: 500, OutputTokens: 60, CachedTokens: 100, Model: "gpt-4o-mini"},
				{InputTokens: 900, OutputTokens: 220, CachedTokens: 400, Model: "gpt-4o"},
			},
			expected: usage.Record{InputTokens: 1400, OutputTokens: 280, CachedTokens: 500, Model: "gpt-4o"},
		},
		{
			name: "empty model on later record does not clear attribution",
			records: []usage.Record{
				{InputTokens: 10, Model: "gpt-4o-mini"},
				{OutputTokens: 5},
			},
			expected: usage.Record{InputTokens: 10, OutputTokens: 5, Model: "gpt-4o-mini"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usage.Aggregate(tt.records...))
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		input    int
		output   int
		cached   int
		expected string
	}{
		{
			name:     "known model prices all three buckets",
			model:    "gpt-4o-mini",
			input:    1000,
			output:   500,
			cached:   200,
			expected: "0.000465",
		},
		{
			name:     "unknown model prices at zero",
			model:    "some-future-model",
			input:    100000,
			output:   100000,
			expected: "0",
		},
		{
			name:     "zero tokens cost nothing",
			model:    "gpt-4o",
			expected: "0",
		},
		{
			name:     "output tokens dominate on large models",
			model:    "gpt-4o",
			input:    2000,
			output:   1000,
			expected: "0.015",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usage.Price(tt.model, tt.input, tt.output, tt.cached)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)),
				"expected %s, got %s", tt.expected, got)
		})
	}
}

func TestPriceLinearity(t *testing.T) {
	// Doubling every token count doubles the price.
	single := usage.Price("gpt-4o-mini", 1200, 300, 400)
	double := usage.Price("gpt-4o-mini", 2400, 600, 800)
	assert.True(t, double.Equal(single.Mul(decimal.NewFromInt(2))),
		"expected %s, got %s", single.Mul(decimal.NewFromInt(2)), double)
}

func TestPriceMatchesAggregatedRecord(t *testing.T) {
	// Pricing the aggregate equals pricing its parts when both parts ran on
	// the same model.
	first := usage.Record{InputTokens: 800, OutputTokens: 200, Model: "gpt-4o"}
	second := usage.Record{InputTokens: 1200, OutputTokens: 400, CachedTokens: 600, Model: "gpt-4o"}

	total := usage.PriceRecord(usage.Aggregate(first, second))
	parts := usage.PriceRecord(first).Add(usage.PriceRecord(second))
	assert.True(t, total.Equal(parts), "expected %s, got %s", parts, total)
}

func TestPriceRounding(t *testing.T) {
	// 1 input token on gpt-4o costs 2.50/1,000,000 = 0.0000025 exactly.
	got := usage.Price("gpt-4o", 1, 0, 0)
	require.Equal(t, "0.0000025", got.String())

	// 1 cached token on gpt-4.1-nano costs 0.025/1,000,000 = 0.000000025,
	// which rounds to zero at seven decimal places.
	got = usage.Price("gpt-4.1-nano", 0, 0, 1)
	assert.True(t, got.IsZero(), "expected zero, got %s", got)
}

func TestModelsReturnsCopy(t *testing.T) {
	models := usage.Models()
	require.Contains(t, models, "gpt-4o-mini")

	models["gpt-4o-mini"] = usage.Rate{}
	fresh := usage.Models()
	assert.False(t, fresh["gpt-4o-mini"].Input.IsZero(), "mutating the returned map must not affect the table")
}
