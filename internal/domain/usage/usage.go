package usage

import (
	"github.com/shopspring/decimal"
)

// PricePrecision is the number of decimal places kept on computed prices.
const PricePrecision = 7

// Record represents the token usage of a single model call.
// The zero value means "no tokens consumed, no model attributed".
type Record struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	CachedTokens int    `json:"cached_tokens"`
	Model        string `json:"model"`
}

// IsZero reports whether the record carries no usage at all.
func (r Record) IsZero() bool {
	return r.InputTokens == 0 && r.OutputTokens == 0 && r.CachedTokens == 0 && r.Model == ""
}

// Add returns the field-wise sum of two records. The model of the right-hand
// record wins when set, so folding records in call order attributes the
// aggregate to the final generation call.
func (r Record) Add(other Record) Record {
	sum := Record{
		InputTokens:  r.InputTokens + other.InputTokens,
		OutputTokens: r.OutputTokens + other.OutputTokens,
		CachedTokens: r.CachedTokens + other.CachedTokens,
		Model:        r.Model,
	}
	if other.Model != "" {
		sum.Model = other.Model
	}
	return sum
}

// Aggregate sums all records that contributed to one user-visible answer.
func Aggregate(records ...Record) Record {
	var total Record
	for _, r := range records {
		total = total.Add(r)
	}
	return total
}

// Rate holds per-1,000,000-token prices in USD for one model.
type Rate struct {
	Input       decimal.Decimal `json:"input"`
	CachedInput decimal.Decimal `json:"cached_input"`
	Output      decimal.Decimal `json:"output"`
}

// modelRates maps model identifiers to their billing rates.
var modelRates = map[string]Rate{
	"gpt-4o": {
		Input:       decimal.NewFromFloat(2.50),
		CachedInput: decimal.NewFromFloat(1.25),
		Output:      decimal.NewFromFloat(10.00),
	},
	"gpt-4o-mini": {
		Input:       decimal.NewFromFloat(0.15),
		CachedInput: decimal.NewFromFloat(0.075),
		Output:      decimal.NewFromFloat(0.60),
	},
	"gpt-4.1-mini": {
		Input:       decimal.NewFromFloat(0.40),
		CachedInput: decimal.NewFromFloat(0.10),
		Output:      decimal.NewFromFloat(1.60),
	},
	"gpt-4.1-nano": {
		Input:       decimal.NewFromFloat(0.10),
		CachedInput: decimal.NewFromFloat(0.025),
		Output:      decimal.NewFromFloat(0.40),
	},
}

var oneMillion = decimal.NewFromInt(1_000_000)

// Price computes the USD cost of a token count triple under the given model's
// rates, rounded to PricePrecision decimal places. Unknown models price at
// zero rather than failing: an answer is still delivered when the rate table
// lags behind the model catalog.
func Price(model string, inputTokens, outputTokens, cachedTokens int) decimal.Decimal {
	rate, ok := modelRates[model]
	if !ok {
		return decimal.Zero
	}

	cost := decimal.NewFromInt(int64(inputTokens)).Mul(rate.Input).
		Add(decimal.NewFromInt(int64(outputTokens)).Mul(rate.Output)).
		Add(decimal.NewFromInt(int64(cachedTokens)).Mul(rate.CachedInput)).
		Div(oneMillion)

	return cost.Round(PricePrecision)
}

// PriceRecord prices an aggregated usage record.
func PriceRecord(r Record) decimal.Decimal {
	return Price(r.Model, r.InputTokens, r.OutputTokens, r.CachedTokens)
}

// Models returns a copy of the rate table, keyed by model identifier.
func Models() map[string]Rate {
	out := make(map[string]Rate, len(modelRates))
	for name, rate := range modelRates {
		out[name] = rate
	}
	return out
}
