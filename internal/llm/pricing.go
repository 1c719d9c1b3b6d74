package llm

// ModelCost holds per-million-token pricing for a model.
// Prices are in USD per 1 million tokens, sourced from models.dev.
type ModelCost struct {
	InputPerMTok  float64 // USD per 1M input tokens
	OutputPerMTok float64 // USD per 1M output tokens
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// The mock model is free.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the models the providers default to or map friendly
// names onto. Last updated: 2026-02-15.
var modelCosts = map[string]ModelCost{
	"mock": {0, 0},

	// Google (Gemini)
	"gemini-2.0-flash":       {0.1, 0.4},
	"gemini-2.0-flash-lite":  {0.075, 0.3},
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},
	"gemini-flash-latest":    {0.3, 2.5},

	// OpenAI
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-5-mini":   {0.25, 2},

	// Anthropic
	"claude-haiku-4-5":          {1, 5},
	"claude-haiku-4-5-20251001": {1, 5},
	"claude-sonnet-4-5":         {3, 15},

	// OpenRouter IDs
	"google/gemini-2.5-flash": {0.3, 2.5},
}
