// ABOUTME: Per-model pricing table and cost estimation for chat-completion calls
// ABOUTME: Longest-prefix lookup; unknown and local models are priced at zero

package telemetry

import "strings"

// ModelPricing holds per-million-token rates for a model.
type ModelPricing struct {
	InputPerMillion  float64 // USD per million input tokens
	OutputPerMillion float64 // USD per million output tokens
}

// defaultPricing is keyed by model ID prefix.
var defaultPricing = map[string]ModelPricing{
	"gpt-4o":       {InputPerMillion: 2.50, OutputPerMillion: 10.0},
	"gpt-4o-mini":  {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4.1":      {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"gpt-4.1-mini": {InputPerMillion: 0.40, OutputPerMillion: 1.60},
	"gpt-4.1-nano": {InputPerMillion: 0.10, OutputPerMillion: 0.40},
	"gpt-4-turbo":  {InputPerMillion: 10.0, OutputPerMillion: 30.0},
	"o1":           {InputPerMillion: 15.0, OutputPerMillion: 60.0},
	"o3":           {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"o3-mini":      {InputPerMillion: 1.10, OutputPerMillion: 4.40},
	"o4-mini":      {InputPerMillion: 1.10, OutputPerMillion: 4.40},
}

// LookupPricing returns the pricing for a model ID and whether it is known.
// Tries an exact match first, then the longest matching prefix.
func LookupPricing(modelID string) (ModelPricing, bool) {
	if p, ok := defaultPricing[modelID]; ok {
		return p, true
	}

	bestKey := ""
	for key := range defaultPricing {
		if strings.HasPrefix(modelID, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		return defaultPricing[bestKey], true
	}
	return ModelPricing{}, false
}

// EstimateCost returns the estimated cost in USD for a model and token counts.
func EstimateCost(modelID string, inputTokens, outputTokens int) float64 {
	p, _ := LookupPricing(modelID)
	return float64(inputTokens)/1_000_000*p.InputPerMillion +
		float64(outputTokens)/1_000_000*p.OutputPerMillion
}
