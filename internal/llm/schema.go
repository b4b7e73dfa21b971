package llm

// BuildOrderJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// CandidateOrder shape as a generic map. It is used locally in advisory mode:
// a reply that fails validation is logged, not rejected, since model output
// is best-effort.
func BuildOrderJSONSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"customer", "items", "delivery"},
		"properties": map[string]any{
			"customer": map[string]any{
				"type":     "object",
				"required": []string{"name", "address"},
				"properties": map[string]any{
					"name":    map[string]any{"type": "string"},
					"address": map[string]any{"type": "string"},
				},
			},
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"product", "quantity"},
					"properties": map[string]any{
						"product":    map[string]any{"type": "string", "minLength": 1},
						"quantity":   map[string]any{"type": "number"},
						"confidence": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
					},
				},
			},
			"delivery": map[string]any{
				"type":     "object",
				"required": []string{"date", "address"},
				"properties": map[string]any{
					"date":    map[string]any{"type": "string"},
					"address": map[string]any{"type": "string"},
				},
			},
		},
	}
}
