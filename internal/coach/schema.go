package coach

import "github.com/abhisek/paesprep/internal/llm"

// StudyPlanSchema is the structured output requested from the model.
var StudyPlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A short study plan built from the recommended learning nodes",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "2-3 sentences, in Spanish, on what to focus on and why",
			},
			"steps": map[string]any{
				"type":        "array",
				"description": "One step per recommended node, in study order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"node_id": map[string]any{
							"type":        "string",
							"description": "ID of one of the recommended nodes",
						},
						"action": map[string]any{
							"type":        "string",
							"description": "Concrete activity for this node (1-2 sentences, Spanish)",
						},
						"minutes": map[string]any{
							"type":    "integer",
							"minimum": 5,
							"maximum": 180,
						},
					},
					"required":             []any{"node_id", "action", "minutes"},
					"additionalProperties": false,
				},
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One short motivating sentence in Spanish",
			},
		},
		"required":             []any{"summary", "steps", "encouragement"},
		"additionalProperties": false,
	},
}
