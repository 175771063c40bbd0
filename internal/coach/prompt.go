package coach

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a study coach for Chilean high-school students preparing the PAES university admission exam. You turn a skill diagnosis into a short, realistic study plan. Always answer in Spanish.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	if in.Test != "" {
		fmt.Fprintf(&b, "Exam: %s\n", in.Test.DisplayName())
	}

	rec := in.Recommendation
	if rec.WeakestTier != nil {
		fmt.Fprintf(&b, "Weakest cognitive level: %s (%s)\n", rec.WeakestTier.DisplayName(), rec.WeakestTier.SpanishName())
	}
	if rec.StrongestTier != nil {
		fmt.Fprintf(&b, "Strongest cognitive level: %s (%s)\n", rec.StrongestTier.DisplayName(), rec.StrongestTier.SpanishName())
	}

	b.WriteString("\nCognitive level scores:\n")
	for _, ts := range rec.TierStrengths {
		marker := ""
		if ts.IsStrength {
			marker = " (strength)"
		}
		fmt.Fprintf(&b, "- %s: %.0f%%%s\n", ts.Tier.DisplayName(), ts.Score*100, marker)
	}

	if len(in.Mastery) > 0 {
		b.WriteString("\nRecent skill results:\n")
		for _, sm := range in.Mastery {
			fmt.Fprintf(&b, "- %s: %.0f%% over the last %d attempts (%d total)\n",
				sm.Skill.DisplayName(), sm.Level()*100, len(sm.Recent), sm.TotalAttempts)
		}
	}

	b.WriteString("\nRecommended learning nodes:\n")
	for _, n := range rec.RecommendedNodes {
		fmt.Fprintf(&b, "- id=%s | %s | skill %s", n.ID, n.Title, n.TargetSkill.DisplayName())
		if n.EstimatedMinutes > 0 {
			fmt.Fprintf(&b, " | ~%d min", n.EstimatedMinutes)
		}
		b.WriteString("\n")
		if n.Description != "" {
			fmt.Fprintf(&b, "  %s\n", n.Description)
		}
	}

	b.WriteString(`
Instructions:
1. Write one step for each recommended node, using its exact id as node_id. Do not invent nodes.
2. Each action must be concrete: what to read, practise or review, and how to check progress.
3. Keep each step between 5 and 180 minutes; stay close to the estimated time when given.
4. The summary explains which cognitive level to strengthen and how the stronger level can help.
5. Use plain text. No Markdown.`)

	return b.String()
}
