// Package report renders recommendations, mastery and study plans for the
// terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/coach"
	"github.com/abhisek/paesprep/internal/mastery"
	"github.com/abhisek/paesprep/internal/recommend"
	"github.com/abhisek/paesprep/internal/ui/components"
	"github.com/abhisek/paesprep/internal/ui/theme"
)

const DefaultWidth = 72

// Options controls rendering.
type Options struct {
	Width int
	Plain bool
}

func (o Options) width() int {
	if o.Width < 40 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) style(s lipgloss.Style) lipgloss.Style {
	if o.Plain {
		return lipgloss.NewStyle()
	}
	return s
}

const noDataText = "No attempts recorded yet. Answer a few exercises to get a recommendation."

// Recommendation renders tier scores, the weakest and strongest tiers, the
// recommended nodes and the focus text.
func Recommendation(test bloom.Test, rec recommend.Recommendation, opts Options) string {
	var b strings.Builder

	title := "Skill recommendation"
	if test != "" {
		title += " · " + test.DisplayName()
	}
	b.WriteString(opts.style(theme.Title).Render(title) + "\n\n")

	if !rec.HasData() {
		b.WriteString(opts.style(theme.Hint).Render(noDataText) + "\n")
		return b.String()
	}

	b.WriteString(tierBars(rec.TierStrengths, opts))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s\n",
		opts.style(theme.Label).Render("Weakest: "),
		opts.style(theme.Weakness).Render(tierName(*rec.WeakestTier)))
	fmt.Fprintf(&b, "%s %s\n\n",
		opts.style(theme.Label).Render("Strongest:"),
		opts.style(theme.Strength).Render(tierName(*rec.StrongestTier)))

	b.WriteString(opts.style(theme.Label).Render("Recommended nodes") + "\n")
	if len(rec.RecommendedNodes) == 0 {
		b.WriteString(opts.style(theme.Hint).Render("  Nothing pending for this tier.") + "\n")
	}
	for i, n := range rec.RecommendedNodes {
		b.WriteString(nodeLine(i+1, n, opts) + "\n")
	}

	if rec.SuggestedFocusText != "" {
		b.WriteString("\n" + opts.style(theme.Highlight).Width(opts.width()).Render(rec.SuggestedFocusText) + "\n")
	}
	return b.String()
}

func tierBars(strengths []recommend.TierStrength, opts Options) string {
	var b strings.Builder
	for _, ts := range strengths {
		bar := components.ProgressBar{
			Label:       tierName(ts.Tier),
			LabelWidth:  24,
			Percent:     ts.Score,
			ShowPercent: true,
			Width:       opts.width() - 3,
			Plain:       opts.Plain,
		}
		marker := "  "
		if ts.IsStrength {
			marker = " " + opts.style(theme.Strength).Render("✓")
		}
		b.WriteString(bar.View() + marker + "\n")
	}
	return b.String()
}

func tierName(t bloom.Tier) string {
	return fmt.Sprintf("%s (%s)", t.DisplayName(), t.SpanishName())
}

func nodeLine(i int, n recommend.LearningNode, opts Options) string {
	line := fmt.Sprintf("  %d. %s", i, opts.style(theme.Body).Render(n.ID))
	if n.Title != "" {
		line += "  " + n.Title
	}
	detail := n.TargetSkill.DisplayName()
	if n.EstimatedMinutes > 0 {
		detail += fmt.Sprintf(", ~%d min", n.EstimatedMinutes)
	}
	return line + " " + opts.style(theme.Subtitle).Render("("+detail+")")
}

// Mastery renders one row per skill with its recent level and state.
func Mastery(ms []*mastery.SkillMastery, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.style(theme.Title).Render("Skill mastery") + "\n\n")

	if len(ms) == 0 {
		b.WriteString(opts.style(theme.Hint).Render(noDataText) + "\n")
		return b.String()
	}

	for _, sm := range ms {
		bar := components.ProgressBar{
			Label:       sm.Skill.DisplayName(),
			LabelWidth:  28,
			Percent:     sm.Level(),
			ShowPercent: true,
			Width:       opts.width() - 24,
			Plain:       opts.Plain,
		}
		fmt.Fprintf(&b, "%s  %s\n", bar.View(),
			opts.style(theme.Subtitle).Render(fmt.Sprintf("%-10s %d/%d", sm.State().DisplayName(), sm.CorrectCount, sm.TotalAttempts)))
	}
	return b.String()
}

// Nodes renders a catalog listing.
func Nodes(nodes []recommend.LearningNode, opts Options) string {
	var b strings.Builder
	b.WriteString(opts.style(theme.Title).Render(fmt.Sprintf("Learning nodes (%d)", len(nodes))) + "\n\n")
	for i, n := range nodes {
		b.WriteString(nodeLine(i+1, n, opts) + "\n")
	}
	return b.String()
}

// Plan renders a study plan inside a card.
func Plan(p *coach.Plan, opts Options) string {
	var b strings.Builder

	b.WriteString(opts.style(theme.Title).Render("Study plan") + "\n")
	inner := opts.width() - 4
	b.WriteString(opts.style(theme.Body).Width(inner).Render(p.Summary) + "\n\n")

	for i, s := range p.Steps {
		head := fmt.Sprintf("%d. %s", i+1, s.NodeID)
		if s.Title != "" {
			head += " · " + s.Title
		}
		fmt.Fprintf(&b, "%s %s\n", opts.style(theme.Label).Render(head),
			opts.style(theme.Subtitle).Render(fmt.Sprintf("(%d min)", s.Minutes)))
		b.WriteString(opts.style(theme.Body).Width(inner).Render("   "+s.Action) + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n", opts.style(theme.Subtitle).Render(fmt.Sprintf("Total: %d min", p.TotalMinutes())))
	if p.Encouragement != "" {
		b.WriteString(opts.style(theme.Highlight).Render(p.Encouragement) + "\n")
	}
	if p.Source == coach.SourceFallback {
		b.WriteString(opts.style(theme.Hint).Render("Generated without an LLM.") + "\n")
	}

	if opts.Plain {
		return b.String()
	}
	return theme.Card.Width(opts.width()).Render(strings.TrimRight(b.String(), "\n")) + "\n"
}
