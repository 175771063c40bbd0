// Package catalog loads learning-node catalogues from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/recommend"
)

//go:embed default.yaml
var defaultCatalog []byte

// Difficulty labels accepted in catalogue files.
var difficulties = []string{"basic", "intermediate", "advanced"}

type file struct {
	Nodes []entry `yaml:"nodes"`
}

type entry struct {
	ID               string   `yaml:"id"`
	Code             string   `yaml:"code"`
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	Test             string   `yaml:"test"`
	Skill            string   `yaml:"skill"`
	Position         int      `yaml:"position"`
	Difficulty       string   `yaml:"difficulty"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	DependsOn        []string `yaml:"depends_on"`
}

// Catalog is a parsed set of learning nodes.
type Catalog struct {
	Nodes []recommend.LearningNode
}

// Default returns the built-in catalogue.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads and parses a catalogue file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalogue. Nodes without an id get a random UUID and nodes
// without a position keep their file order. The result is sorted by test and
// position; ties keep file order.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	nodes := make([]recommend.LearningNode, 0, len(f.Nodes))
	for i, e := range f.Nodes {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uuid.NewString()
		}
		pos := e.Position
		if pos == 0 {
			pos = i + 1
		}
		nodes = append(nodes, recommend.LearningNode{
			ID:               id,
			Code:             strings.TrimSpace(e.Code),
			Title:            strings.TrimSpace(e.Title),
			Description:      strings.TrimSpace(e.Description),
			Test:             bloom.Test(strings.ToUpper(strings.TrimSpace(e.Test))),
			TargetSkill:      bloom.Skill(strings.ToUpper(strings.TrimSpace(e.Skill))),
			Position:         pos,
			Difficulty:       strings.ToLower(strings.TrimSpace(e.Difficulty)),
			EstimatedMinutes: e.EstimatedMinutes,
			DependsOn:        e.DependsOn,
		})
	}

	slices.SortStableFunc(nodes, func(a, b recommend.LearningNode) int {
		if c := strings.Compare(string(a.Test), string(b.Test)); c != 0 {
			return c
		}
		return a.Position - b.Position
	})
	return &Catalog{Nodes: nodes}, nil
}

// ForTest returns the nodes of one PAES test, or all nodes when test is empty.
func (c *Catalog) ForTest(test bloom.Test) []recommend.LearningNode {
	if test == "" {
		return c.Nodes
	}
	var out []recommend.LearningNode
	for _, n := range c.Nodes {
		if n.Test == test {
			out = append(out, n)
		}
	}
	return out
}

// Validate returns an error listing every structural problem in the
// catalogue, plus warnings for content the recommender tolerates: skills
// without a cognitive tier and skills not assessed by the node's test.
func (c *Catalog) Validate() (warnings []string, err error) {
	var errs []string

	ids := make(map[string]bool, len(c.Nodes))
	codes := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if ids[n.ID] {
			errs = append(errs, fmt.Sprintf("duplicate node id: %q", n.ID))
		}
		ids[n.ID] = true
		if n.Code != "" {
			if codes[n.Code] {
				errs = append(errs, fmt.Sprintf("duplicate node code: %q", n.Code))
			}
			codes[n.Code] = true
		}
	}

	for _, n := range c.Nodes {
		label := n.ID
		if n.Code != "" {
			label = n.Code
		}
		if n.Title == "" {
			errs = append(errs, fmt.Sprintf("node %q: empty title", label))
		}
		if _, perr := bloom.ParseTest(string(n.Test)); perr != nil {
			errs = append(errs, fmt.Sprintf("node %q: unknown test %q", label, n.Test))
		}
		if n.TargetSkill == "" {
			errs = append(errs, fmt.Sprintf("node %q: empty skill", label))
		} else if !n.TargetSkill.Known() {
			warnings = append(warnings, fmt.Sprintf("node %q: skill %q has no cognitive tier, %q will be used",
				label, n.TargetSkill, bloom.FallbackTier))
		} else if !slices.Contains(bloom.SkillsForTest(n.Test), n.TargetSkill) && bloom.SkillsForTest(n.Test) != nil {
			warnings = append(warnings, fmt.Sprintf("node %q: skill %q is not assessed by %s",
				label, n.TargetSkill, n.Test))
		}
		if n.Difficulty != "" && !slices.Contains(difficulties, n.Difficulty) {
			errs = append(errs, fmt.Sprintf("node %q: unknown difficulty %q", label, n.Difficulty))
		}
		if n.EstimatedMinutes < 0 {
			errs = append(errs, fmt.Sprintf("node %q: negative estimated_minutes", label))
		}
		for _, dep := range n.DependsOn {
			if !codes[dep] {
				errs = append(errs, fmt.Sprintf("node %q: depends on unknown code %q", label, dep))
			}
			if dep == n.Code {
				errs = append(errs, fmt.Sprintf("node %q: depends on itself", label))
			}
		}
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}
