package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LearningNode is a unit of study content targeting one PAES skill.
type LearningNode struct {
	ent.Schema
}

func (LearningNode) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable(),
		field.String("code").
			Default(""),
		field.String("title"),
		field.Text("description").
			Default(""),
		field.String("test").
			Comment("PAES test code, e.g. MATEMATICA_1"),
		field.String("skill").
			Comment("Target skill code, e.g. SOLVE_PROBLEMS"),
		field.Int("position").
			Default(0).
			Comment("Catalogue order within the test"),
		field.String("difficulty").
			Default(""),
		field.Int("estimated_minutes").
			Default(0),
		field.Strings("depends_on").
			Optional().
			Comment("Codes of prerequisite nodes, stored as a JSON array"),
		field.Time("created_at"),
	}
}

func (LearningNode) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("test", "position"),
	}
}
