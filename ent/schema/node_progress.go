package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// NodeProgress is a learner's completion state for one learning node.
type NodeProgress struct {
	ent.Schema
}

func (NodeProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id"),
		field.String("node_id"),
		field.String("status").
			Default("not_started").
			Comment("not_started, in_progress or completed"),
		field.Time("updated_at"),
	}
}

func (NodeProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "node_id").
			Unique(),
	}
}
