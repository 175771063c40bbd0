package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ExerciseAttempt records one answered exercise.
type ExerciseAttempt struct {
	ent.Schema
}

func (ExerciseAttempt) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ExerciseAttempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id"),
		field.String("skill"),
		field.String("node_id").
			Default(""),
		field.Bool("correct"),
		field.Int("response_ms").
			Default(0),
	}
}

func (ExerciseAttempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "skill"),
	}
}
