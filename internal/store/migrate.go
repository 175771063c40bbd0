package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/paesprep/ent/schema"
)

// Table names.
const (
	tableLearningNodes    = "learning_nodes"
	tableNodeProgress     = "node_progress"
	tableExerciseAttempts = "exercise_attempts"
	tableLLMEvents        = "llm_request_events"
)

// entities lists every ent schema and the table it is stored in.
var entities = []struct {
	table  string
	schema ent.Interface
}{
	{tableLearningNodes, entschema.LearningNode{}},
	{tableNodeProgress, entschema.NodeProgress{}},
	{tableExerciseAttempts, entschema.ExerciseAttempt{}},
	{tableLLMEvents, entschema.LLMRequestEvent{}},
}

// Tables builds the migration tables from the ent schema definitions.
func Tables() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableFor(e.table, e.schema)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := &schema.Table{Name: name}
	cols := make(map[string]*schema.Column)

	hasID := false
	for _, f := range fields {
		if f.Descriptor().Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		t.Columns = append(t.Columns, id)
		t.PrimaryKey = []*schema.Column{id}
		cols["id"] = id
	}

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Size:     int64(d.Size),
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		switch v := d.Default.(type) {
		case string, int, int64, bool, float64:
			col.Default = v
		}
		if d.Name == "id" {
			col.Unique = false
			t.PrimaryKey = []*schema.Column{col}
		}
		t.Columns = append(t.Columns, col)
		cols[d.Name] = col
	}

	for _, ix := range indexes {
		d := ix.Descriptor()
		idx := &schema.Index{Unique: d.Unique, Name: d.StorageKey}
		if idx.Name == "" {
			idx.Name = name + "_" + strings.Join(d.Fields, "_")
		}
		for _, fname := range d.Fields {
			c, ok := cols[fname]
			if !ok {
				return nil, fmt.Errorf("index %s: unknown field %q", idx.Name, fname)
			}
			idx.Columns = append(idx.Columns, c)
		}
		t.Indexes = append(t.Indexes, idx)
	}
	return t, nil
}

// migrate creates or updates every table.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tables, err := Tables()
	if err != nil {
		return err
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
