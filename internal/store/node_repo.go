package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/recommend"
)

var nodeColumns = []string{
	"id", "code", "title", "description", "test", "skill",
	"position", "difficulty", "estimated_minutes", "depends_on",
}

// nodeRepo implements NodeRepo.
type nodeRepo struct {
	db *sql.DB
}

func (r *nodeRepo) Upsert(ctx context.Context, nodes []recommend.LearningNode) error {
	if len(nodes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, n := range nodes {
		var dependsOn any
		if len(n.DependsOn) > 0 {
			b, err := json.Marshal(n.DependsOn)
			if err != nil {
				return fmt.Errorf("encode depends_on of %s: %w", n.ID, err)
			}
			dependsOn = string(b)
		}

		query, args := builder().Insert(tableLearningNodes).
			Columns(append(nodeColumns, "created_at")...).
			Values(n.ID, n.Code, n.Title, n.Description, string(n.Test), string(n.TargetSkill),
				n.Position, n.Difficulty, n.EstimatedMinutes, dependsOn, now).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					for _, c := range nodeColumns[1:] {
						u.SetExcluded(c)
					}
				}),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert node %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func (r *nodeRepo) List(ctx context.Context, test bloom.Test) ([]recommend.LearningNode, error) {
	sel := builder().Select(nodeColumns...).
		From(entsql.Table(tableLearningNodes)).
		OrderBy("test", "position", "id")
	if test != "" {
		sel.Where(entsql.EQ("test", string(test)))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []recommend.LearningNode
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

func (r *nodeRepo) Get(ctx context.Context, id string) (*recommend.LearningNode, error) {
	query, args := builder().Select(nodeColumns...).
		From(entsql.Table(tableLearningNodes)).
		Where(entsql.EQ("id", id)).
		Query()

	n, err := scanNode(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("node %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *nodeRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(tableLearningNodes)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count nodes: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*recommend.LearningNode, error) {
	var (
		n           recommend.LearningNode
		test, skill string
		dependsOn   sql.NullString
	)
	err := row.Scan(&n.ID, &n.Code, &n.Title, &n.Description, &test, &skill,
		&n.Position, &n.Difficulty, &n.EstimatedMinutes, &dependsOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan node: %w", err)
	}
	n.Test = bloom.Test(test)
	n.TargetSkill = bloom.Skill(skill)
	if dependsOn.Valid && dependsOn.String != "" {
		if err := json.Unmarshal([]byte(dependsOn.String), &n.DependsOn); err != nil {
			return nil, fmt.Errorf("decode depends_on of %s: %w", n.ID, err)
		}
	}
	return &n, nil
}
