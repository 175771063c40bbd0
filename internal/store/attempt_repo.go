package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/paesprep/internal/bloom"
)

// attemptRepo implements AttemptRepo backed by the global sequence counter.
type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *attemptRepo) Append(ctx context.Context, rec AttemptRecord) (*AttemptRecord, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	rec.Sequence = seqNum
	rec.Timestamp = time.Now().UTC()

	query, args := builder().Insert(tableExerciseAttempts).
		Columns("sequence", "timestamp", "user_id", "skill", "node_id", "correct", "response_ms").
		Values(rec.Sequence, rec.Timestamp, rec.UserID, string(rec.Skill), rec.NodeID, rec.Correct, rec.ResponseMs).
		Returning("id").
		Query()

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return &rec, nil
}

func (r *attemptRepo) ForUser(ctx context.Context, userID string, opts QueryOpts) ([]AttemptRecord, error) {
	sel := builder().Select("id", "sequence", "timestamp", "user_id", "skill", "node_id", "correct", "response_ms").
		From(entsql.Table(tableExerciseAttempts)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec   AttemptRecord
			skill string
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.UserID, &skill,
			&rec.NodeID, &rec.Correct, &rec.ResponseMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Skill = bloom.Skill(skill)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	// Queried newest first so Limit keeps the most recent; return oldest first.
	slices.Reverse(out)
	return out, nil
}

// applyQueryOpts adds the QueryOpts filters to a selector.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To))
	}
}
