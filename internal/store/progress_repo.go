package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/paesprep/internal/recommend"
)

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) SetStatus(ctx context.Context, userID, nodeID string, status recommend.ProgressStatus) error {
	query, args := builder().Insert(tableNodeProgress).
		Columns("user_id", "node_id", "status", "updated_at").
		Values(userID, nodeID, string(status), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "node_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set progress %s/%s: %w", userID, nodeID, err)
	}
	return nil
}

func (r *progressRepo) ForUser(ctx context.Context, userID string) (map[string]recommend.NodeProgress, error) {
	query, args := builder().Select("node_id", "status").
		From(entsql.Table(tableNodeProgress)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]recommend.NodeProgress)
	for rows.Next() {
		var nodeID, status string
		if err := rows.Scan(&nodeID, &status); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out[nodeID] = recommend.NodeProgress{
			NodeID: nodeID,
			Status: recommend.ProgressStatus(status),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}
