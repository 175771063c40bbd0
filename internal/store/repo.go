package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/paesprep/internal/bloom"
	"github.com/abhisek/paesprep/internal/recommend"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// NodeRepo manages the learning-node catalogue.
type NodeRepo interface {
	// Upsert inserts nodes or replaces existing nodes with the same ID.
	Upsert(ctx context.Context, nodes []recommend.LearningNode) error

	// List returns the nodes of a test, or all nodes when test is empty,
	// ordered by test, position, then ID.
	List(ctx context.Context, test bloom.Test) ([]recommend.LearningNode, error)

	// Get returns a node by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*recommend.LearningNode, error)

	// Count returns the number of stored nodes.
	Count(ctx context.Context) (int, error)
}

// ProgressRepo manages per-learner node progress.
type ProgressRepo interface {
	// SetStatus creates or updates the learner's status for a node.
	SetStatus(ctx context.Context, userID, nodeID string, status recommend.ProgressStatus) error

	// ForUser returns the learner's progress keyed by node ID.
	ForUser(ctx context.Context, userID string) (map[string]recommend.NodeProgress, error)
}

// AttemptRecord is a stored exercise attempt.
type AttemptRecord struct {
	ID         int
	Sequence   int64
	Timestamp  time.Time
	UserID     string
	Skill      bloom.Skill
	NodeID     string
	Correct    bool
	ResponseMs int
}

// AttemptRepo appends and reads exercise attempts.
type AttemptRepo interface {
	// Append records an attempt, assigning its sequence and timestamp.
	Append(ctx context.Context, rec AttemptRecord) (*AttemptRecord, error)

	// ForUser returns the learner's attempts in ascending sequence order.
	// A positive Limit keeps the most recent attempts.
	ForUser(ctx context.Context, userID string, opts QueryOpts) ([]AttemptRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
