package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/gonogo/internal/gate"
)

// IDGenerator produces decision IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 decision IDs.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs for testing.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns IDs in order.
// It panics when the IDs are exhausted; tests must supply enough.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Append inserts one decision into the log and returns its ID.
// Duplicate IDs are silently ignored (ON CONFLICT DO NOTHING), making
// replays idempotent; other constraint violations still return errors.
//
// Timestamps are RFC 3339 with nanoseconds, in UTC.
func (s *Store) Append(ctx context.Context, gen IDGenerator, result gate.DecisionResult) (string, error) {
	id := gen.Generate()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	ruleFail := 0
	if result.RuleFail {
		ruleFail = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions
		(id, created_at, context, verdict, readiness, entropy, drift, safety, trend, variance, rule_fail, reason, protocol, record)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		createdAt,
		result.Context,
		string(result.Verdict),
		result.Metrics.Readiness,
		result.Metrics.Entropy,
		result.Metrics.Drift,
		result.Metrics.Safety,
		result.Metrics.Trend,
		result.Metrics.Variance,
		ruleFail,
		result.PrimaryReason(),
		result.Protocol,
		string(result.Record()),
	)
	if err != nil {
		return "", fmt.Errorf("append decision: %w", err)
	}

	return id, nil
}
