package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/gonogo/internal/gate"
)

// ErrNotFound is returned when a decision ID does not exist in the log.
var ErrNotFound = errors.New("decision not found")

// Decision is one persisted gate evaluation.
type Decision struct {
	ID        string
	CreatedAt string
	Context   string
	Verdict   gate.Verdict
	Metrics   gate.CoreMetrics
	RuleFail  bool
	Reason    string
	Protocol  string
	Record    string
}

const decisionColumns = `id, created_at, context, verdict, readiness, entropy, drift, safety, trend, variance, rule_fail, reason, protocol, record`

// Get returns a single decision by ID.
func (s *Store) Get(ctx context.Context, id string) (Decision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+decisionColumns+` FROM decisions WHERE id = ?`, id)

	d, err := scanDecision(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Decision{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Decision{}, fmt.Errorf("get decision: %w", err)
	}
	return d, nil
}

// List returns the most recent decisions, newest first, up to limit.
// A non-positive limit returns nothing.
func (s *Store) List(ctx context.Context, limit int) ([]Decision, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+decisionColumns+` FROM decisions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("list decisions: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	return decisions, nil
}

// ListByContext returns the most recent decisions for one context,
// newest first, up to limit.
func (s *Store) ListByContext(ctx context.Context, label string, limit int) ([]Decision, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+decisionColumns+` FROM decisions WHERE context = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		label, limit)
	if err != nil {
		return nil, fmt.Errorf("list decisions by context: %w", err)
	}
	defer rows.Close()

	var decisions []Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("list decisions by context: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list decisions by context: %w", err)
	}
	return decisions, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDecision(row scanner) (Decision, error) {
	var (
		d        Decision
		verdict  string
		ruleFail int
	)
	err := row.Scan(
		&d.ID,
		&d.CreatedAt,
		&d.Context,
		&verdict,
		&d.Metrics.Readiness,
		&d.Metrics.Entropy,
		&d.Metrics.Drift,
		&d.Metrics.Safety,
		&d.Metrics.Trend,
		&d.Metrics.Variance,
		&ruleFail,
		&d.Reason,
		&d.Protocol,
		&d.Record,
	)
	if err != nil {
		return Decision{}, err
	}
	d.Verdict = gate.Verdict(verdict)
	d.RuleFail = ruleFail != 0
	return d, nil
}
