package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/usage"
	"github.com/x402dash/x402dash/ports"
)

const usageSelect = `
	SELECT id, tenant_id, agent_id, agent_type, method, endpoint, billing_key,
		network, asset, amount_atomic, tx_hash, status,
		created_at, requested_at, settled_at, latency_ms,
		client_ip, user_agent, error_message, metadata
	FROM usage_events
`

// UsageStore implements ports.UsageStore using SQLite.
type UsageStore struct {
	db  *DB
	ids ports.IDGenerator
}

// NewUsageStore creates a new SQLite usage store.
func NewUsageStore(db *DB, ids ports.IDGenerator) *UsageStore {
	return &UsageStore{db: db, ids: ids}
}

// Insert assigns an id and stores the event.
func (s *UsageStore) Insert(ctx context.Context, e usage.Event) (string, error) {
	e.ID = s.ids.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO usage_events (
			id, tenant_id, agent_id, agent_type, method, endpoint, billing_key,
			network, asset, amount_atomic, tx_hash, status,
			created_at, requested_at, settled_at, latency_ms,
			client_ip, user_agent, error_message, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.TenantID, e.AgentID, string(e.AgentType), e.Method, e.Endpoint, e.BillingKey,
		e.Network, e.Asset, nullInt(e.AmountAtomic), e.TxHash, string(e.Status),
		nanos(e.CreatedAt), nullTime(e.RequestedAt), nullTime(e.SettledAt), nullInt(e.LatencyMs),
		e.ClientIP, e.UserAgent, e.ErrorMessage, e.Metadata,
	)
	if err != nil {
		return "", fmt.Errorf("insert usage event: %w", classify(err))
	}
	return e.ID, nil
}

// Get retrieves an event by id.
func (s *UsageStore) Get(ctx context.Context, id string) (usage.Event, error) {
	row := s.db.QueryRowContext(ctx, usageSelect+" WHERE id = ?", id)
	e, err := scanUsage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return usage.Event{}, errs.ErrNotFound
	}
	if err != nil {
		return usage.Event{}, fmt.Errorf("get usage event: %w", classify(err))
	}
	return e, nil
}

// Scan returns every event matching f, oldest first.
func (s *UsageStore) Scan(ctx context.Context, f query.Filter) ([]usage.Event, error) {
	clause, args := where(f, usageColumns)
	rows, err := s.db.QueryContext(ctx, usageSelect+clause+" ORDER BY created_at, id", args...)
	if err != nil {
		return nil, fmt.Errorf("scan usage events: %w", classify(err))
	}
	defer rows.Close()

	events := make([]usage.Event, 0)
	for rows.Next() {
		e, err := scanUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan usage events: %w", classify(err))
	}
	return events, nil
}

// DeleteAll removes every usage event.
func (s *UsageStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM usage_events"); err != nil {
		return fmt.Errorf("delete usage events: %w", classify(err))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUsage(r rowScanner) (usage.Event, error) {
	var (
		e                      usage.Event
		agentType, status      string
		createdAt              int64
		amount, latency        sql.NullInt64
		requestedAt, settledAt sql.NullInt64
	)
	err := r.Scan(
		&e.ID, &e.TenantID, &e.AgentID, &agentType, &e.Method, &e.Endpoint, &e.BillingKey,
		&e.Network, &e.Asset, &amount, &e.TxHash, &status,
		&createdAt, &requestedAt, &settledAt, &latency,
		&e.ClientIP, &e.UserAgent, &e.ErrorMessage, &e.Metadata,
	)
	if err != nil {
		return usage.Event{}, err
	}
	e.AgentType = usage.AgentType(agentType)
	e.Status = usage.Status(status)
	e.AmountAtomic = intPtr(amount)
	e.LatencyMs = intPtr(latency)
	e.CreatedAt = fromNanos(createdAt)
	e.RequestedAt = timePtr(requestedAt)
	e.SettledAt = timePtr(settledAt)
	return e, nil
}

// Ensure interface compliance.
var _ ports.UsageStore = (*UsageStore)(nil)
