package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/x402dash/x402dash/domain/errs"
	"github.com/x402dash/x402dash/domain/query"
	"github.com/x402dash/x402dash/domain/spending"
	"github.com/x402dash/x402dash/ports"
)

const spendingSelect = `
	SELECT id, buyer_id, buyer_name, service_id, service_name, service_url,
		endpoint, method, category, network, asset, amount_atomic, tx_hash,
		payment_id, status, budget_id, project_id,
		created_at, requested_at, settled_at, latency_ms,
		client_ip, user_agent, error_message, metadata
	FROM spending_events
`

// SpendingStore implements ports.SpendingStore using SQLite.
type SpendingStore struct {
	db  *DB
	ids ports.IDGenerator
}

// NewSpendingStore creates a new SQLite spending store.
func NewSpendingStore(db *DB, ids ports.IDGenerator) *SpendingStore {
	return &SpendingStore{db: db, ids: ids}
}

// Insert assigns an id and stores the event.
func (s *SpendingStore) Insert(ctx context.Context, e spending.Event) (string, error) {
	e.ID = s.ids.New()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO spending_events (
			id, buyer_id, buyer_name, service_id, service_name, service_url,
			endpoint, method, category, network, asset, amount_atomic, tx_hash,
			payment_id, status, budget_id, project_id,
			created_at, requested_at, settled_at, latency_ms,
			client_ip, user_agent, error_message, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID, e.BuyerID, e.BuyerName, e.ServiceID, e.ServiceName, e.ServiceURL,
		e.Endpoint, e.Method, string(e.Category), e.Network, e.Asset, nullInt(e.AmountAtomic), e.TxHash,
		e.PaymentID, string(e.Status), e.BudgetID, e.ProjectID,
		nanos(e.CreatedAt), nullTime(e.RequestedAt), nullTime(e.SettledAt), nullInt(e.LatencyMs),
		e.ClientIP, e.UserAgent, e.ErrorMessage, e.Metadata,
	)
	if err != nil {
		return "", fmt.Errorf("insert spending event: %w", classify(err))
	}
	return e.ID, nil
}

// Get retrieves an event by id.
func (s *SpendingStore) Get(ctx context.Context, id string) (spending.Event, error) {
	row := s.db.QueryRowContext(ctx, spendingSelect+" WHERE id = ?", id)
	e, err := scanSpending(row)
	if errors.Is(err, sql.ErrNoRows) {
		return spending.Event{}, errs.ErrNotFound
	}
	if err != nil {
		return spending.Event{}, fmt.Errorf("get spending event: %w", classify(err))
	}
	return e, nil
}

// Scan returns every event matching f, oldest first.
func (s *SpendingStore) Scan(ctx context.Context, f query.Filter) ([]spending.Event, error) {
	clause, args := where(f, spendingColumns)
	rows, err := s.db.QueryContext(ctx, spendingSelect+clause+" ORDER BY created_at, id", args...)
	if err != nil {
		return nil, fmt.Errorf("scan spending events: %w", classify(err))
	}
	defer rows.Close()

	events := make([]spending.Event, 0)
	for rows.Next() {
		e, err := scanSpending(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spending row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan spending events: %w", classify(err))
	}
	return events, nil
}

// DeleteAll removes every spending event.
func (s *SpendingStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM spending_events"); err != nil {
		return fmt.Errorf("delete spending events: %w", classify(err))
	}
	return nil
}

func scanSpending(r rowScanner) (spending.Event, error) {
	var (
		e                      spending.Event
		category, status       string
		createdAt              int64
		amount, latency        sql.NullInt64
		requestedAt, settledAt sql.NullInt64
	)
	err := r.Scan(
		&e.ID, &e.BuyerID, &e.BuyerName, &e.ServiceID, &e.ServiceName, &e.ServiceURL,
		&e.Endpoint, &e.Method, &category, &e.Network, &e.Asset, &amount, &e.TxHash,
		&e.PaymentID, &status, &e.BudgetID, &e.ProjectID,
		&createdAt, &requestedAt, &settledAt, &latency,
		&e.ClientIP, &e.UserAgent, &e.ErrorMessage, &e.Metadata,
	)
	if err != nil {
		return spending.Event{}, err
	}
	e.Category = spending.Category(category)
	e.Status = spending.Status(status)
	e.AmountAtomic = intPtr(amount)
	e.LatencyMs = intPtr(latency)
	e.CreatedAt = fromNanos(createdAt)
	e.RequestedAt = timePtr(requestedAt)
	e.SettledAt = timePtr(settledAt)
	return e, nil
}

// Ensure interface compliance.
var _ ports.SpendingStore = (*SpendingStore)(nil)
