package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type pgStore struct {
	db *bun.DB
}

var _ Store = (*pgStore)(nil)

// NewStore creates a new postgres implementation of the history store
func NewStore(db *bun.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Create(ctx context.Context, op *Operation) error {
	_, err := s.db.NewInsert().
		Model(toOperationDao(op)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

func (s *pgStore) Complete(ctx context.Context, id uuid.UUID, c Completion) error {
	finished := c.FinishedAt.UTC()
	res, err := s.db.NewUpdate().
		Model((*OperationDao)(nil)).
		Set("status = ?", string(c.Status)).
		Set("error_kind = ?", optional(c.ErrorKind)).
		Set("error_message = ?", optional(c.ErrorMessage)).
		Set("tx_id = ?", optional(c.TxID)).
		Set("finished_at = ?", finished).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to complete operation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete operation: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) Get(ctx context.Context, id uuid.UUID) (*Operation, error) {
	dao := new(OperationDao)
	err := s.db.NewSelect().
		Model(dao).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}
	return toOperation(dao), nil
}

func (s *pgStore) List(ctx context.Context, opts ListOptions) ([]*Operation, error) {
	var daos []OperationDao
	query := s.db.NewSelect().
		Model(&daos).
		Order("started_at DESC")
	if opts.Form != "" {
		query = query.Where("form = ?", opts.Form)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}

	ops := make([]*Operation, len(daos))
	for i := range daos {
		ops[i] = toOperation(&daos[i])
	}
	return ops, nil
}

func (s *pgStore) Summarize(ctx context.Context, from, to time.Time) (Summary, error) {
	var row struct {
		Total      int             `bun:"total"`
		Succeeded  int             `bun:"succeeded"`
		Failed     int             `bun:"failed"`
		AvgConfirm sql.NullFloat64 `bun:"avg_confirm"`
	}
	err := s.db.NewSelect().
		Model((*OperationDao)(nil)).
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS succeeded", string(StatusSucceeded)).
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS failed", string(StatusFailed)).
		ColumnExpr("AVG(EXTRACT(EPOCH FROM finished_at - started_at)) FILTER (WHERE status = ? AND finished_at IS NOT NULL) AS avg_confirm", string(StatusSucceeded)).
		Where("started_at >= ?", from.UTC()).
		Where("started_at < ?", to.UTC()).
		Scan(ctx, &row)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize operations: %w", err)
	}

	sum := Summary{Total: row.Total, Succeeded: row.Succeeded, Failed: row.Failed}
	if row.AvgConfirm.Valid {
		sum.AvgConfirm = time.Duration(row.AvgConfirm.Float64 * float64(time.Second))
	}
	return sum, nil
}

func (s *pgStore) Daily(ctx context.Context, from, to time.Time) ([]DayCount, error) {
	var rows []struct {
		Day   time.Time `bun:"day"`
		Count int       `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*OperationDao)(nil)).
		ColumnExpr("date_trunc('day', started_at AT TIME ZONE 'UTC') AS day").
		ColumnExpr("COUNT(*) AS count").
		Where("started_at >= ?", from.UTC()).
		Where("started_at < ?", to.UTC()).
		GroupExpr("day").
		OrderExpr("day ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count daily operations: %w", err)
	}

	out := make([]DayCount, len(rows))
	for i, r := range rows {
		out[i] = DayCount{Day: dayStart(r.Day), Count: r.Count}
	}
	return out, nil
}
