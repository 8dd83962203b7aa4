package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OperationDao maps to the 'operations' table in PostgreSQL.
type OperationDao struct {
	bun.BaseModel `bun:"table:operations,alias:op"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	Form          string     `bun:"form,notnull,type:varchar(32)"`
	Network       string     `bun:"network,notnull,type:varchar(64)"`
	Address       string     `bun:"address,notnull,type:varchar(64)"`
	Status        string     `bun:"status,notnull,type:varchar(16)"`
	ErrorKind     *string    `bun:"error_kind,type:varchar(32)"`
	ErrorMessage  *string    `bun:"error_message,type:text"`
	TxID          *string    `bun:"tx_id,type:varchar(128)"`
	Amount        *string    `bun:"amount,type:varchar(80)"`
	Recipient     *string    `bun:"recipient,type:varchar(64)"`
	StartedAt     time.Time  `bun:"started_at,notnull"`
	FinishedAt    *time.Time `bun:"finished_at"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp"`
}

func toOperationDao(op *Operation) *OperationDao {
	return &OperationDao{
		ID:           op.ID,
		Form:         op.Form,
		Network:      op.Network,
		Address:      op.Address,
		Status:       string(op.Status),
		ErrorKind:    optional(op.ErrorKind),
		ErrorMessage: optional(op.ErrorMessage),
		TxID:         optional(op.TxID),
		Amount:       optional(op.Amount),
		Recipient:    optional(op.Recipient),
		StartedAt:    op.StartedAt,
		FinishedAt:   op.FinishedAt,
	}
}

func toOperation(dao *OperationDao) *Operation {
	op := &Operation{
		ID:           dao.ID,
		Form:         dao.Form,
		Network:      dao.Network,
		Address:      dao.Address,
		Status:       Status(dao.Status),
		ErrorKind:    deref(dao.ErrorKind),
		ErrorMessage: deref(dao.ErrorMessage),
		TxID:         deref(dao.TxID),
		Amount:       deref(dao.Amount),
		Recipient:    deref(dao.Recipient),
		StartedAt:    dao.StartedAt.UTC(),
	}
	if dao.FinishedAt != nil {
		finished := dao.FinishedAt.UTC()
		op.FinishedAt = &finished
	}
	return op
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
