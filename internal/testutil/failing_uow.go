package testutil

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stickies/internal/db"
)

// FailingKeyUoW runs transactions against DB but fails any write whose
// first argument is Key, so a multi-key update can be checked for rollback
// after its earlier writes succeeded. Reads and writes to other keys pass
// through.
type FailingKeyUoW struct {
	DB  *sql.DB
	Key string
	Err error
}

func (u *FailingKeyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &failingKeyTx{DBTX: tx, key: u.Key, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingKeyTx struct {
	db.DBTX
	key string
	err error
}

func (f *failingKeyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if len(args) > 0 && args[0] == f.key {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
