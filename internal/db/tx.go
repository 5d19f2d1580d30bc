package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RunTx runs fn inside one transaction. The transaction is committed when fn returns nil
// and rolled back otherwise, fn's error is returned unwrapped so callers can match on it.
type RunTx = func(ctx context.Context, fn func(tx *Queries) error) error

func NewRunTx(database *sql.DB) RunTx {
	return func(ctx context.Context, fn func(tx *Queries) error) error {
		sqltx, err := database.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}

		err = fn(New(sqltx))
		if err != nil {
			rollbackErr := sqltx.Rollback()
			if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
			return err
		}

		err = sqltx.Commit()
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	}
}
