package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
)

func execBuilder(ctx context.Context, tx *sql.Tx, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}
