package garagestatus

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"garagewatch-backend/lib/sqlutil"
	"garagewatch-backend/services/garagestatus/db"
)

// Writes batches to an embedded sqlite database (or a remote libsql
// one). The database is opened, migrated and closed within each write so
// invocations never share a handle.
type SqliteSink struct {
	database sqlutil.Config
}

func NewSqliteSink(config sqlutil.Config) (*SqliteSink, error) {
	if config.File == "" && config.Url == "" {
		return nil, fmt.Errorf("%w: a database path is missing", ErrSinkConfig)
	}
	return &SqliteSink{database: config}, nil
}

func (s *SqliteSink) Write(ctx context.Context, readings []Reading) (int, error) {
	if len(readings) == 0 {
		return 0, nil
	}

	sqldb, err := s.database.OpenDB()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	defer sqldb.Close()

	_, err = sqldb.ExecContext(ctx, db.Schema)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}

	tx, err := sqldb.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	defer tx.Rollback()
	txqry := db.New(sqldb).WithTx(tx)

	for _, r := range readings {
		err := txqry.CreateGarageStatus(ctx, db.CreateGarageStatusParams{
			FetchedAt: r.FetchedAt.UTC().Format(time.RFC3339),
			LastUpdated: sql.NullString{
				String: r.LastUpdated,
				Valid:  r.LastUpdated != "",
			},
			Garage:    r.Garage,
			Status:    int64(r.Status),
			SourceUrl: r.SourceUrl,
		})
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSinkWrite, err)
	}
	return len(readings), nil
}
