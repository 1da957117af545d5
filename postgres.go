package testmaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type (
	// PostgresStore keeps the timeline library in the lab database. The
	// document column is jsonb, so ad-hoc SQL can reach into sessions
	// without this package's help
	PostgresStore struct {
		pool *pgxpool.Pool
		log  *zap.Logger
	}
)

const timelineSchema = `
CREATE TABLE IF NOT EXISTS timelines (
	name TEXT PRIMARY KEY,
	doc JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// OpenPostgresStore connects to the database at dsn and ensures the
// timelines table exists. A nil logger disables logging
func OpenPostgresStore(
	ctx context.Context, dsn string, log *zap.Logger,
) (*PostgresStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, timelineSchema); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool, log: log}, nil
}

func (s *PostgresStore) Save(ctx context.Context, tl *Timeline) error {
	doc, err := encodeDoc(tl)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO timelines (name, doc, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (name)
		 DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		tl.Name, doc,
	)
	if err != nil {
		return err
	}
	s.log.Debug("Timeline saved",
		zap.String("timeline", tl.Name),
		zap.Int("bytes", len(doc)),
	)
	return nil
}

func (s *PostgresStore) Load(
	ctx context.Context, name string,
) (*Timeline, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM timelines WHERE name = $1`, name,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return decodeDoc(doc)
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT name FROM timelines ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM timelines WHERE name = $1`, name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrTimelineNotFound, name)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
