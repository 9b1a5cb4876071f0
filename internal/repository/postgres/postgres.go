package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swissrenewables/backend/internal/domain"
)

// Source reads plant tables stored in PostgreSQL. The key passed to Read is
// the table name, optionally schema qualified.
type Source struct {
	pool *pgxpool.Pool
}

// NewSource creates a PostgreSQL plant source
func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

// Connect opens a pool and waits for the database to answer a ping
func Connect(ctx context.Context, dsn string, attempts uint64) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	err = backoff.Retry(
		func() error {
			return pool.Ping(ctx)
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), attempts),
			ctx,
		),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: failed to ping: %w", err)
	}

	return pool, nil
}

// builder returns a squirrel statement builder with $n placeholders
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// Read loads every row of table
func (s *Source) Read(ctx context.Context, table string) (*domain.PlantTable, error) {
	query, args, err := builder().Select("*").
		From(pgx.Identifier(strings.Split(table, ".")).Sanitize()).
		ToSql()
	if err != nil {
		return nil, &domain.DataSourceError{Source: table, Err: fmt.Errorf("failed to build query: %w", err)}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, &domain.DataSourceError{Source: table, Err: fmt.Errorf("failed to query plants: %w", err)}
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	header := make([]string, len(fields))
	for i, fd := range fields {
		header[i] = fd.Name
	}

	var results [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, &domain.DataSourceError{Source: table, Err: fmt.Errorf("failed to scan plant row: %w", err)}
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = textValue(v)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.DataSourceError{Source: table, Err: err}
	}

	return domain.NewPlantTable(table, header, results)
}

// Health checks database connectivity
func (s *Source) Health(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

// textValue renders a decoded column value the way it would appear in a CSV export
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format("2006-01-02")
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
