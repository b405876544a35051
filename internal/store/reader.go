package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"go.uber.org/zap"
)

// Reader queries an observation archive through a DuckDB view.
type Reader struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// OpenReader opens an in-memory DuckDB and maps the Parquet file at path to the observations view.
func OpenReader(path string, log *logger.Logger) (*Reader, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, "failed to open DuckDB connection", err)
	}

	log.Debug("Opening observation archive", zap.String("path", path))

	query := fmt.Sprintf(`CREATE VIEW observations AS SELECT * FROM read_parquet('%s');`, quotePath(path))
	if _, err := db.Exec(query); err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeStorageFailed, err, "failed to open archive %s", path)
	}

	return &Reader{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func (r *Reader) filter(builder squirrel.SelectBuilder, symbol string, start, end optional.Option[time.Time]) squirrel.SelectBuilder {
	if symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": symbol})
	}

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"date": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.LtOrEq{"date": end.Unwrap()})
	}

	return builder
}

// Count returns the number of archived observations matching the filters. An empty symbol matches all.
func (r *Reader) Count(symbol string, start, end optional.Option[time.Time]) (int, error) {
	query, args, err := r.filter(r.sq.Select("COUNT(*)").From("observations"), symbol, start, end).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorageFailed, "failed to build count query", err)
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorageFailed, "failed to count observations", err)
	}

	return count, nil
}

// ReadObservations returns matching observations in date order.
func (r *Reader) ReadObservations(symbol string, start, end optional.Option[time.Time]) ([]types.Observation, error) {
	query, args, err := r.filter(r.sq.Select("date", "price").From("observations"), symbol, start, end).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, "failed to build read query", err)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, "failed to query observations", err)
	}
	defer rows.Close()

	observations := []types.Observation{}

	for rows.Next() {
		var (
			date  time.Time
			price float64
		)

		if err := rows.Scan(&date, &price); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorageFailed, "failed to scan observation", err)
		}

		observations = append(observations, types.Observation{
			Date:  date.UTC(),
			Price: price,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageFailed, "failed to iterate observations", err)
	}

	return observations, nil
}

// Close closes the connection.
func (r *Reader) Close() error {
	return r.db.Close()
}
