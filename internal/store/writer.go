// Package store archives observations to Parquet through DuckDB and reads them back.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-forecast/internal/logger"
	"github.com/rxtech-lab/argo-forecast/internal/types"
	"github.com/rxtech-lab/argo-forecast/pkg/errors"
	"go.uber.org/zap"
)

// ObservationWriter persists observations to an archive.
type ObservationWriter interface {
	// Initialize sets up the writer.
	Initialize() error
	// Write persists a single observation.
	Write(symbol string, observation types.Observation) error
	// Finalize commits pending rows and exports the archive.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
}

// ParquetWriter buffers observations in an in-memory DuckDB table and exports them as Parquet.
type ParquetWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
	logger     *logger.Logger
}

// NewParquetWriter creates a writer that exports to outputPath on Finalize.
func NewParquetWriter(outputPath string, log *logger.Logger) *ParquetWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ParquetWriter{
		db:         nil,
		tx:         nil,
		stmt:       nil,
		outputPath: outputPath,
		logger:     log,
	}
}

// Initialize opens the database, creates the table and prepares the insert inside a transaction.
func (w *ParquetWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", "")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS observations (
			id TEXT,
			symbol TEXT,
			date DATE,
			price DOUBLE
		)
	`)
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to create table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()
		w.db = nil

		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`INSERT INTO observations (id, symbol, date, price) VALUES (?, ?, ?, ?)`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()
		w.tx = nil
		w.db = nil

		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write inserts one observation.
func (w *ParquetWriter) Write(symbol string, observation types.Observation) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeStorageFailed, "writer not initialized")
	}

	_, err := w.stmt.Exec(uuid.New().String(), symbol, observation.Date, observation.Price)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageFailed, "failed to insert observation", err)
	}

	return nil
}

// WriteAll inserts every observation under symbol.
func (w *ParquetWriter) WriteAll(symbol string, observations []types.Observation) error {
	for _, observation := range observations {
		if err := w.Write(symbol, observation); err != nil {
			return err
		}
	}

	return nil
}

// Finalize commits the transaction and copies the table to the Parquet file.
func (w *ParquetWriter) Finalize() (string, error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeStorageFailed, "writer not initialized")
	}

	if w.stmt != nil {
		w.stmt.Close()
		w.stmt = nil
	}

	if err := w.tx.Commit(); err != nil {
		w.tx.Rollback()
		w.tx = nil

		return "", errors.Wrap(errors.ErrCodeStorageFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	query := fmt.Sprintf(`COPY (SELECT * FROM observations ORDER BY symbol, date) TO '%s' (FORMAT PARQUET)`, quotePath(w.outputPath))
	if _, err := w.db.Exec(query); err != nil {
		return "", errors.Wrapf(errors.ErrCodeStorageFailed, err, "failed to export %s", w.outputPath)
	}

	w.logger.Info("Exported observations", zap.String("path", w.outputPath))

	return w.outputPath, nil
}

// Close releases the statement, any open transaction and the connection.
func (w *ParquetWriter) Close() error {
	if w.stmt != nil {
		w.stmt.Close()
		w.stmt = nil
	}

	if w.tx != nil {
		if err := w.tx.Rollback(); err != nil {
			w.logger.Warn("Failed to rollback transaction during close", zap.Error(err))
		}

		w.tx = nil
	}

	if w.db != nil {
		err := w.db.Close()
		w.db = nil

		if err != nil {
			return errors.Wrap(errors.ErrCodeStorageFailed, "failed to close db connection", err)
		}
	}

	return nil
}

// Archive writes observations for symbol to a Parquet file at path.
func Archive(path, symbol string, observations []types.Observation, log *logger.Logger) error {
	writer := NewParquetWriter(path, log)
	if err := writer.Initialize(); err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.WriteAll(symbol, observations); err != nil {
		return err
	}

	_, err := writer.Finalize()

	return err
}

func quotePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}
