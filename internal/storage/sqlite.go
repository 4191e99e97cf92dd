// Package storage provides the SQLite-backed implementation of the invoice
// review service.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Veraticus/the-bills-must-flow/internal/model"
	"github.com/Veraticus/the-bills-must-flow/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.InvoiceReviewService using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// InvoiceQuery returns a cacheable handle over the invoice list with the
// given status filter. The first Fetch executes the query; later Fetch
// calls serve the cached rows until Refresh re-executes it.
func (s *SQLiteStorage) InvoiceQuery(statusFilter *string) service.QueryHandle {
	return &invoiceQuery{store: s, filter: statusFilter}
}

// invoiceQuery is the cached-query handle for one filter value.
type invoiceQuery struct {
	store  *SQLiteStorage
	filter *string
	mu     sync.Mutex
	cached []model.Invoice
	valid  bool
}

func (q *invoiceQuery) Fetch(ctx context.Context) ([]model.Invoice, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.valid {
		return q.cached, nil
	}
	return q.execute(ctx)
}

func (q *invoiceQuery) Refresh(ctx context.Context) ([]model.Invoice, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.execute(ctx)
}

func (q *invoiceQuery) execute(ctx context.Context) ([]model.Invoice, error) {
	rows, err := q.store.getInvoices(ctx, q.filter)
	if err != nil {
		q.cached = nil
		q.valid = false
		return nil, err
	}

	q.cached = rows
	q.valid = true
	return rows, nil
}
