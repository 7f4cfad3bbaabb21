package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vfg2006/academy-dashboard-api/infrastructure/database/postgres"
)

// fakeDB registra os comandos recebidos e falha nos que contêm failOn
type fakeDB struct {
	mu         sync.Mutex
	statements []string
	failOn     string
	commits    int
	rollbacks  int
	returnID   int64
}

func newFakeConnection(t *testing.T, db *fakeDB) *postgres.Connection {
	t.Helper()
	sqlDB := sql.OpenDB(fakeConnector{db: db})
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &postgres.Connection{DB: sqlDB}
}

func (db *fakeDB) record(query string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.statements = append(db.statements, query)
	if db.failOn != "" && strings.Contains(query, db.failOn) {
		return errors.New("falha simulada")
	}
	return nil
}

func (db *fakeDB) executed(fragment string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, statement := range db.statements {
		if strings.Contains(statement, fragment) {
			return true
		}
	}
	return false
}

type fakeConnector struct {
	db *fakeDB
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{db: c.db}, nil
}

func (c fakeConnector) Driver() driver.Driver {
	return fakeDriver{db: c.db}
}

type fakeDriver struct {
	db *fakeDB
}

func (d fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{db: d.db}, nil
}

type fakeConn struct {
	db *fakeDB
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare não suportado")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return &fakeTx{db: c.db}, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	if err := c.db.record(query); err != nil {
		return nil, err
	}
	return driver.RowsAffected(1), nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	if err := c.db.record(query); err != nil {
		return nil, err
	}
	now := time.Now()
	return &fakeRows{
		columns: []string{"id", "created_at", "updated_at"},
		values:  [][]driver.Value{{c.db.returnID, now, now}},
	}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (tx *fakeTx) Commit() error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	tx.db.commits++
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	tx.db.rollbacks++
	return nil
}

type fakeRows struct {
	columns []string
	values  [][]driver.Value
	next    int
}

func (r *fakeRows) Columns() []string { return r.columns }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.next >= len(r.values) {
		return io.EOF
	}
	copy(dest, r.values[r.next])
	r.next++
	return nil
}
