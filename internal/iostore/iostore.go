// Package iostore persists the metric tables across database backends.
package iostore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// StoreManager guards the shared MetricStore instance.
type StoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	metrics      contract.MetricStore
}

// GetMetricStore returns the shared MetricStore.
func (mgr *StoreManager) GetMetricStore() contract.MetricStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.metrics
}

// InitStore initializes the global store manager. Safe to call more
// than once; only the first call connects.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewMetricStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize metric store: %w", err)
			return
		}

		Manager.Lock()
		Manager.metrics = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.metrics != nil {
			_ = Manager.metrics.Close()
		}
	})
}

// ClearStore removes all persisted metric data for the backend.
// For SQLite it deletes the database file; for MySQL/PostgreSQL it
// drops the metric tables.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropSQLTables("pgx", connStr)

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropSQLTables connects to the SQL database and drops every metric
// table, dependents first.
func dropSQLTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for i := len(schema.AllTables) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", schema.AllTables[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.AllTables[i], err)
		}
	}

	return nil
}
