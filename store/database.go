// Package store implements Database: the name-to-table mapping that
// owns the single read-write lock guarding all table mutation.
package store

import (
	"sort"
	"sync"

	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/fulltext"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/table"
	"github.com/NoahCxrest/quickset/valuetype"
)

// Database maps table names to tables. All mutation (insert, update,
// delete, create, drop) takes the write lock for its full duration;
// reads (get, search, stats, list) take the read lock. Many concurrent
// readers or one writer, never both.
type Database struct {
	mu        sync.RWMutex
	tables    map[string]*table.Table
	tokenizer fulltext.Tokenizer
}

// New builds an empty Database. tokenizer selects the full-text
// tokenizer new tables are built with; nil selects the standard
// alphanumeric tokenizer.
func New(tokenizer fulltext.Tokenizer) *Database {
	return &Database{
		tables:    make(map[string]*table.Table),
		tokenizer: tokenizer,
	}
}

// CreateTable creates a table with no capacity hint.
func (db *Database) CreateTable(name string, columns []valuetype.Column) error {
	return db.CreateTableWithCapacity(name, columns, 0)
}

// CreateTableWithCapacity creates a table, pre-sizing its column
// storage to capacity. Fails with *errs.DuplicateTable if name is
// already in use.
func (db *Database) CreateTableWithCapacity(name string, columns []valuetype.Column, capacity int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[name]; exists {
		return errs.NewDuplicateTable(name)
	}
	db.tables[name] = table.NewWithCapacity(name, columns, capacity, table.WithTokenizer(db.tokenizer))
	return nil
}

// DropTable removes a table, returning true iff it existed.
func (db *Database) DropTable(name string) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, exists := db.tables[name]; !exists {
		return false
	}
	delete(db.tables, name)
	return true
}

// GetTable returns a read handle for a table, for callers that only
// need to read. The caller must not retain the handle past the
// current Database-guarded call.
func (db *Database) GetTable(name string) (*table.Table, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.tables[name]
	if !ok {
		return nil, errs.NewUnknownTable(name)
	}
	return t, nil
}

// WithTable runs fn against a table while holding the Database's read
// lock for the duration of fn, so reads (get, search) observe a
// consistent snapshot across the whole call.
func (db *Database) WithTable(name string, fn func(*table.Table) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	t, ok := db.tables[name]
	if !ok {
		return errs.NewUnknownTable(name)
	}
	return fn(t)
}

// WithTableWrite runs fn against a table while holding the Database's
// write lock for the duration of fn, so mutation (insert/update/
// delete) linearizes with every other writer and with readers.
func (db *Database) WithTableWrite(name string, fn func(*table.Table) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	t, ok := db.tables[name]
	if !ok {
		return errs.NewUnknownTable(name)
	}
	return fn(t)
}

// TableNames returns the names of every table; order is unspecified.
func (db *Database) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	return names
}

// TableStats describes one table's size for the stats operation.
type TableStats struct {
	Name        string
	RowCount    int
	ColumnCount int
}

// Stats returns per-table row/column counts, ordered by table name.
func (db *Database) Stats() []TableStats {
	db.mu.RLock()
	defer db.mu.RUnlock()
	stats := make([]TableStats, 0, len(db.tables))
	for name, t := range db.tables {
		stats = append(stats, TableStats{Name: name, RowCount: t.RowCount(), ColumnCount: len(t.Columns())})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	return stats
}

// Search runs a predicate against one table's column under the read
// lock, applying offset/limit to the ordered result.
func (db *Database) Search(tableName, columnName string, pred predicate.Predicate, page predicate.Page) ([]uint64, int, error) {
	var ids []uint64
	err := db.WithTable(tableName, func(t *table.Table) error {
		found, err := t.Search(columnName, pred)
		if err != nil {
			return err
		}
		ids = found
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	total := len(ids)
	return page.Apply(ids), total, nil
}
