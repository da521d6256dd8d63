// Package api implements the transport-agnostic operation surface
// this module exposes: create_table, drop_table, list_tables, stats,
// insert, search, get, delete, update, sync_status, and sync_trigger.
// Server methods take and return plain Go values so any transport
// (net/http, a CLI, a test) can drive them directly.
package api

import (
	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/logging"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/store"
	"github.com/NoahCxrest/quickset/syncmgr"
	"github.com/NoahCxrest/quickset/table"
	"github.com/NoahCxrest/quickset/valuetype"
)

// ColumnSpec is the wire form of a column declaration: a name and a
// type-name alias resolved via valuetype.ParseTypeName.
type ColumnSpec struct {
	Name string
	Type string
}

// Server exposes the full operation surface over a single database
// and an optional sync manager. A Server with no sync manager still
// serves every table operation; sync_status reports an empty/disabled
// state and sync_trigger returns an error.
type Server struct {
	db   *store.Database
	sync *syncmgr.Manager
	log  logging.Logger
}

// New builds a Server. sync may be nil if replication is disabled.
func New(db *store.Database, sync *syncmgr.Manager, log logging.Logger) *Server {
	if log == nil {
		log = logging.NoOp{}
	}
	return &Server{db: db, sync: sync, log: log}
}

// CreateTable resolves each column's wire type name and creates the
// table. capacity <= 0 means no capacity hint.
func (s *Server) CreateTable(name string, columns []ColumnSpec, capacity int) error {
	cols := make([]valuetype.Column, len(columns))
	for i, c := range columns {
		ct, err := valuetype.ParseTypeName(c.Type)
		if err != nil {
			return err
		}
		cols[i] = valuetype.Column{Name: c.Name, Type: ct}
	}
	if capacity > 0 {
		return s.db.CreateTableWithCapacity(name, cols, capacity)
	}
	return s.db.CreateTable(name, cols)
}

// DropTable removes a table, reporting whether it existed.
func (s *Server) DropTable(name string) bool {
	return s.db.DropTable(name)
}

// ListTables returns every table name, order unspecified.
func (s *Server) ListTables() []string {
	return s.db.TableNames()
}

// Columns returns a table's column descriptors in declaration order,
// for transports that need to coerce wire values before Insert/Update.
func (s *Server) Columns(tableName string) ([]valuetype.Column, error) {
	t, err := s.db.GetTable(tableName)
	if err != nil {
		return nil, err
	}
	return t.Columns(), nil
}

// Stats returns per-table row/column counts, ordered by name.
func (s *Server) Stats() []store.TableStats {
	return s.db.Stats()
}

// InsertOutcome is one row's result from Insert, aligned positionally
// with the request.
type InsertOutcome struct {
	ID  uint64
	Err error
}

// Insert appends every row to table, in order. A row's failure does
// not prevent the rows around it from succeeding.
func (s *Server) Insert(tableName string, rows [][]valuetype.Value) ([]InsertOutcome, error) {
	var outcomes []InsertOutcome
	err := s.db.WithTableWrite(tableName, func(t *table.Table) error {
		results := t.InsertBatch(rows)
		outcomes = make([]InsertOutcome, len(results))
		for i, r := range results {
			outcomes[i] = InsertOutcome{ID: r.ID, Err: r.Err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

// SearchResult bundles the page of matching rows with the total
// match count before pagination was applied.
type SearchResult struct {
	Rows  []table.Row
	Total int
}

// Search runs a predicate against one column and returns the
// requested page of results alongside the unpaginated total.
func (s *Server) Search(tableName, columnName string, pred predicate.Predicate, page predicate.Page) (SearchResult, error) {
	var result SearchResult
	err := s.db.WithTable(tableName, func(t *table.Table) error {
		ids, err := t.Search(columnName, pred)
		if err != nil {
			return err
		}
		result.Total = len(ids)
		result.Rows = t.GetMany(page.Apply(ids))
		return nil
	})
	if err != nil {
		return SearchResult{}, err
	}
	return result, nil
}

// Get returns the rows found among ids, in the input order, missing
// rows silently dropped.
func (s *Server) Get(tableName string, ids []uint64) ([]table.Row, error) {
	var rows []table.Row
	err := s.db.WithTable(tableName, func(t *table.Table) error {
		rows = t.GetMany(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Delete removes every id found in table, returning how many were
// actually present.
func (s *Server) Delete(tableName string, ids []uint64) (int, error) {
	var deleted int
	err := s.db.WithTableWrite(tableName, func(t *table.Table) error {
		for _, id := range ids {
			if t.Delete(id) == nil {
				deleted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Update replaces one row's values in place.
func (s *Server) Update(tableName string, id uint64, values []valuetype.Value) error {
	return s.db.WithTableWrite(tableName, func(t *table.Table) error {
		return t.Update(id, values)
	})
}

// SyncStatusResponse mirrors the sync_status operation's output.
type SyncStatusResponse struct {
	Running    bool
	TotalSyncs uint64
	Tables     []syncmgr.Status
}

// SyncStatus reports the replication coordinator's current state. A
// Server with no sync manager reports a disabled, idle state.
func (s *Server) SyncStatus() SyncStatusResponse {
	if s.sync == nil {
		return SyncStatusResponse{}
	}
	return SyncStatusResponse{
		Running:    s.sync.IsRunning(),
		TotalSyncs: s.sync.SyncCount(),
		Tables:     s.sync.Status(),
	}
}

// SyncTrigger runs a sync cycle immediately. An empty tableFilter
// syncs every configured table; otherwise only the named table (which
// must be one of the sync manager's target tables).
func (s *Server) SyncTrigger(tableFilter string) ([]syncmgr.Result, error) {
	if s.sync == nil {
		return nil, errs.NewInternal("sync is not configured")
	}
	if tableFilter == "" {
		return s.sync.SyncAll(s.db), nil
	}
	for _, t := range s.sync.ConfiguredTables() {
		if t.TargetTable == tableFilter {
			return []syncmgr.Result{s.sync.SyncTable(s.db, t)}, nil
		}
	}
	return nil, errs.NewUnknownTable(tableFilter)
}
