package syncmgr

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/NoahCxrest/quickset/logging"
	"github.com/NoahCxrest/quickset/store"
	"github.com/NoahCxrest/quickset/table"
)

// Status is the last known outcome of syncing one table.
type Status struct {
	Table          string
	LastSync       time.Time // zero value means never synced
	LastRowCount   int
	LastDurationMs int64
	Error          string // empty means last attempt succeeded
	Syncing        bool
}

// Result is the outcome of a single sync_table call. RunID correlates
// a single call's log lines (each logged under the same id) and lets
// callers match a trigger response back to the lines it produced.
type Result struct {
	RunID      string
	Table      string
	Success    bool
	RowsSynced int
	DurationMs int64
	Error      string
}

// Config controls what the manager syncs and how often.
type Config struct {
	Enabled         bool
	Interval        time.Duration // 0 means manual-trigger only
	Tables          []SyncTable
	ClearBeforeSync bool
}

// NewConfig builds a manual-only, clear-before-sync Config with no
// tables; use WithInterval/WithTable/WithClearBeforeSync to configure
// it further.
func NewConfig() Config {
	return Config{ClearBeforeSync: true}
}

// WithInterval sets the background sync period; a nonzero interval
// also enables the manager.
func (c Config) WithInterval(d time.Duration) Config {
	c.Interval = d
	c.Enabled = d > 0
	return c
}

// WithTable appends a table to sync.
func (c Config) WithTable(t SyncTable) Config {
	c.Tables = append(c.Tables, t)
	return c
}

// WithClearBeforeSync sets whether each sync drops and recreates its
// target table before inserting rows.
func (c Config) WithClearBeforeSync(clear bool) Config {
	c.ClearBeforeSync = clear
	return c
}

// Manager pulls rows from a Source into a store.Database on a
// schedule. The status map is guarded by its own mutex, independent
// of the Database's lock, so status reads never contend with table
// mutation.
type Manager struct {
	source Source
	config Config
	log    logging.Logger

	statusMu sync.RWMutex
	status   map[string]Status

	running   atomic.Bool
	syncCount atomic.Uint64
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// New builds a Manager over a connected-or-connectable Source.
func New(source Source, config Config, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NoOp{}
	}
	status := make(map[string]Status, len(config.Tables))
	for _, t := range config.Tables {
		status[t.TargetTable] = Status{Table: t.TargetTable}
	}
	return &Manager{source: source, config: config, log: log, status: status}
}

// SyncTable fetches and loads one table, recording its status
// regardless of outcome.
func (m *Manager) SyncTable(db *store.Database, t SyncTable) Result {
	start := time.Now()
	target := t.TargetTable
	runID := uuid.NewString()

	m.log.Info("sync", "[%s] starting sync for table: %s", runID, target)
	m.setSyncing(target, true)

	fetched, err := m.source.FetchTable(t)
	if err != nil {
		return m.fail(runID, target, start, err.Error())
	}
	m.log.Debug("sync", "[%s] fetched %d rows from source for %s", runID, fetched.RowCount, target)

	if m.config.ClearBeforeSync {
		db.DropTable(target)
		if err := db.CreateTableWithCapacity(target, t.TargetColumns(), fetched.RowCount); err != nil {
			return m.fail(runID, target, start, "failed to create table: "+err.Error())
		}
	}

	inserted := 0
	err = db.WithTableWrite(target, func(tbl *table.Table) error {
		for _, row := range fetched.Rows {
			if _, err := tbl.Insert(row); err == nil {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return m.fail(runID, target, start, "table not found after creation: "+err.Error())
	}

	dur := time.Since(start)
	m.log.Info("sync", "[%s] synced %d rows to %s in %s", runID, inserted, target, dur)
	m.updateStatus(target, inserted, dur, "")
	m.syncCount.Add(1)

	return Result{RunID: runID, Table: target, Success: true, RowsSynced: inserted, DurationMs: dur.Milliseconds()}
}

// SyncAll runs SyncTable for every configured table, in order.
func (m *Manager) SyncAll(db *store.Database) []Result {
	results := make([]Result, 0, len(m.config.Tables))
	for _, t := range m.config.Tables {
		results = append(results, m.SyncTable(db, t))
	}
	return results
}

// StartBackgroundSync launches the periodic sync loop. A zero
// interval or an already-running manager is a no-op.
func (m *Manager) StartBackgroundSync(db *store.Database) {
	if m.config.Interval <= 0 {
		m.log.Info("sync", "background sync disabled (interval = 0)")
		return
	}
	if !m.running.CompareAndSwap(false, true) {
		m.log.Warn("sync", "background sync already running")
		return
	}

	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.log.Info("sync", "starting background sync every %s", m.config.Interval)

	go func() {
		defer close(m.doneCh)
		m.SyncAll(db)

		ticker := time.NewTicker(m.config.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				m.log.Info("sync", "background sync stopped")
				return
			case <-ticker.C:
				m.SyncAll(db)
			}
		}
	}()
}

// Stop signals the background loop to exit and waits for it to do so.
// Stopping a manager that was never started is a no-op.
func (m *Manager) Stop() {
	if !m.running.CompareAndSwap(true, false) {
		return
	}
	close(m.stopCh)
	<-m.doneCh
}

// Status returns every table's current sync status, order
// unspecified.
func (m *Manager) Status() []Status {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	out := make([]Status, 0, len(m.status))
	for _, s := range m.status {
		out = append(out, s)
	}
	return out
}

// TableStatus returns one table's sync status, if tracked.
func (m *Manager) TableStatus(tableName string) (Status, bool) {
	m.statusMu.RLock()
	defer m.statusMu.RUnlock()
	s, ok := m.status[tableName]
	return s, ok
}

// SyncCount returns the number of successful syncs performed so far.
func (m *Manager) SyncCount() uint64 { return m.syncCount.Load() }

// IsRunning reports whether the background loop is active.
func (m *Manager) IsRunning() bool { return m.running.Load() }

// ConfiguredTables returns the tables this manager was built to sync.
func (m *Manager) ConfiguredTables() []SyncTable { return m.config.Tables }

func (m *Manager) setSyncing(tableName string, syncing bool) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	s := m.status[tableName]
	s.Table = tableName
	s.Syncing = syncing
	if syncing {
		s.Error = ""
	}
	m.status[tableName] = s
}

func (m *Manager) updateStatus(tableName string, rows int, dur time.Duration, errMsg string) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	s := m.status[tableName]
	s.Table = tableName
	s.LastSync = time.Now()
	s.LastRowCount = rows
	s.LastDurationMs = dur.Milliseconds()
	s.Error = errMsg
	s.Syncing = false
	m.status[tableName] = s
}

// markFailed records an error without disturbing the last successful
// sync's LastRowCount/LastSync, so a failed sync never erases evidence
// of the prior good one.
func (m *Manager) markFailed(tableName string, dur time.Duration, errMsg string) {
	m.statusMu.Lock()
	defer m.statusMu.Unlock()
	s := m.status[tableName]
	s.Table = tableName
	s.LastDurationMs = dur.Milliseconds()
	s.Error = errMsg
	s.Syncing = false
	m.status[tableName] = s
}

func (m *Manager) fail(runID, tableName string, start time.Time, errMsg string) Result {
	m.log.Error("sync", "[%s] %s", runID, errMsg)
	dur := time.Since(start)
	m.markFailed(tableName, dur, errMsg)
	return Result{RunID: runID, Table: tableName, Success: false, DurationMs: dur.Milliseconds(), Error: errMsg}
}
