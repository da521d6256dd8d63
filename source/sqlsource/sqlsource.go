// Package sqlsource implements syncmgr.Source over database/sql,
// usable with any driver registered under that interface (MySQL,
// Postgres, SQLite). Column scanning follows a
// ColumnTypes/Scan-into-interface{} pattern, coercing values into
// valuetype.Value by target column type rather than into an untyped
// map.
package sqlsource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/NoahCxrest/quickset/syncmgr"
	"github.com/NoahCxrest/quickset/valuetype"
)

// Config holds the connection parameters for a SQL source. DSN, if
// set, is passed to the driver verbatim and Host/Port/User/Password/
// Database are ignored; otherwise a driver-specific DSN is built from
// the discrete fields.
type Config struct {
	Driver   string // "mysql", "postgres", or "sqlite"
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Source pulls rows from a database/sql driver. It is safe for
// concurrent FetchTable calls once connected; Connect/Disconnect are
// not goroutine-safe against each other, matching the lifecycle the
// manager drives it through.
type Source struct {
	cfg Config
	db  *sql.DB
}

// New builds an unconnected Source for the given configuration.
func New(cfg Config) *Source {
	return &Source{cfg: cfg}
}

// Name implements syncmgr.Source.
func (s *Source) Name() string { return "sql:" + s.cfg.Driver }

// Connect opens the pool and verifies it with a ping.
func (s *Source) Connect() error {
	dsn := s.cfg.DSN
	if dsn == "" {
		dsn = buildDSN(s.cfg)
	}
	db, err := sql.Open(s.cfg.Driver, dsn)
	if err != nil {
		return syncmgr.NewConfigError(err.Error())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return syncmgr.NewConnectionError(err.Error())
	}
	s.db = db
	return nil
}

// Disconnect closes the pool. Safe to call on an unconnected Source.
func (s *Source) Disconnect() {
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
}

// IsConnected reports whether Connect succeeded and Disconnect hasn't
// run since.
func (s *Source) IsConnected() bool { return s.db != nil }

// FetchTable runs the table's query (or a generated SELECT of its
// mapped source columns) and coerces every cell to the mapped
// target's column type.
func (s *Source) FetchTable(table syncmgr.SyncTable) (syncmgr.FetchResult, error) {
	if s.db == nil {
		return syncmgr.FetchResult{}, syncmgr.NewConnectionError("not connected")
	}

	query := table.QueryOverride
	if query == "" {
		query = buildSelect(table)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return syncmgr.FetchResult{}, syncmgr.NewQueryError(err.Error())
	}
	defer rows.Close()

	result, err := scanRows(rows, table)
	if err != nil {
		return syncmgr.FetchResult{}, syncmgr.NewParseError(err.Error())
	}
	return result, nil
}

func buildSelect(table syncmgr.SyncTable) string {
	names := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		names[i] = c.SourceName
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), table.SourceTable)
}

func buildDSN(cfg Config) string {
	switch cfg.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)
	case "sqlite":
		return cfg.Database
	default: // mysql
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	}
}

func scanRows(rows *sql.Rows, table syncmgr.SyncTable) (syncmgr.FetchResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return syncmgr.FetchResult{}, err
	}

	result := make([][]valuetype.Value, 0)
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		scanTargets := make([]interface{}, len(cols))
		for i := range raw {
			scanTargets[i] = &raw[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return syncmgr.FetchResult{}, err
		}

		out := make([]valuetype.Value, len(table.Columns))
		for i, mapping := range table.Columns {
			if i < len(raw) {
				out[i] = toValue(raw[i], mapping.ColType)
			} else {
				out[i] = valuetype.Null
			}
		}
		result = append(result, out)
	}
	if err := rows.Err(); err != nil {
		return syncmgr.FetchResult{}, err
	}
	return syncmgr.FetchResult{Rows: result, RowCount: len(result)}, nil
}

// toValue coerces one scanned cell to the mapped column's target
// type, mirroring the NULL-on-mismatch tolerance FromExternal applies
// to the line-oriented source.
func toValue(v interface{}, ct valuetype.ColumnType) valuetype.Value {
	if v == nil {
		return valuetype.Null
	}
	switch val := v.(type) {
	case []byte:
		return valuetype.FromExternal(string(val), ct)
	case string:
		return valuetype.FromExternal(val, ct)
	case time.Time:
		return valuetype.FromExternal(val.Format(time.RFC3339), ct)
	case int64:
		if ct == valuetype.Int {
			return valuetype.NewInt(val)
		}
		return valuetype.FromExternal(fmt.Sprintf("%d", val), ct)
	case float64:
		if ct == valuetype.Float {
			return valuetype.NewFloat(val)
		}
		return valuetype.FromExternal(fmt.Sprintf("%v", val), ct)
	case bool:
		if val {
			return valuetype.FromExternal("1", ct)
		}
		return valuetype.FromExternal("0", ct)
	default:
		return valuetype.FromExternal(fmt.Sprintf("%v", val), ct)
	}
}
