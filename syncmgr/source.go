// Package syncmgr coordinates pulling rows from an external Source
// into a store.Database on a schedule.
package syncmgr

import "github.com/NoahCxrest/quickset/valuetype"

// ColumnMapping pairs a source column with the target column it
// populates and the type the target column is declared with.
type ColumnMapping struct {
	SourceName string
	TargetName string
	ColType    valuetype.ColumnType
}

// SyncTable describes one table to pull: where it comes from, what it
// becomes, and how its columns map across. QueryOverride, if set,
// replaces the default "SELECT <cols> FROM <source_table>" query.
type SyncTable struct {
	SourceTable   string
	TargetTable   string
	Columns       []ColumnMapping
	QueryOverride string
}

// NewSyncTable builds a SyncTable with no columns or override set.
func NewSyncTable(sourceTable, targetTable string) SyncTable {
	return SyncTable{SourceTable: sourceTable, TargetTable: targetTable}
}

// WithColumn appends a column mapping and returns the table for
// chaining.
func (t SyncTable) WithColumn(source, target string, colType valuetype.ColumnType) SyncTable {
	t.Columns = append(t.Columns, ColumnMapping{SourceName: source, TargetName: target, ColType: colType})
	return t
}

// WithQuery sets a custom fetch query, replacing the default
// SELECT-all built from Columns.
func (t SyncTable) WithQuery(query string) SyncTable {
	t.QueryOverride = query
	return t
}

// TargetColumns derives the table.Column descriptors the target table
// should be created with, in mapping order.
func (t SyncTable) TargetColumns() []valuetype.Column {
	cols := make([]valuetype.Column, len(t.Columns))
	for i, m := range t.Columns {
		cols[i] = valuetype.Column{Name: m.TargetName, Type: m.ColType}
	}
	return cols
}

// FetchResult is the rows a Source returned for one table, row-major
// and positionally aligned with the SyncTable's Columns.
type FetchResult struct {
	Rows     [][]valuetype.Value
	RowCount int
}

// SourceErrorKind tags the error categories a Source can fail with.
type SourceErrorKind int

const (
	ConnectionError SourceErrorKind = iota
	QueryError
	ParseError
	ConfigError
)

func (k SourceErrorKind) String() string {
	switch k {
	case ConnectionError:
		return "connection error"
	case QueryError:
		return "query error"
	case ParseError:
		return "parse error"
	case ConfigError:
		return "config error"
	default:
		return "error"
	}
}

// SourceError is the typed error every Source method fails with.
type SourceError struct {
	Kind    SourceErrorKind
	Message string
}

func (e *SourceError) Error() string { return e.Kind.String() + ": " + e.Message }

// NewConnectionError builds a SourceError of kind ConnectionError.
func NewConnectionError(msg string) *SourceError { return &SourceError{Kind: ConnectionError, Message: msg} }

// NewQueryError builds a SourceError of kind QueryError.
func NewQueryError(msg string) *SourceError { return &SourceError{Kind: QueryError, Message: msg} }

// NewParseError builds a SourceError of kind ParseError.
func NewParseError(msg string) *SourceError { return &SourceError{Kind: ParseError, Message: msg} }

// NewConfigError builds a SourceError of kind ConfigError.
func NewConfigError(msg string) *SourceError { return &SourceError{Kind: ConfigError, Message: msg} }

// Source is the contract an external pull binding implements: connect
// and disconnect are explicit so connection lifecycle is under the
// SyncManager's control rather than hidden inside fetch calls.
type Source interface {
	Connect() error
	Disconnect()
	IsConnected() bool
	FetchTable(table SyncTable) (FetchResult, error)
	Name() string
}
