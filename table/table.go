// Package table implements the typed columnar table engine: column
// storage, per-column indexes, and the insert/update/delete/get/search
// operations. A Table performs no locking of its own; the caller
// (normally store.Database) is responsible for holding the
// appropriate read or write lock for the duration of a call.
package table

import (
	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/fulltext"
	"github.com/NoahCxrest/quickset/index"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/valuetype"
)

// Row is one table row: its stable identifier and its values in
// column order.
type Row struct {
	ID     uint64
	Values []valuetype.Value
}

// Table owns an ordered sequence of columns, a dense per-column value
// store, one index per column, and the RowId assignment counter.
type Table struct {
	name    string
	columns []valuetype.Column
	colIdx  map[string]int

	data []([]valuetype.Value) // data[col][slot]
	tomb []bool                // tomb[slot]

	indexes []index.Index

	nextID   uint64
	rowCount int

	tokenizer fulltext.Tokenizer
}

// Option configures a new Table.
type Option func(*Table)

// WithTokenizer selects the tokenizer used by any String column's
// full-text index. Defaults to the standard alphanumeric tokenizer.
func WithTokenizer(t fulltext.Tokenizer) Option {
	return func(tbl *Table) { tbl.tokenizer = t }
}

// New builds an empty table with no declared capacity hint.
func New(name string, columns []valuetype.Column, opts ...Option) *Table {
	return NewWithCapacity(name, columns, 0, opts...)
}

// NewWithCapacity builds an empty table, pre-sizing column storage to
// capacity as an optimization hint; semantics are identical to New.
func NewWithCapacity(name string, columns []valuetype.Column, capacity int, opts ...Option) *Table {
	t := &Table{
		name:     name,
		columns:  append([]valuetype.Column(nil), columns...),
		colIdx:   make(map[string]int, len(columns)),
		data:     make([][]valuetype.Value, len(columns)),
		tomb:     make([]bool, 0, capacity),
		indexes:  make([]index.Index, len(columns)),
		nextID:   1,
		rowCount: 0,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.tokenizer == nil {
		t.tokenizer = fulltext.NewStandardTokenizer()
	}
	for i, col := range t.columns {
		t.colIdx[col.Name] = i
		t.data[i] = make([]valuetype.Value, 0, capacity)
		t.indexes[i] = newIndexFor(col.Type, t.tokenizer)
	}
	return t
}

func newIndexFor(ct valuetype.ColumnType, tok fulltext.Tokenizer) index.Index {
	switch ct {
	case valuetype.Int:
		return index.NewIntIndex()
	case valuetype.Float:
		return index.NewFloatIndex()
	case valuetype.String:
		return index.NewStringIndex(tok)
	case valuetype.Bytes:
		return index.NewBytesIndex()
	default:
		return index.NewBytesIndex()
	}
}

// Name returns the table's name.
func (t *Table) Name() string { return t.name }

// Columns returns the table's column descriptors, in declaration
// order. The returned slice is a copy; mutating it has no effect on
// the table (the column descriptor vector is immutable after
// creation).
func (t *Table) Columns() []valuetype.Column {
	return append([]valuetype.Column(nil), t.columns...)
}

// RowCount returns the number of live (non-tombstoned) rows.
func (t *Table) RowCount() int { return t.rowCount }

func (t *Table) validate(values []valuetype.Value) error {
	if len(values) != len(t.columns) {
		return errs.NewArityMismatch(t.name, len(t.columns), len(values))
	}
	for i, v := range values {
		if !valuetype.TypeMatches(v, t.columns[i].Type) {
			return errs.NewTypeMismatch(t.name, t.columns[i].Name)
		}
	}
	return nil
}

// Insert appends a new row and returns its assigned RowId. A failed
// validation leaves the RowId counter untouched.
func (t *Table) Insert(values []valuetype.Value) (uint64, error) {
	if err := t.validate(values); err != nil {
		return 0, err
	}
	id := t.nextID
	t.nextID++
	for i, v := range values {
		t.data[i] = append(t.data[i], v)
		if !v.IsNull() {
			t.indexes[i].Insert(id, v)
		}
	}
	t.tomb = append(t.tomb, false)
	t.rowCount++
	return id, nil
}

// InsertResult is one row's outcome from InsertBatch.
type InsertResult struct {
	ID  uint64
	Err error
}

// InsertBatch inserts each row in order, positionally corresponding
// the results to the input. A failed row does not advance the RowId
// counter, and does not prevent subsequent rows from succeeding.
func (t *Table) InsertBatch(rows [][]valuetype.Value) []InsertResult {
	results := make([]InsertResult, len(rows))
	for i, row := range rows {
		id, err := t.Insert(row)
		results[i] = InsertResult{ID: id, Err: err}
	}
	return results
}

func (t *Table) slotFor(id uint64) (int, bool) {
	if id == 0 || id >= t.nextID {
		return 0, false
	}
	slot := int(id - 1)
	if slot >= len(t.tomb) || t.tomb[slot] {
		return 0, false
	}
	return slot, true
}

// Update replaces the values of a live row, removing stale index
// entries and adding fresh ones. Returns a *errs.NotFound if id is
// absent or tombstoned.
func (t *Table) Update(id uint64, values []valuetype.Value) error {
	slot, ok := t.slotFor(id)
	if !ok {
		return errs.NewNotFound(t.name, "row")
	}
	if err := t.validate(values); err != nil {
		return err
	}
	for i, v := range values {
		old := t.data[i][slot]
		if !old.IsNull() {
			t.indexes[i].Remove(id, old)
		}
		t.data[i][slot] = v
		if !v.IsNull() {
			t.indexes[i].Insert(id, v)
		}
	}
	return nil
}

// Delete tombstones a live row and removes its index entries. A
// second delete of the same id returns *errs.NotFound.
func (t *Table) Delete(id uint64) error {
	slot, ok := t.slotFor(id)
	if !ok {
		return errs.NewNotFound(t.name, "row")
	}
	for i := range t.columns {
		v := t.data[i][slot]
		if !v.IsNull() {
			t.indexes[i].Remove(id, v)
		}
	}
	t.tomb[slot] = true
	t.rowCount--
	return nil
}

// Get returns the current values of a live row.
func (t *Table) Get(id uint64) (Row, bool) {
	slot, ok := t.slotFor(id)
	if !ok {
		return Row{}, false
	}
	values := make([]valuetype.Value, len(t.columns))
	for i := range t.columns {
		values[i] = t.data[i][slot]
	}
	return Row{ID: id, Values: values}, true
}

// GetMany returns the rows found among ids, in the input order of
// ids; missing rows are silently dropped.
func (t *Table) GetMany(ids []uint64) []Row {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		if row, ok := t.Get(id); ok {
			rows = append(rows, row)
		}
	}
	return rows
}

// ColumnPosition returns the declaration-order index of a column by
// name.
func (t *Table) ColumnPosition(name string) (int, error) {
	pos, ok := t.colIdx[name]
	if !ok {
		return 0, errs.NewUnknownColumn(t.name, name)
	}
	return pos, nil
}

// Search dispatches a predicate against one column's index and
// returns the surviving RowIds in deterministic order (ascending
// RowId for Exact/FullText/Contains; ascending key then RowId for
// Range/Prefix). A predicate that is structurally incompatible with
// the column's type (e.g. Range against a String column) returns an
// empty result, never an error: search is a query, not a validation
// surface.
func (t *Table) Search(columnName string, pred predicate.Predicate) ([]uint64, error) {
	pos, err := t.ColumnPosition(columnName)
	if err != nil {
		return nil, err
	}
	return dispatch(t.columns[pos].Type, t.indexes[pos], pred), nil
}
