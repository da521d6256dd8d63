// Package errs defines the typed error taxonomy shared by the table
// engine, the database, and the sync coordinator. Every user-facing
// failure is a concrete struct satisfying error rather than a sentinel
// string, so callers can type-switch on what went wrong.
package errs

import "fmt"

// ArityMismatch is returned when a row does not have one value per
// column.
type ArityMismatch struct {
	Table    string
	Expected int
	Got      int
}

func (e *ArityMismatch) Error() string {
	return fmt.Sprintf("table %s: expected %d values, got %d", e.Table, e.Expected, e.Got)
}

// NewArityMismatch builds an ArityMismatch error.
func NewArityMismatch(table string, expected, got int) *ArityMismatch {
	return &ArityMismatch{Table: table, Expected: expected, Got: got}
}

// TypeMismatch is returned when a value's variant does not match the
// declared column type.
type TypeMismatch struct {
	Table  string
	Column string
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("table %s: value does not match type of column %s", e.Table, e.Column)
}

// NewTypeMismatch builds a TypeMismatch error.
func NewTypeMismatch(table, column string) *TypeMismatch {
	return &TypeMismatch{Table: table, Column: column}
}

// UnknownColumn is returned when a column name does not exist on a
// table.
type UnknownColumn struct {
	Table  string
	Column string
}

func (e *UnknownColumn) Error() string {
	return fmt.Sprintf("table %s has no column %s", e.Table, e.Column)
}

// NewUnknownColumn builds an UnknownColumn error.
func NewUnknownColumn(table, column string) *UnknownColumn {
	return &UnknownColumn{Table: table, Column: column}
}

// UnknownTable is returned when a table name does not exist in the
// database.
type UnknownTable struct {
	Table string
}

func (e *UnknownTable) Error() string {
	return fmt.Sprintf("table %s not found", e.Table)
}

// NewUnknownTable builds an UnknownTable error.
func NewUnknownTable(table string) *UnknownTable {
	return &UnknownTable{Table: table}
}

// DuplicateTable is returned when create_table targets a name that
// already exists.
type DuplicateTable struct {
	Table string
}

func (e *DuplicateTable) Error() string {
	return fmt.Sprintf("table %s already exists", e.Table)
}

// NewDuplicateTable builds a DuplicateTable error.
func NewDuplicateTable(table string) *DuplicateTable {
	return &DuplicateTable{Table: table}
}

// NotFound is returned when a RowId (or other keyed lookup) does not
// resolve to a live entity.
type NotFound struct {
	Table string
	What  string
}

func (e *NotFound) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s not found", e.What)
	}
	return fmt.Sprintf("%s not found in table %s", e.What, e.Table)
}

// NewNotFound builds a NotFound error. what is a short description of
// the thing that was looked up, e.g. "row 42".
func NewNotFound(table, what string) *NotFound {
	return &NotFound{Table: table, What: what}
}

// InvalidPredicate is returned when a predicate is structurally
// malformed (not simply incompatible with a column's type, which
// returns an empty result set by design rather than an error).
type InvalidPredicate struct {
	Reason string
}

func (e *InvalidPredicate) Error() string {
	return fmt.Sprintf("invalid predicate: %s", e.Reason)
}

// NewInvalidPredicate builds an InvalidPredicate error.
func NewInvalidPredicate(reason string) *InvalidPredicate {
	return &InvalidPredicate{Reason: reason}
}

// InvalidTypeName is returned when a wire type-name alias does not map
// to any ColumnType.
type InvalidTypeName struct {
	Name string
}

func (e *InvalidTypeName) Error() string {
	return fmt.Sprintf("invalid column type name: %q", e.Name)
}

// NewInvalidTypeName builds an InvalidTypeName error.
func NewInvalidTypeName(name string) *InvalidTypeName {
	return &InvalidTypeName{Name: name}
}

// Internal wraps an invariant violation: index inconsistency, lock
// poisoning, or any other state the core promises can't happen; its
// existence lets the core surface a generic error instead of panicking.
// The api package also returns it when a sync operation is requested
// on a Server built without a sync manager.
type Internal struct {
	Reason string
}

func (e *Internal) Error() string {
	return fmt.Sprintf("internal invariant violation: %s", e.Reason)
}

// NewInternal builds an Internal error.
func NewInternal(reason string) *Internal {
	return &Internal{Reason: reason}
}
