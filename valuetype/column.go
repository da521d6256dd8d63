package valuetype

import (
	"strings"

	"github.com/NoahCxrest/quickset/errs"
)

// Column describes one column of a table: its name (unique and
// non-empty within the table, case-sensitive) and its declared type.
type Column struct {
	Name string
	Type ColumnType
}

// ParseTypeName resolves a wire-form type name alias (case-insensitive)
// to a ColumnType, per the package's alias table.
func ParseTypeName(name string) (ColumnType, error) {
	switch strings.ToLower(name) {
	case "int", "integer", "i64":
		return Int, nil
	case "float", "double", "f64":
		return Float, nil
	case "string", "text", "varchar":
		return String, nil
	case "bytes", "blob", "binary":
		return Bytes, nil
	default:
		return 0, errs.NewInvalidTypeName(name)
	}
}
