package table

import (
	"github.com/NoahCxrest/quickset/index"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/valuetype"
)

// dispatch maps a (column type, index, predicate) triple to the
// surviving RowId list. Any combination the index doesn't support for
// the column's type returns nil (empty), never an error.
func dispatch(ct valuetype.ColumnType, idx index.Index, pred predicate.Predicate) []uint64 {
	switch ct {
	case valuetype.Int:
		return dispatchInt(idx.(*index.IntIndex), pred)
	case valuetype.Float:
		return dispatchFloat(idx.(*index.FloatIndex), pred)
	case valuetype.String:
		return dispatchString(idx.(*index.StringIndex), pred)
	case valuetype.Bytes:
		return dispatchBytes(idx.(*index.BytesIndex), pred)
	default:
		return nil
	}
}

func dispatchInt(idx *index.IntIndex, pred predicate.Predicate) []uint64 {
	switch pred.Kind {
	case predicate.Exact:
		n, ok := pred.Value.Int()
		if !ok {
			return nil
		}
		return idx.FindExact(n)
	case predicate.Range:
		return idx.FindRange(pred.Min, pred.Max)
	default:
		return nil
	}
}

func dispatchFloat(idx *index.FloatIndex, pred predicate.Predicate) []uint64 {
	if pred.Kind != predicate.Exact {
		return nil
	}
	f, ok := pred.Value.Float()
	if !ok {
		return nil
	}
	return idx.FindExact(f)
}

func dispatchBytes(idx *index.BytesIndex, pred predicate.Predicate) []uint64 {
	if pred.Kind != predicate.Exact {
		return nil
	}
	b, ok := pred.Value.BytesVal()
	if !ok {
		return nil
	}
	return idx.FindExact(b)
}

func dispatchString(idx *index.StringIndex, pred predicate.Predicate) []uint64 {
	switch pred.Kind {
	case predicate.Exact:
		s, ok := pred.Value.Str()
		if !ok {
			return nil
		}
		return idx.FindExact(s)
	case predicate.Prefix:
		return idx.FindPrefix(pred.Text)
	case predicate.FullText:
		return idx.FindFullText(pred.Text)
	case predicate.Contains:
		return idx.FindContains(pred.Text)
	default:
		return nil
	}
}
