package httpapi

import (
	"math"

	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/valuetype"
)

func errInvalidPredicateType(t string) error {
	return errs.NewInvalidPredicate("unknown predicate type " + t)
}

type columnSpecWire struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type createTableRequest struct {
	Name     string           `json:"name"`
	Columns  []columnSpecWire `json:"columns"`
	Capacity int              `json:"capacity"`
}

type insertRequest struct {
	Rows [][]interface{} `json:"rows"`
}

type idsRequest struct {
	IDs []uint64 `json:"ids"`
}

type updateRequest struct {
	ID     uint64        `json:"id"`
	Values []interface{} `json:"values"`
}

// searchRequest is the wire form of a search predicate: {type:
// exact|prefix|range|fulltext|contains, value?, prefix?, query?,
// min?, max?}.
type searchRequest struct {
	Column string      `json:"column"`
	Type   string      `json:"type"`
	Value  interface{} `json:"value,omitempty"`
	Prefix string      `json:"prefix,omitempty"`
	Query  string      `json:"query,omitempty"`
	Min    *int64      `json:"min,omitempty"`
	Max    *int64      `json:"max,omitempty"`
	Offset int         `json:"offset,omitempty"`
	Limit  int         `json:"limit,omitempty"`
}

func (r searchRequest) toPredicate(colType valuetype.ColumnType) (predicate.Predicate, error) {
	switch r.Type {
	case "exact":
		v, err := valuetype.FromNative(r.Value, colType)
		if err != nil {
			return predicate.Predicate{}, err
		}
		return predicate.NewExact(v), nil
	case "prefix":
		return predicate.NewPrefix(r.Prefix), nil
	case "fulltext":
		return predicate.NewFullText(r.Query), nil
	case "contains":
		return predicate.NewContains(r.Query), nil
	case "range":
		min := int64(math.MinInt64)
		max := int64(math.MaxInt64)
		if r.Min != nil {
			min = *r.Min
		}
		if r.Max != nil {
			max = *r.Max
		}
		return predicate.NewRange(min, max), nil
	default:
		return predicate.Predicate{}, errInvalidPredicateType(r.Type)
	}
}
