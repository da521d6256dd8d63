package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/table"
	"github.com/NoahCxrest/quickset/valuetype"
)

func intColumns() []valuetype.Column {
	return []valuetype.Column{{Name: "v", Type: valuetype.Int}}
}

func TestCreateTableDuplicateRejected(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.CreateTable("t", intColumns()))

	err := db.CreateTable("t", intColumns())
	require.Error(t, err)
	assert.IsType(t, &errs.DuplicateTable{}, err)
}

func TestDropThenRecreateClearsOldRows(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.CreateTable("t", intColumns()))

	var id uint64
	require.NoError(t, db.WithTableWrite("t", func(tbl *table.Table) error {
		var err error
		id, err = tbl.Insert([]valuetype.Value{valuetype.NewInt(1)})
		return err
	}))

	assert.True(t, db.DropTable("t"))
	require.NoError(t, db.CreateTable("t", intColumns()))

	err := db.WithTable("t", func(tbl *table.Table) error {
		_, ok := tbl.Get(id)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestGetTableUnknownTable(t *testing.T) {
	db := New(nil)
	_, err := db.GetTable("missing")
	require.Error(t, err)
	assert.IsType(t, &errs.UnknownTable{}, err)
}

func TestStatsReflectsRowAndColumnCounts(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.CreateTable("t", intColumns()))
	require.NoError(t, db.WithTableWrite("t", func(tbl *table.Table) error {
		_, err := tbl.Insert([]valuetype.Value{valuetype.NewInt(1)})
		return err
	}))

	stats := db.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "t", stats[0].Name)
	assert.Equal(t, 1, stats[0].RowCount)
	assert.Equal(t, 1, stats[0].ColumnCount)
}

func TestSearchAppliesPagination(t *testing.T) {
	db := New(nil)
	require.NoError(t, db.CreateTable("t", intColumns()))
	require.NoError(t, db.WithTableWrite("t", func(tbl *table.Table) error {
		for i := 0; i < 5; i++ {
			if _, err := tbl.Insert([]valuetype.Value{valuetype.NewInt(1)}); err != nil {
				return err
			}
		}
		return nil
	}))

	ids, total, err := db.Search("t", "v", predicate.NewExact(valuetype.NewInt(1)), predicate.Page{Offset: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, ids, 2)
}
