package syncmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahCxrest/quickset/logging"
	"github.com/NoahCxrest/quickset/store"
	"github.com/NoahCxrest/quickset/valuetype"
)

// stubSource is a hand-rolled Source whose FetchTable result (or error)
// is set by the test, so sync success and failure paths can both be
// driven without a live datasource.
type stubSource struct {
	connected bool
	result    FetchResult
	err       error
}

func (s *stubSource) Connect() error    { s.connected = true; return nil }
func (s *stubSource) Disconnect()       { s.connected = false }
func (s *stubSource) IsConnected() bool { return s.connected }
func (s *stubSource) Name() string      { return "stub" }
func (s *stubSource) FetchTable(SyncTable) (FetchResult, error) {
	if s.err != nil {
		return FetchResult{}, s.err
	}
	return s.result, nil
}

func twoIntTable() SyncTable {
	return NewSyncTable("src", "dst").
		WithColumn("a", "a", valuetype.Int).
		WithColumn("b", "b", valuetype.Int)
}

func TestScenarioS5SyncAllInsertsRows(t *testing.T) {
	source := &stubSource{
		result: FetchResult{
			Rows: [][]valuetype.Value{
				{valuetype.NewInt(1), valuetype.NewInt(10)},
				{valuetype.NewInt(2), valuetype.NewInt(20)},
			},
			RowCount: 2,
		},
	}
	cfg := NewConfig().WithTable(twoIntTable())
	mgr := New(source, cfg, logging.NoOp{})

	db := store.New(nil)
	results := mgr.SyncAll(db)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, 2, results[0].RowsSynced)
	assert.EqualValues(t, 1, mgr.SyncCount())

	dst, err := db.GetTable("dst")
	require.NoError(t, err)
	assert.Equal(t, 2, dst.RowCount())

	row1, ok := dst.Get(1)
	require.True(t, ok)
	age, _ := row1.Values[1].Int()
	assert.Equal(t, int64(10), age)

	status, ok := mgr.TableStatus("dst")
	require.True(t, ok)
	assert.Equal(t, 2, status.LastRowCount)
	assert.Empty(t, status.Error)
}

func TestScenarioS6FetchFailureRecordsErrorStatus(t *testing.T) {
	source := &stubSource{err: NewConnectionError("boom")}
	cfg := NewConfig().WithTable(twoIntTable())
	mgr := New(source, cfg, logging.NoOp{})

	db := store.New(nil)
	result := mgr.SyncTable(db, twoIntTable())

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)

	status, ok := mgr.TableStatus("dst")
	require.True(t, ok)
	assert.Equal(t, 0, status.LastRowCount)
	assert.NotEmpty(t, status.Error)
}

func TestScenarioS6FetchFailureAfterSuccessKeepsPriorRowCount(t *testing.T) {
	source := &stubSource{
		result: FetchResult{
			Rows: [][]valuetype.Value{
				{valuetype.NewInt(1), valuetype.NewInt(10)},
				{valuetype.NewInt(2), valuetype.NewInt(20)},
			},
			RowCount: 2,
		},
	}
	cfg := NewConfig().WithTable(twoIntTable())
	mgr := New(source, cfg, logging.NoOp{})

	db := store.New(nil)
	ok1 := mgr.SyncTable(db, twoIntTable())
	require.True(t, ok1.Success)

	status, ok := mgr.TableStatus("dst")
	require.True(t, ok)
	lastSync := status.LastSync
	assert.Equal(t, 2, status.LastRowCount)
	assert.Empty(t, status.Error)

	source.result = FetchResult{}
	source.err = NewConnectionError("boom")
	result := mgr.SyncTable(db, twoIntTable())
	assert.False(t, result.Success)

	status, ok = mgr.TableStatus("dst")
	require.True(t, ok)
	assert.Equal(t, 2, status.LastRowCount, "a failed sync must not erase the prior successful row count")
	assert.Equal(t, lastSync, status.LastSync, "a failed sync must not advance last_completed_at")
	assert.NotEmpty(t, status.Error)
	assert.False(t, status.Syncing)
}

func TestSyncTableAssignsUniqueRunID(t *testing.T) {
	source := &stubSource{result: FetchResult{Rows: [][]valuetype.Value{}, RowCount: 0}}
	cfg := NewConfig().WithTable(twoIntTable())
	mgr := New(source, cfg, logging.NoOp{})

	db := store.New(nil)
	r1 := mgr.SyncTable(db, twoIntTable())
	r2 := mgr.SyncTable(db, twoIntTable())

	assert.NotEmpty(t, r1.RunID)
	assert.NotEmpty(t, r2.RunID)
	assert.NotEqual(t, r1.RunID, r2.RunID)
}

func TestStopIsIdempotent(t *testing.T) {
	source := &stubSource{}
	cfg := NewConfig()
	mgr := New(source, cfg, logging.NoOp{})

	mgr.Stop()
	mgr.Stop()
	assert.False(t, mgr.IsRunning())
}
