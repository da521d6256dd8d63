package sqlsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahCxrest/quickset/syncmgr"
	"github.com/NoahCxrest/quickset/valuetype"
)

func TestBuildSelect(t *testing.T) {
	tbl := syncmgr.NewSyncTable("accounts", "accounts").
		WithColumn("id", "id", valuetype.Int).
		WithColumn("email", "email", valuetype.String)
	assert.Equal(t, "SELECT id, email FROM accounts", buildSelect(tbl))
}

func TestBuildDSNVariants(t *testing.T) {
	assert.Equal(t, "user:pass@tcp(db:3306)/app",
		buildDSN(Config{Driver: "mysql", Host: "db", Port: 3306, User: "user", Password: "pass", Database: "app"}))

	assert.Equal(t, "host=db port=5432 user=user password=pass dbname=app sslmode=disable",
		buildDSN(Config{Driver: "postgres", Host: "db", Port: 5432, User: "user", Password: "pass", Database: "app"}))

	assert.Equal(t, "/data/app.db", buildDSN(Config{Driver: "sqlite", Database: "/data/app.db"}))
}

func TestToValueNilIsNull(t *testing.T) {
	assert.Equal(t, valuetype.Null, toValue(nil, valuetype.Int))
}

func TestToValueByteSliceCoercesByTargetType(t *testing.T) {
	v := toValue([]byte("42"), valuetype.Int)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)
}

func TestToValueInt64FastPath(t *testing.T) {
	v := toValue(int64(7), valuetype.Int)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), n)
}

func TestToValueFloat64FastPath(t *testing.T) {
	v := toValue(3.5, valuetype.Float)
	f, ok := v.Float()
	require.True(t, ok)
	assert.Equal(t, 3.5, f)
}

func TestToValueBoolCoercesToIntString(t *testing.T) {
	v := toValue(true, valuetype.Int)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)

	v = toValue(false, valuetype.Int)
	n, ok = v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(0), n)
}

func TestToValueTimeFormatsAsString(t *testing.T) {
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	v := toValue(when, valuetype.String)
	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, when.Format(time.RFC3339), s)
}
