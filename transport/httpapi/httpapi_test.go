package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahCxrest/quickset/api"
	"github.com/NoahCxrest/quickset/config"
	"github.com/NoahCxrest/quickset/store"
)

func newTestHandler(t *testing.T) (*Handler, *api.Server) {
	t.Helper()
	db := store.New(nil)
	srv := api.New(db, nil, nil)
	h := New(srv, config.Config{AuthLevel: config.AuthNone}, nil)
	return h, srv
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp := doJSON(t, ts, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeJSON(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateTableThenListTables(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp := doJSON(t, ts, http.MethodPost, "/tables", map[string]interface{}{
		"name": "users",
		"columns": []map[string]string{
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, ts, http.MethodGet, "/tables", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed map[string][]string
	decodeJSON(t, resp, &listed)
	assert.Equal(t, []string{"users"}, listed["names"])
}

func TestCreateTableDuplicateReturnsConflict(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	create := map[string]interface{}{
		"name":    "t",
		"columns": []map[string]string{{"name": "v", "type": "int"}},
	}
	doJSON(t, ts, http.MethodPost, "/tables", create).Body.Close()
	resp := doJSON(t, ts, http.MethodPost, "/tables", create)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInsertSearchGetDeleteRoundTrip(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/tables", map[string]interface{}{
		"name": "users",
		"columns": []map[string]string{
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
		},
	}).Body.Close()

	resp := doJSON(t, ts, http.MethodPost, "/tables/users/rows", map[string]interface{}{
		"rows": [][]interface{}{
			{"alice", float64(30)},
			{"bob", float64(25)},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inserted map[string]interface{}
	decodeJSON(t, resp, &inserted)
	assert.EqualValues(t, 2, inserted["count"])

	resp = doJSON(t, ts, http.MethodPost, "/tables/users/search", map[string]interface{}{
		"column": "age",
		"type":   "exact",
		"value":  float64(30),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var searched map[string]interface{}
	decodeJSON(t, resp, &searched)
	assert.EqualValues(t, 1, searched["total_before_pagination"])
	rows := searched["rows"].([]interface{})
	require.Len(t, rows, 1)

	id := rows[0].(map[string]interface{})["id"].(float64)

	resp = doJSON(t, ts, http.MethodPost, "/tables/users/get", map[string]interface{}{
		"ids": []float64{id},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, ts, http.MethodPost, "/tables/users/delete", map[string]interface{}{
		"ids": []float64{id},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted map[string]interface{}
	decodeJSON(t, resp, &deleted)
	assert.EqualValues(t, 1, deleted["deleted_count"])
}

func TestInsertTypeMismatchReturnsBadRequest(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/tables", map[string]interface{}{
		"name": "users",
		"columns": []map[string]string{
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
		},
	}).Body.Close()

	resp := doJSON(t, ts, http.MethodPost, "/tables/users/rows", map[string]interface{}{
		"rows": [][]interface{}{
			{"alice", "not-an-int"},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTypeMismatchReturnsBadRequest(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	doJSON(t, ts, http.MethodPost, "/tables", map[string]interface{}{
		"name": "users",
		"columns": []map[string]string{
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
		},
	}).Body.Close()

	resp := doJSON(t, ts, http.MethodPost, "/tables/users/rows", map[string]interface{}{
		"rows": [][]interface{}{
			{"alice", float64(30)},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inserted map[string]interface{}
	decodeJSON(t, resp, &inserted)
	ids := inserted["assigned_ids"].([]interface{})
	require.Len(t, ids, 1)
	id := ids[0].(float64)

	resp = doJSON(t, ts, http.MethodPost, "/tables/users/update", map[string]interface{}{
		"id":     id,
		"values": []interface{}{"alice", "not-an-int"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchUnknownTableReturnsNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp := doJSON(t, ts, http.MethodPost, "/tables/ghost/search", map[string]interface{}{
		"column": "x",
		"type":   "exact",
		"value":  "y",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthRequiredWhenConfigured(t *testing.T) {
	db := store.New(nil)
	srv := api.New(db, nil, nil)
	h := New(srv, config.Config{AuthLevel: config.AuthAll, AdminUser: "admin", AdminPass: "secret"}, nil)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp := doJSON(t, ts, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "secret")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSyncStatusAndTriggerWithoutManager(t *testing.T) {
	h, _ := newTestHandler(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	resp := doJSON(t, ts, http.MethodGet, "/sync/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status map[string]interface{}
	decodeJSON(t, resp, &status)
	assert.Equal(t, false, status["running"])

	resp = doJSON(t, ts, http.MethodPost, "/sync/trigger", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
