// Package lineproto implements syncmgr.Source against the ClickHouse
// native HTTP interface: a plain POST carrying the query body, with
// the response read back as TabSeparated (TSV) text. No ClickHouse
// client library is required — the wire format is a few lines of
// text over net/http, which is the advantage querying it buys over a
// full binary protocol client.
package lineproto

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NoahCxrest/quickset/syncmgr"
	"github.com/NoahCxrest/quickset/valuetype"
)

// NullSentinel is the TSV encoding ClickHouse uses for NULL.
const NullSentinel = `\N`

// Config holds the connection parameters for a ClickHouse HTTP
// endpoint.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Source pulls rows from ClickHouse over its HTTP interface using
// TabSeparated output, parsed field-by-field according to each synced
// table's declared column types.
type Source struct {
	cfg       Config
	client    *http.Client
	connected bool
}

// New builds an unconnected Source for the given endpoint.
func New(cfg Config) *Source {
	return &Source{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Name implements syncmgr.Source.
func (s *Source) Name() string { return "clickhouse" }

// Connect verifies the endpoint is reachable with a trivial query.
func (s *Source) Connect() error {
	if _, err := s.execute("SELECT 1"); err != nil {
		return err
	}
	s.connected = true
	return nil
}

// Disconnect marks the source as no longer connected; the underlying
// HTTP client has no persistent connection to tear down.
func (s *Source) Disconnect() { s.connected = false }

// IsConnected implements syncmgr.Source.
func (s *Source) IsConnected() bool { return s.connected }

// FetchTable runs the table's query (or a generated SELECT of its
// mapped source columns) and parses the TSV response according to the
// table's column type mapping.
func (s *Source) FetchTable(table syncmgr.SyncTable) (syncmgr.FetchResult, error) {
	query := buildQuery(table)
	body, err := s.execute(query)
	if err != nil {
		return syncmgr.FetchResult{}, err
	}
	rows, err := parseResponse(body, table)
	if err != nil {
		return syncmgr.FetchResult{}, err
	}
	return syncmgr.FetchResult{Rows: rows, RowCount: len(rows)}, nil
}

func buildQuery(table syncmgr.SyncTable) string {
	if table.QueryOverride != "" {
		return table.QueryOverride
	}
	if len(table.Columns) == 0 {
		return fmt.Sprintf("SELECT * FROM %s", table.SourceTable)
	}
	names := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		names[i] = c.SourceName
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), table.SourceTable)
}

func (s *Source) execute(query string) (string, error) {
	endpoint := fmt.Sprintf("http://%s:%d/", s.cfg.Host, s.cfg.Port)

	db := s.cfg.Database
	if db == "" {
		db = "default"
	}
	user := s.cfg.User
	if user == "" {
		user = "default"
	}

	q := url.Values{}
	q.Set("database", db)
	q.Set("user", user)
	q.Set("password", s.cfg.Password)

	fullQuery := query + " FORMAT TabSeparated"
	req, err := http.NewRequest(http.MethodPost, endpoint+"?"+q.Encode(), strings.NewReader(fullQuery))
	if err != nil {
		return "", syncmgr.NewQueryError(err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", syncmgr.NewConnectionError(err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", syncmgr.NewQueryError("failed to read body: " + err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return "", syncmgr.NewQueryError(fmt.Sprintf("clickhouse error: %s %s", resp.Status, strings.TrimSpace(string(body))))
	}
	return string(body), nil
}

func parseResponse(response string, table syncmgr.SyncTable) ([][]valuetype.Value, error) {
	var rows [][]valuetype.Value
	scanner := bufio.NewScanner(strings.NewReader(response))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if len(table.Columns) == 0 {
			row := make([]valuetype.Value, len(fields))
			for i, f := range fields {
				row[i] = valuetype.NewString(unescapeTSV(f))
			}
			rows = append(rows, row)
			continue
		}

		if len(fields) != len(table.Columns) {
			return nil, syncmgr.NewParseError(fmt.Sprintf("column count mismatch: expected %d, got %d", len(table.Columns), len(fields)))
		}

		row := make([]valuetype.Value, len(fields))
		for i, f := range fields {
			row[i] = parseField(f, table.Columns[i].ColType)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, syncmgr.NewParseError(err.Error())
	}
	return rows, nil
}

func parseField(field string, ct valuetype.ColumnType) valuetype.Value {
	field = strings.TrimSpace(field)
	if field == "" || field == NullSentinel || field == "NULL" {
		return valuetype.Null
	}
	if ct == valuetype.String {
		return valuetype.NewString(unescapeTSV(field))
	}
	return valuetype.FromExternal(field, ct)
}

func unescapeTSV(s string) string {
	replacer := strings.NewReplacer(`\t`, "\t", `\n`, "\n", `\\`, `\`)
	return replacer.Replace(s)
}
