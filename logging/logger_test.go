package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Warn, ParseLevel("warn"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Debug, ParseLevel("debug"))
	assert.Equal(t, Info, ParseLevel("info"))
	assert.Equal(t, Info, ParseLevel("nonsense"))
}

func TestStdLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Warn, &buf)

	log.Debug("store", "row %d inserted", 1)
	log.Info("store", "table created")
	assert.Empty(t, buf.String())

	log.Warn("store", "slow query: %dms", 500)
	assert.Contains(t, buf.String(), "[WARN] store: slow query: 500ms")

	log.Error("sync", "fetch failed: %s", "timeout")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "[ERROR] sync: fetch failed: timeout")
}

func TestStdLoggerSetLevelChangesFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Error, &buf)

	log.Info("api", "request handled")
	assert.Empty(t, buf.String())

	log.SetLevel(Info)
	assert.Equal(t, Info, log.GetLevel())

	log.Info("api", "request handled")
	assert.Contains(t, buf.String(), "[INFO] api: request handled")
}

func TestNoOpDiscardsEverything(t *testing.T) {
	var n NoOp
	n.Debug("x", "y")
	n.Info("x", "y")
	n.Warn("x", "y")
	n.Error("x", "y")
	n.SetLevel(Debug)
	assert.Equal(t, Info, n.GetLevel())
}
