package config

import (
	"strings"
	"time"
)

// SyncSourceConfig configures the single external source quickset
// pulls from, per the QUICKSET_SYNC_* environment variables.
type SyncSourceConfig struct {
	Enabled    bool
	SourceType string // "mysql", "postgres", "sqlite"; anything else is "clickhouse"
	Host       string
	Port       int
	User       string
	Password   string
	Database   string
	Interval   time.Duration
	Tables     []string // comma-separated "source:target" pairs
}

// SyncSourceConfigFromEnv reads a SyncSourceConfig from the
// environment, defaulting to a disabled ClickHouse source polling
// every five minutes.
func SyncSourceConfigFromEnv() SyncSourceConfig {
	var tables []string
	if raw := envOr("QUICKSET_SYNC_TABLES", ""); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}
	}

	return SyncSourceConfig{
		Enabled:    envBoolOr("QUICKSET_SYNC_ENABLED", false),
		SourceType: envOr("QUICKSET_SYNC_SOURCE", "clickhouse"),
		Host:       envOr("QUICKSET_SYNC_HOST", "localhost"),
		Port:       envIntOr("QUICKSET_SYNC_PORT", 8123),
		User:       envOr("QUICKSET_SYNC_USER", "default"),
		Password:   envOr("QUICKSET_SYNC_PASSWORD", ""),
		Database:   envOr("QUICKSET_SYNC_DATABASE", "default"),
		Interval:   time.Duration(envIntOr("QUICKSET_SYNC_INTERVAL", 300)) * time.Second,
		Tables:     tables,
	}
}
