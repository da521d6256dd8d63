// Package config loads quickset's runtime configuration from
// environment variables under the QUICKSET_* namespace.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/NoahCxrest/quickset/logging"
)

// AuthLevel controls which operation classes require authentication.
type AuthLevel int

const (
	AuthNone AuthLevel = iota
	AuthWrite
	AuthRead
	AuthAll
)

// ParseAuthLevel maps a config string to an AuthLevel. Unrecognized
// input returns false rather than a default, so callers can tell a
// typo apart from an intentional value.
func ParseAuthLevel(s string) (AuthLevel, bool) {
	switch strings.ToLower(s) {
	case "none", "off", "false", "0":
		return AuthNone, true
	case "write", "writes":
		return AuthWrite, true
	case "read", "reads":
		return AuthRead, true
	case "all", "full", "true", "1":
		return AuthAll, true
	default:
		return AuthNone, false
	}
}

// RequiresAuthForRead reports whether read operations need auth.
func (a AuthLevel) RequiresAuthForRead() bool { return a == AuthRead || a == AuthAll }

// RequiresAuthForWrite reports whether write operations need auth.
func (a AuthLevel) RequiresAuthForWrite() bool { return a == AuthWrite || a == AuthRead || a == AuthAll }

// RequiresAuthForHealth reports whether even health checks need auth.
func (a AuthLevel) RequiresAuthForHealth() bool { return a == AuthAll }

// Config is quickset's top-level runtime configuration.
type Config struct {
	Host           string
	Port           int
	AuthLevel      AuthLevel
	AdminUser      string
	AdminPass      string
	LogLevel       logging.Level
	MaxConnections int
}

// Address returns the host:port the HTTP server should bind.
func (c Config) Address() string { return c.Host + ":" + strconv.Itoa(c.Port) }

// AuthEnabled reports whether any auth is required at all.
func (c Config) AuthEnabled() bool { return c.AuthLevel != AuthNone }

// FromEnv reads a Config from the environment, falling back to the
// documented defaults for anything unset.
func FromEnv() Config {
	authLevel := AuthNone
	if s, ok := os.LookupEnv("QUICKSET_AUTH_LEVEL"); ok {
		if lvl, valid := ParseAuthLevel(s); valid {
			authLevel = lvl
		}
	} else if s, ok := os.LookupEnv("QUICKSET_AUTH"); ok {
		// backwards compatibility: the old boolean flag meant all-or-nothing
		if s == "1" || strings.EqualFold(s, "true") {
			authLevel = AuthAll
		}
	}

	return Config{
		Host:           envOr("QUICKSET_HOST", "0.0.0.0"),
		Port:           envIntOr("QUICKSET_PORT", 8080),
		AuthLevel:      authLevel,
		AdminUser:      envOr("QUICKSET_ADMIN_USER", "admin"),
		AdminPass:      envOr("QUICKSET_ADMIN_PASS", "admin"),
		LogLevel:       logging.ParseLevel(envOr("QUICKSET_LOG", "info")),
		MaxConnections: envIntOr("QUICKSET_MAX_CONN", 1000),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOr(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}
