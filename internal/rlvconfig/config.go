// Package rlvconfig layers engine configuration the way the teacher's
// internal/util.NewConfigStore does: a TOML file first, then RLV__-prefixed
// environment variables, each layer overriding the last. Grounded on
// internal/util/config.go.
package rlvconfig

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the engine's tunable surface: everything ambient that isn't
// itself restriction state.
type Config struct {
	LogLevel      string
	LogFile       string
	BlacklistSeed []string
	AuditDBPath   string
	AuditEnabled  bool
}

func defaults() Config {
	return Config{
		LogLevel:     "info",
		AuditDBPath:  "rlv-audit.db",
		AuditEnabled: true,
	}
}

type fileShape struct {
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	BlacklistSeed []string `toml:"blacklist_seed"`
	AuditDBPath   string   `toml:"audit_db_path"`
	AuditEnabled  *bool    `toml:"audit_enabled"`
}

// Load reads configPath (if non-empty and present) and then overlays
// RLV__-prefixed environment variables (RLV__LOG_LEVEL, RLV__LOG_FILE,
// RLV__AUDIT_DB_PATH, RLV__AUDIT_ENABLED, RLV__BLACKLIST_SEED as a
// comma-separated list).
func Load(configPath string) Config {
	cfg := defaults()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			var fs fileShape
			if _, err := toml.DecodeFile(configPath, &fs); err == nil {
				applyFile(&cfg, fs)
			}
		}
	}

	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "RLV__") {
			continue
		}
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		applyEnv(&cfg, strings.TrimPrefix(pair[0], "RLV__"), pair[1])
	}

	return cfg
}

func applyFile(cfg *Config, fs fileShape) {
	if fs.LogLevel != "" {
		cfg.LogLevel = fs.LogLevel
	}
	if fs.LogFile != "" {
		cfg.LogFile = fs.LogFile
	}
	if len(fs.BlacklistSeed) > 0 {
		cfg.BlacklistSeed = fs.BlacklistSeed
	}
	if fs.AuditDBPath != "" {
		cfg.AuditDBPath = fs.AuditDBPath
	}
	if fs.AuditEnabled != nil {
		cfg.AuditEnabled = *fs.AuditEnabled
	}
}

func applyEnv(cfg *Config, key, value string) {
	switch key {
	case "LOG_LEVEL":
		cfg.LogLevel = value
	case "LOG_FILE":
		cfg.LogFile = value
	case "AUDIT_DB_PATH":
		cfg.AuditDBPath = value
	case "AUDIT_ENABLED":
		if b, err := strconv.ParseBool(value); err == nil {
			cfg.AuditEnabled = b
		}
	case "BLACKLIST_SEED":
		if value == "" {
			cfg.BlacklistSeed = nil
			return
		}
		cfg.BlacklistSeed = strings.Split(value, ",")
	}
}
