package store

import (
	"fmt"
	"strings"
)

const (
	ModeMemory   = "memory"
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
)

type Config struct {
	Mode        string `yaml:"mode"`
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

func normalizeMode(raw string) string {
	switch mode := strings.ToLower(strings.TrimSpace(raw)); mode {
	case "", ModeMemory, "mem":
		return ModeMemory
	case ModeSQLite, "sqlite3":
		return ModeSQLite
	case ModePostgres, "postgresql", "pg":
		return ModePostgres
	default:
		return mode
	}
}

// New opens the store selected by cfg.Mode and returns it with the normalized mode.
func New(cfg Config) (Store, string, error) {
	mode := normalizeMode(cfg.Mode)

	switch mode {
	case ModeMemory:
		return NewMemoryStore(), mode, nil
	case ModeSQLite:
		path := cfg.SQLitePath
		if strings.TrimSpace(path) == "" {
			path = DefaultSQLitePath
		}
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	case ModePostgres:
		dsn := cfg.PostgresDSN
		if strings.TrimSpace(dsn) == "" {
			dsn = DefaultPostgresDSN
		}
		s, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, mode, err
		}
		return s, mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid store mode %q (supported: %s, %s, %s)", mode, ModeMemory, ModeSQLite, ModePostgres)
	}
}
