package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/L1nMay/vulnassess/internal/config"
	"github.com/L1nMay/vulnassess/internal/logger"
)

// Open picks Postgres when a DSN is configured and the local bbolt file
// otherwise.
func Open(cfg *config.Config) (HistoryStore, error) {
	if cfg.Database.DSN != "" {
		pg, err := NewPostgres(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pg.Migrate(cfg.Database.MigrationsDir); err != nil {
			_ = pg.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Infof("history store: postgres")
		return pg, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	store, err := NewStorage(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	logger.Infof("history store: %s", cfg.DBPath)
	return store, nil
}
