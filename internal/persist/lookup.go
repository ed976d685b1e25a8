package persist

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vanatools/vanainv/internal/config"
	"github.com/vanatools/vanainv/internal/data"
)

// LoadItemTable loads the dictionary from the configured source. An
// unconfigured or "none" source returns an empty table without error.
func LoadItemTable(ctx context.Context, cfg config.ItemDBConfig, log *zap.Logger) (*data.ItemTable, error) {
	switch cfg.Source {
	case "", config.SourceNone:
		return data.NewItemTable(nil), nil
	case config.SourceYAML:
		return data.LoadItemTableYAML(cfg.Path)
	case config.SourceSQLite:
		store, err := OpenSQLite(ctx, cfg.Path, false)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return loadFromStore(ctx, store)
	case config.SourcePostgres:
		store, err := OpenPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return loadFromStore(ctx, store)
	default:
		return nil, fmt.Errorf("unknown item db source %q", cfg.Source)
	}
}

func loadFromStore(ctx context.Context, s *Store) (*data.ItemTable, error) {
	entries, err := s.Items().LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return data.NewItemTable(entries), nil
}

// OpenLookup is LoadItemTable for callers that must not fail: any error is
// logged and an empty table is returned, so items keep their placeholder
// names.
func OpenLookup(ctx context.Context, cfg config.ItemDBConfig, log *zap.Logger) *data.ItemTable {
	t, err := LoadItemTable(ctx, cfg, log)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("item dictionary not found, names disabled", zap.String("path", cfg.Path))
		} else {
			log.Warn("item dictionary unavailable, names disabled",
				zap.String("source", cfg.Source),
				zap.Error(err),
			)
		}
		return data.NewItemTable(nil)
	}
	log.Debug("item dictionary loaded",
		zap.String("source", cfg.Source),
		zap.Int("items", t.Count()),
	)
	return t
}
