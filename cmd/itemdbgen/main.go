// itemdbgen builds the item dictionary from Windower's resources/items.lua.
//
// Usage:
//
//	go run ./cmd/itemdbgen -input path/to/items.lua [-format sqlite|postgres|yaml] [-output data/items.db] [-dsn postgres://...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vanatools/vanainv/internal/config"
	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/persist"
	"github.com/vanatools/vanainv/internal/scripting"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("itemdbgen", flag.ContinueOnError)
	input := flags.String("input", "", "path to Windower items.lua (required)")
	format := flags.String("format", config.SourceSQLite, "output format: sqlite, postgres or yaml")
	output := flags.String("output", "data/items.db", "output file for sqlite and yaml")
	dsn := flags.String("dsn", "", "PostgreSQL DSN for -format postgres")
	verbose := flags.Bool("v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("-input is required")
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	log, err := newLogger(config.LoggingConfig{Level: level, Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	engine := scripting.NewEngine(log)
	defer engine.Close()
	items, err := engine.LoadItems(*input)
	if err != nil {
		return err
	}
	log.Info("imported items", zap.Int("count", len(items)), zap.String("from", *input))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	switch *format {
	case config.SourceYAML:
		if err := data.WriteItemTableYAML(*output, items); err != nil {
			return err
		}
		fmt.Printf("Done! Output: %s\n", *output)
		return nil
	case config.SourceSQLite:
		if err := os.MkdirAll(filepath.Dir(*output), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.Remove(*output); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove old output: %w", err)
		}
		store, err := persist.OpenSQLite(ctx, *output, true)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := writeStore(ctx, store, items, *input); err != nil {
			return err
		}
		fmt.Printf("Done! Output: %s\n", *output)
		return nil
	case config.SourcePostgres:
		if *dsn == "" {
			return fmt.Errorf("-dsn is required for -format postgres")
		}
		store, err := persist.OpenPostgres(ctx, *dsn, log)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := writeStore(ctx, store, items, *input); err != nil {
			return err
		}
		fmt.Println("Done! Output: postgres")
		return nil
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func writeStore(ctx context.Context, store *persist.Store, items []data.ItemInfo, inputPath string) error {
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	repo := store.Items()
	n, err := repo.ReplaceAll(ctx, items)
	if err != nil {
		return err
	}
	if err := repo.SetMetadata(ctx, map[string]string{
		"source":       "windower_lua",
		"source_path":  inputPath,
		"generated_at": time.Now().Format(time.RFC3339),
	}); err != nil {
		return err
	}
	fmt.Printf("Imported %d items into %s\n", n, store.Dialect())
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	zapCfg.EncoderConfig.ConsoleSeparator = "  "
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
