// vanainv reads a character's container and equipment-set .dat files and
// prints them as a text report, CSV or JSON.
//
// Usage:
//
//	vanainv [flags] <character dir | es<N>.dat | container .dat>
//	vanainv [flags] -char <id>        (resolved under [paths] user_dir)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vanatools/vanainv/internal/config"
	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/datfile"
	"github.com/vanatools/vanainv/internal/equipset"
	"github.com/vanatools/vanainv/internal/persist"
	"github.com/vanatools/vanainv/internal/report"
	"github.com/vanatools/vanainv/internal/storage"
)

const defaultConfigPath = "config/vanainv.toml"

type options struct {
	configPath string
	charID     string
	dbPath     string
	lang       string
	showEmpty  bool
	organize   bool
	csvPath    string
	jsonPath   string
	target     string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	flags := flag.NewFlagSet("vanainv", flag.ContinueOnError)
	flags.StringVar(&o.configPath, "config", "", "config file (default "+defaultConfigPath+" or $VANAINV_CONFIG)")
	flags.StringVar(&o.charID, "char", "", "character folder name under [paths] user_dir")
	flags.StringVar(&o.dbPath, "db", "", "item dictionary (SQLite) path, overrides config")
	flags.StringVar(&o.lang, "lang", "", "item name language: ja or en")
	flags.BoolVar(&o.showEmpty, "all", false, "show empty equipment sets and slots")
	flags.BoolVar(&o.organize, "organize", false, "list container items in organize order")
	flags.StringVar(&o.csvPath, "csv", "", "write container items as CSV to this file")
	flags.StringVar(&o.jsonPath, "json", "", "write equipment sets as JSON to this file (.zst compresses)")
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	o.target = flags.Arg(0)
	return o, nil
}

func loadConfig(path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
		if p := os.Getenv("VANAINV_CONFIG"); p != "" {
			path = p
			explicit = true
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout io.Writer) error {
	// 1. Flags and config
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.dbPath != "" {
		cfg.ItemDB.Source = config.SourceSQLite
		cfg.ItemDB.Path = opts.dbPath
	}
	if opts.lang != "" {
		cfg.ItemDB.Language = opts.lang
	}
	if opts.showEmpty {
		cfg.Output.ShowEmpty = true
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	target := opts.target
	if target == "" && opts.charID != "" {
		if cfg.Paths.UserDir == "" {
			return fmt.Errorf("-char needs [paths] user_dir in the config")
		}
		target = filepath.Join(cfg.Paths.UserDir, opts.charID)
	}
	if target == "" {
		return fmt.Errorf("usage: vanainv [flags] <character dir | es<N>.dat | container .dat>")
	}

	// 3. Item dictionary (optional)
	ctx := context.Background()
	lookup := persist.OpenLookup(ctx, cfg.ItemDB, log)

	ropts := report.Options{
		Lang:      data.ParseLanguage(cfg.ItemDB.Language),
		Organize:  opts.organize,
		ShowEmpty: cfg.Output.ShowEmpty,
		Color:     useColor(cfg.Output.Color, stdout),
	}

	// 4. Decode
	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("%s is not a valid file or directory", target)
	}
	if st.IsDir() {
		return runDir(ctx, target, lookup, ropts, opts, stdout, log)
	}
	return runFile(target, lookup, ropts, opts, stdout)
}

func runDir(ctx context.Context, dir string, lookup data.Lookup, ropts report.Options, opts options, stdout io.Writer, log *zap.Logger) error {
	ch, err := storage.ScanCharacter(dir, log)
	if err != nil {
		return err
	}
	sets, err := equipset.LoadAll(ctx, dir)
	if err != nil {
		return err
	}
	log.Info("character decoded",
		zap.String("character", ch.ID),
		zap.Int("containers", len(ch.Containers)),
		zap.Int("items", ch.ItemCount()),
	)

	if err := report.Inventory(stdout, ch, lookup, ropts); err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if err := report.EquipSets(stdout, sets, lookup, ropts); err != nil {
		return err
	}
	return writeExports(ch, sets, lookup, ropts.Lang, opts, stdout)
}

func runFile(path string, lookup data.Lookup, ropts report.Options, opts options, stdout io.Writer) error {
	f, err := datfile.Read(path)
	if err != nil {
		return err
	}
	if idx, ok := equipset.FileIndexFromName(f.Name); ok {
		sets := []equipset.File{equipset.DecodeFile(f, idx)}
		if err := report.EquipSets(stdout, sets, lookup, ropts); err != nil {
			return err
		}
		return writeExports(nil, sets, lookup, ropts.Lang, opts, stdout)
	}

	ch := &storage.Character{ID: filepath.Base(filepath.Dir(path)), Dir: filepath.Dir(path)}
	ch.Containers = append(ch.Containers, storage.NewContainer(f))
	if err := report.Inventory(stdout, ch, lookup, ropts); err != nil {
		return err
	}
	return writeExports(ch, nil, lookup, ropts.Lang, opts, stdout)
}

func writeExports(ch *storage.Character, sets []equipset.File, lookup data.Lookup, lang data.Language, opts options, stdout io.Writer) error {
	if opts.csvPath != "" && ch != nil {
		out, err := os.Create(opts.csvPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.csvPath, err)
		}
		if err := report.CSV(out, ch, lookup, lang); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nExported CSV to %s\n", opts.csvPath)
	}
	if opts.jsonPath != "" && sets != nil {
		if err := report.ExportEquipSetsJSON(opts.jsonPath, sets, lookup, lang); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nExported JSON to %s\n", opts.jsonPath)
	}
	return nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.WarnLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
