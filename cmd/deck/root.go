package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/config"
	"github.com/sky-flux/deck/internal/logging"
	"github.com/sky-flux/deck/storage"
)

// globalFlags are shared by every subcommand. Set flags override the config
// file and the environment.
type globalFlags struct {
	cfgPath  string
	logLevel string
	backend  string
	path     string
}

func (f *globalFlags) overrides() *viper.Viper {
	v := viper.New()
	if f.logLevel != "" {
		v.Set("log.level", f.logLevel)
	}
	if f.backend != "" {
		v.Set("storage.backend", f.backend)
	}
	if f.path != "" {
		v.Set("storage.path", f.path)
	}
	return v
}

func rootCMD() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "deck",
		Short:         "Bilingual exercise flashcards",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.cfgPath, "config", "c", "", "config file (default ./deck.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.backend, "backend", "", "storage backend (file, badger, redis, postgres, memory)")
	pf.StringVar(&flags.path, "path", "", "collection file or badger directory")

	root.AddCommand(
		studyCMD(flags),
		manageCMD(flags),
		drawCMD(flags),
		listCMD(flags),
		showCMD(flags),
		searchCMD(flags),
		hideCMD(flags, true),
		hideCMD(flags, false),
		deleteCMD(flags),
		restoreCMD(flags),
		exportCMD(flags),
	)
	return root
}

// app holds what every command needs once flags and config are resolved.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	store    storage.Provider
	closeLog func() error
}

// openApp loads the config, builds the logger and opens storage.
// Interactive commands own the terminal, so their log goes to a file unless
// log.file is set.
func openApp(ctx context.Context, flags *globalFlags, interactive bool) (*app, error) {
	cfg, err := config.LoadWith(flags.overrides(), flags.cfgPath)
	if err != nil {
		return nil, err
	}

	logFile := cfg.Log.File
	if interactive && logFile == "" {
		logFile = interactiveLogPath()
	}
	out, closeLog, err := logging.OpenFile(logFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, out)
	if err != nil {
		closeLog()
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.Storage.Options(), log)
	if err != nil {
		closeLog()
		return nil, err
	}
	log.WithField("backend", cfg.Storage.Backend).Debug("storage opened")
	return &app{cfg: cfg, log: log, store: store, closeLog: closeLog}, nil
}

func (a *app) Close() error {
	err := a.store.Close()
	if cerr := a.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// records loads the collection, seeding storage with the built-in
// exercises when it is empty.
func (a *app) records(ctx context.Context) []deck.Record {
	return storage.LoadOrSeed(ctx, a.store, deck.DefaultRecords(), a.log)
}

// editable loads the collection for a command that saves it back. Unlike
// records, a failed load is an error: saving defaults over an unreadable
// store would discard it.
func (a *app) editable(ctx context.Context) ([]deck.Record, error) {
	records, err := a.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exercises (deck restore --yes replaces an unreadable collection): %w", err)
	}
	if len(records) == 0 {
		return a.records(ctx), nil
	}
	return records, nil
}

func (a *app) sampler() *deck.Sampler {
	var src rand.Source
	if a.cfg.Session.Seed != 0 {
		src = rand.NewSource(a.cfg.Session.Seed)
	}
	return deck.NewSampler(deck.SamplerConfig{Source: src})
}

// language returns the --lang value, or the configured language when empty.
func (a *app) language(flag string) (deck.Language, error) {
	if flag != "" {
		return deck.ParseLanguage(flag)
	}
	return a.cfg.Session.Language()
}

func interactiveLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "deck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "deck.log")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid exercise id %q", arg)
	}
	return id, nil
}

// withApp runs fn with an opened app and closes it afterwards.
func withApp(cmd *cobra.Command, flags *globalFlags, interactive bool, fn func(context.Context, *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, flags, interactive)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
