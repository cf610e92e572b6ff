package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/browser"
	"github.com/Tiliavir/worklog/internal/config"
	"github.com/Tiliavir/worklog/internal/editor"
	"github.com/Tiliavir/worklog/internal/finder"
	"github.com/Tiliavir/worklog/internal/prompt"
	"github.com/Tiliavir/worklog/internal/storage"
)

// session bundles the store handle and the components built on it for the
// lifetime of one command.
type session struct {
	logger  *slog.Logger
	store   *storage.Store
	term    *prompt.Terminal
	editor  *editor.Editor
	finder  *finder.Finder
	browser *browser.Browser
}

// loadConfig reads the config file with the persistent flags layered on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var ov config.Overrides
	flags := cmd.Flags()
	if flags.Changed("driver") {
		ov.Driver = dbDriver
	}
	if flags.Changed("db") {
		ov.DSN = dbDSN
	}
	if flags.Changed("log-level") {
		ov.LogLevel = logLevel
	}
	return config.Load(configPath, ov)
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := config.ParseLevel(cfg.Log.Level)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openSession opens the store and wires the interactive components to the
// command's input and output. The caller must Close it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	store, err := storage.Open(cfg, logger.With(slog.String("component", "storage")))
	if err != nil {
		return nil, err
	}

	return newSession(store, cmd.InOrStdin(), cmd.OutOrStdout(), logger), nil
}

func newSession(store *storage.Store, in io.Reader, out io.Writer, logger *slog.Logger, opts ...prompt.Option) *session {
	term := prompt.New(in, out, opts...)
	ed := editor.New(store, term, editor.WithLogger(logger.With(slog.String("component", "editor"))))
	return &session{
		logger:  logger,
		store:   store,
		term:    term,
		editor:  ed,
		finder:  finder.New(store),
		browser: browser.New(store, term, ed, logger.With(slog.String("component", "browser"))),
	}
}

func (s *session) Close() error {
	return s.store.Close()
}
