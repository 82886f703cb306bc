package cmd

import (
	"database/sql"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caresoft-ricent/beaverbuild/internal/config"
	"github.com/caresoft-ricent/beaverbuild/internal/db"
	"github.com/caresoft-ricent/beaverbuild/internal/descriptor"
	"github.com/caresoft-ricent/beaverbuild/internal/flutter"
	"github.com/caresoft-ricent/beaverbuild/internal/history"
	"github.com/caresoft-ricent/beaverbuild/internal/observability"
	"github.com/caresoft-ricent/beaverbuild/internal/signing"
)

// app bundles what every command needs after flag and config resolution.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if dir, _ := cmd.Flags().GetString("project-dir"); dir != "" {
		cfg.Flutter.ProjectDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := observability.SetupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, log: logger}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

// evaluation is one pass of the selector plus the descriptor built from it.
type evaluation struct {
	sel  signing.Selection
	desc *descriptor.Descriptor
}

func (a *app) evaluate() (*evaluation, error) {
	sel := signing.NewSelector(nil, "").Select()
	a.log.Info("signing config selected",
		zap.String("kind", string(sel.Config.Kind)),
		zap.Bool("keystore", sel.Presence.Keystore),
		zap.Bool("alias", sel.Presence.Alias),
		zap.Bool("password", sel.Presence.Password))
	if !sel.Release() && (sel.Presence.Keystore || sel.Presence.Alias || sel.Presence.Password) {
		a.log.Warn("release signing inputs incomplete, falling back to debug signing")
	}

	v, err := flutter.Resolve(a.cfg.Flutter.ProjectDir)
	if err != nil {
		return nil, err
	}
	a.log.Debug("app version resolved",
		zap.Int("versionCode", v.Code),
		zap.String("versionName", v.Name),
		zap.String("source", v.Source))
	return &evaluation{sel: sel, desc: descriptor.Evaluate(a.cfg.Project, sel, v)}, nil
}

// errHistoryDisabled is returned by commands that write history while
// history.enabled is false.
var errHistoryDisabled = errors.New("evaluation history is disabled (history.enabled=false)")

// openHistory opens the history database for commands that read or write it.
func (a *app) openHistory() (*sql.DB, error) {
	path, err := config.DBPath()
	if err != nil {
		return nil, err
	}
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, err
	}
	a.log.Debug("history database opened", zap.String("path", path))
	return dbConn, nil
}

// record stores ev in the history database when history is enabled.
func (a *app) record(ev *evaluation, label string) (int64, error) {
	if !a.cfg.History.Enabled {
		a.log.Debug("history disabled, evaluation not recorded")
		return 0, nil
	}
	dbConn, err := a.openHistory()
	if err != nil {
		return 0, err
	}
	r := history.NewRepository(dbConn)
	defer func() { _ = r.Close() }()
	id, err := r.Record(history.Entry{
		Label:      label,
		ProjectDir: a.cfg.Flutter.ProjectDir,
		Selection:  ev.sel,
		Descriptor: ev.desc,
	})
	if err != nil {
		return 0, err
	}
	a.log.Debug("evaluation recorded", zap.Int64("id", id))
	return id, nil
}
