package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"hmis/internal/export"
	"hmis/internal/hmis/store/memory"
	"hmis/internal/hmis/store/postgres"
	"hmis/internal/ingest/lock"
	"hmis/internal/ingest/metrics"
	"hmis/internal/ingest/service"
	"hmis/internal/platform/config"
	"hmis/internal/platform/logger"
	"hmis/internal/platform/redis"
)

// store is what every command needs from a backend.
type store interface {
	service.Store
	service.StoreTx
	export.Source
}

// app holds the dependencies shared by the commands.
type app struct {
	cfg     config.Config
	log     *slog.Logger
	store   store
	lock    lock.Lock
	metrics *metrics.Metrics
	closers []func() error
}

// errNoDatabase is returned when a command that must persist runs without a
// database; the in-memory store would silently drop its work.
var errNoDatabase = errors.New("HMIS_DATABASE_URL or --database-url is required; without a database only --dry-run loads are allowed")

// execute runs the command line in args and closes whatever the command
// opened, whether or not it failed.
func (a *app) execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "hmis",
		Short:         "Load and export HMIS client data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().String("database-url", "", "postgres URL; required unless --dry-run (HMIS_DATABASE_URL)")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error (HMIS_LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "text or json (HMIS_LOG_FORMAT)")

	root.AddCommand(
		newLoadClientsCmd(a),
		newLoadProjectsCmd(a),
		newDumpCmd(a),
		newMigrateCmd(a),
	)
	return root
}

// init reads the environment, applies flag overrides and opens the store.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("database-url"); v != "" {
		cfg.DatabaseURL = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	a.cfg = cfg

	if a.log, err = logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	a.metrics = metrics.New(nil)
	dryRun, _ := flags.GetBool("dry-run")
	return a.openStore(cmd.Context(), dryRun)
}

// openStore connects to postgres. Dry runs without a database get an empty
// in-memory store instead.
func (a *app) openStore(ctx context.Context, dryRun bool) error {
	if a.cfg.DatabaseURL == "" {
		if !dryRun {
			return errNoDatabase
		}
		a.log.Info("no database configured; dry run uses an empty in-memory store")
		a.store = memory.New()
		return nil
	}
	db, err := sql.Open("postgres", a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("ping database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	a.store = postgres.NewPostgres(db, postgres.WithTxTimeout(a.cfg.TxTimeout))
	return nil
}

// openLock uses redis when configured and a no-op lock otherwise.
func (a *app) openLock(ctx context.Context) error {
	client, err := redis.New(ctx, a.cfg.Redis)
	if err != nil {
		return err
	}
	if client == nil {
		a.lock = lock.Noop{}
		return nil
	}
	a.closers = append(a.closers, client.Close)
	a.lock = lock.NewRedis(client, lock.DefaultKey, a.cfg.LockTTL)
	return nil
}

// withLock runs fn while holding the import lock.
func (a *app) withLock(ctx context.Context, fn func() error) (err error) {
	if err := a.openLock(ctx); err != nil {
		return err
	}
	lease, err := a.lock.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lease.Release(context.WithoutCancel(ctx)); rerr != nil {
			a.log.Warn("failed to release import lock", "error", rerr)
		}
	}()
	return fn()
}

func (a *app) writeMetrics() {
	if a.cfg.MetricsTextfile == "" {
		return
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
		a.log.Warn("failed to write metrics", "path", a.cfg.MetricsTextfile, "error", err)
	}
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
