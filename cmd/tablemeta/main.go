package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ssriramteja/tablemeta/internal/batch"
	"github.com/ssriramteja/tablemeta/internal/catalog/mysql"
	"github.com/ssriramteja/tablemeta/internal/config"
	"github.com/ssriramteja/tablemeta/internal/export"
	"github.com/ssriramteja/tablemeta/internal/notify"
	"github.com/ssriramteja/tablemeta/internal/report"
	"github.com/ssriramteja/tablemeta/internal/resolve"
	"github.com/ssriramteja/tablemeta/internal/tablelist"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tablemeta error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		printUsage()
		return nil
	}

	switch args[1] {
	case "collect":
		return runCollect(args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}
}

func runCollect(args []string) error {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml")
	workers := fs.Int("workers", 0, "Override run.workers")
	timeout := fs.Duration("timeout", 0, "Override run.task_timeout")
	outDir := fs.String("out", "", "Override output.dir")
	verbose := fs.Bool("verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath == "" {
		return fmt.Errorf("missing required flag: --config")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *workers > 0 {
		cfg.Run.Workers = *workers
	}
	if *timeout > 0 {
		cfg.Run.TaskTimeout = config.Duration(*timeout)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return collect(ctx, cfg, log)
}

func collect(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	runID := uuid.NewString()
	started := time.Now()

	tables := append([]string(nil), cfg.Tables...)
	if cfg.TablesFile != "" {
		fromFile, err := tablelist.Read(cfg.TablesFile)
		if err != nil {
			log.Warn("table list file unreadable, continuing without it",
				zap.String("path", cfg.TablesFile),
				zap.Error(err))
		} else {
			tables = append(tables, fromFile...)
		}
	}
	requested := len(tables)
	if len(batch.Dedupe(tables)) == 0 {
		log.Warn("no tables to process", zap.String("namespace", cfg.Namespace))
	}

	client, err := mysql.NewClient(ctx, cfg.Engine.DSN, cfg.Namespace, log)
	if err != nil {
		return err
	}
	defer client.Close()

	resolver := resolve.New(client, log)
	pool := batch.NewPool(resolver, cfg.Run.Workers, cfg.Run.TaskTimeout.Std(), log)

	log.Info("starting collection",
		zap.String("run_id", runID),
		zap.String("namespace", cfg.Namespace),
		zap.Int("tables", requested),
		zap.Int("workers", cfg.Run.Workers),
		zap.Duration("task_timeout", cfg.Run.TaskTimeout.Std()))

	outcomes := pool.Run(ctx, tables)

	rs, err := report.Assemble(report.Records(outcomes))
	if err != nil {
		return err
	}
	summary := report.Summarize(runID, cfg.Namespace, requested, outcomes, started)

	writer := export.NewWriter(export.Options{
		Dir:      cfg.Output.Dir,
		Basename: cfg.Output.Basename,
		Formats:  cfg.Output.Formats,
	}, log)
	paths, err := writer.Write(rs)
	if err != nil {
		return err
	}

	if cfg.Publish.Enabled() {
		publisher, err := export.NewPublisher(cfg.Publish.Command, cfg.Publish.Dest, log)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, paths); err != nil {
			return err
		}
	}

	if cfg.Notify.Enabled() {
		notifier := notify.New(cfg.Notify.Brokers, cfg.Notify.Topic, log)
		if err := notifier.Publish(ctx, summary); err != nil {
			log.Warn("run summary notification failed", zap.Error(err))
		}
		notifier.Close()
	}

	log.Info("collection finished",
		zap.String("run_id", runID),
		zap.Int("collected", summary.TablesCollected),
		zap.Int("populated", summary.Populated),
		zap.Int("degraded", summary.Degraded),
		zap.Int("query_failures", summary.QueryFailures),
		zap.Int("timeouts", summary.Timeouts),
		zap.Duration("took", summary.Duration))

	fmt.Printf("Run %s: collected %d of %d tables (%d fully populated, %d degraded)\n",
		runID, summary.TablesCollected, requested, summary.Populated, summary.Degraded)
	for _, p := range paths {
		fmt.Printf("  wrote %s\n", p)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func printUsage() {
	fmt.Print(`tablemeta - batch table metadata collector

Usage:
  tablemeta collect --config <path>

Commands:
  collect   Collect metadata for the configured tables and write artifacts
  help      Show this help message
`)
}
