// SectorSentinel compares six national strategic technology sectors on the
// Tokyo market against each other and the Nikkei 225.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SectorSentinel/internal/collector"
	"SectorSentinel/internal/config"
	"SectorSentinel/internal/dashboard"
	"SectorSentinel/internal/logger"
	"SectorSentinel/internal/notifier"
	"SectorSentinel/internal/recorder"
	"SectorSentinel/internal/scheduler"
)

// Set via -ldflags.
var version = "dev"

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sentinel",
	Short:         "Sector performance dashboard and snapshot collector",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
		if f, _ := cmd.Flags().GetString("config"); f != "" {
			path = f
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: configs/config.yaml)")

	dashboardCmd.Flags().Bool("json", false, "print the view model as JSON instead of the report")
	dashboardCmd.Flags().Bool("serve", false, "answer Telegram commands until interrupted")
	collectCmd.Flags().Bool("once", false, "collect one snapshot and exit")

	rootCmd.AddCommand(dashboardCmd, collectCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "SectorSentinel %s\n", version)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Load the snapshot once and render the sector view",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateDashboard(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		log := logger.Component("main")

		var src collector.Source
		if cfg.Dashboard.LocalFile != "" {
			src = collector.NewFileSource(cfg.Dashboard.LocalFile, "")
		} else {
			src = collector.NewHTTPSource(cfg.Dashboard.BaseURL, cfg.Dashboard.PrimaryPath, cfg.Dashboard.FallbackPath, cfg.Proxy)
		}
		log.WithField("source", src.Name()).Info("loading snapshot")

		d := dashboard.New(src, cfg.Dashboard.EventDate, cfg.Dashboard.EventLabel)
		// A failed load is logged inside and leaves the defaults on screen.
		_ = d.Load(context.Background())
		if !d.Loaded() {
			log.Warn("no snapshot available, showing defaults")
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(d.View()); err != nil {
				return fmt.Errorf("encode view: %w", err)
			}
		} else {
			fmt.Fprintln(out, d.Report())
		}

		if !cfg.TelegramEnabled() {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		if err := tn.SendWithRetry(ctx, d.Report(), 3); err != nil {
			log.WithError(err).Error("send report")
		}
		if serve, _ := cmd.Flags().GetBool("serve"); serve {
			log.Info("Telegram polling started, press Ctrl+C to stop")
			tn.StartPolling(ctx, d.HandleCommand)
		}
		return nil
	},
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Build stock_data.json from Yahoo Finance, now or on the cron schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateCollector(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		log := logger.Component("main")

		fetcher := collector.NewYahooFetcher(cfg.Proxy)
		log.WithField("fetcher", fetcher.Name()).Info("data source ready")
		col := collector.NewCollector(fetcher, cfg.Collector.HistoryRange, cfg.Collector.RequestsPerSecond)

		var rec recorder.Recorder
		if cfg.Database.SQLitePath != "" {
			sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				log.WithError(err).Warn("init sqlite recorder failed, using noop")
				rec = recorder.NewNoopRecorder()
			} else {
				rec = sr
			}
		} else {
			rec = recorder.NewNoopRecorder()
		}
		defer rec.Close()

		var tn *notifier.TelegramNotifier
		if cfg.TelegramEnabled() {
			tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(ctx, col, rec, tn, cfg.Collector.OutputFile)
		sched.EventDate = cfg.Dashboard.EventDate
		sched.EventLabel = cfg.Dashboard.EventLabel

		if once, _ := cmd.Flags().GetBool("once"); once {
			return sched.RunNow()
		}

		if err := sched.Register(cfg.Collector.Cron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if cfg.Collector.RunOnStart {
			log.Info("run_on_start enabled, collecting now")
			go func() {
				if err := sched.RunNow(); err != nil {
					log.WithError(err).Error("initial collect failed")
				}
			}()
		}

		log.WithField("cron", cfg.Collector.Cron).Info("collector running, press Ctrl+C to stop")
		<-ctx.Done()
		log.Info("shutdown signal received, stopping")
		return nil
	},
}
