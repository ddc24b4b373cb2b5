// agiscrape scrapes flowagility.com events and participants into dated
// CSV datasets, then reconciles them into the processed results file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/JuanEscos/AgilEventosProxScrape/internal/config"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/flow"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/process"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/report"
	"github.com/JuanEscos/AgilEventosProxScrape/internal/storage"
)

var (
	flagConfig  string
	flagOutDir  string
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agiscrape",
		Short: "Scrape and process flowagility.com agility events",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&flagOutDir, "out-dir", "", "Output directory (overrides config)")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	root.AddCommand(newScrapeCmd(), newProcessCmd(), newAllCmd())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagOutDir != "" {
		cfg.OutDir = flagOutDir
	}
	return cfg, nil
}

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Extract events and participants into dated CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runScrape(cmd, cfg)
		},
	}
}

func newProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Reconcile the latest scraped CSVs into the processed dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runProcess(cmd, cfg)
		},
	}
}

func newAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Scrape, then process",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := runScrape(cmd, cfg); err != nil {
				return err
			}
			return runProcess(cmd, cfg)
		},
	}
}

func runScrape(cmd *cobra.Command, cfg config.Config) error {
	sc, err := flow.NewScraper(cfg)
	if err != nil {
		return err
	}
	events, participants, err := sc.Run(cmd.Context())
	if err != nil {
		return err
	}

	stamp := flow.ScrapeTimestamp(time.Now())
	eventsPath := storage.NextFreePath(filepath.Join(cfg.OutDir, fmt.Sprintf("events_%s.csv", stamp)))
	if err := storage.WriteTable(eventsPath, events); err != nil {
		return err
	}
	log.Info("events written", "path", eventsPath, "rows", len(events.Rows))

	partsPath := storage.NextFreePath(filepath.Join(cfg.OutDir, fmt.Sprintf("participants_%s.csv", stamp)))
	if err := storage.WriteTable(partsPath, participants); err != nil {
		return err
	}
	log.Info("participants written", "path", partsPath, "rows", len(participants.Rows))
	return nil
}

func runProcess(cmd *cobra.Command, cfg config.Config) error {
	dirs := []string{cfg.OutDir, "."}
	stamp := flow.ScrapeTimestamp(time.Now())

	eventsPath, err := storage.ResolveLatest(dirs, fmt.Sprintf("events_%s*.csv", stamp), "events_*.csv")
	if err != nil {
		return fmt.Errorf("locating events CSV: %w", err)
	}
	partsPath, err := storage.ResolveLatest(dirs, fmt.Sprintf("participants_%s*.csv", stamp), "participants_*.csv")
	if err != nil {
		return fmt.Errorf("locating participants CSV: %w", err)
	}
	log.Info("processing", "events", eventsPath, "participants", partsPath)

	events, err := storage.ReadTable(eventsPath)
	if err != nil {
		return err
	}
	participants, err := storage.ReadTable(partsPath)
	if err != nil {
		return err
	}

	processed, err := process.Reconcile(events, participants)
	if err != nil {
		return err
	}

	outPath := storage.NextFreePath(filepath.Join(cfg.OutDir, fmt.Sprintf("participantes_procesado_%s.csv", stamp)))
	if err := storage.WriteTable(outPath, processed); err != nil {
		return err
	}
	log.Info("processed dataset written", "path", outPath, "rows", len(processed.Rows))

	report.Upcoming(cmd.OutOrStdout(), events, time.Now(), report.DefaultHorizonDays)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
