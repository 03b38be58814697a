package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pitwall/pitwall/app"
	"github.com/pitwall/pitwall/config"
	"github.com/pitwall/pitwall/core/model"
	"github.com/pitwall/pitwall/infra/livetiming"
	"github.com/pitwall/pitwall/infra/logger"
	"github.com/pitwall/pitwall/infra/metrics"
)

var strategyFlags struct {
	year       int
	grandPrix  string
	driver     string
	team       string
	raceLaps   int
	condition  string
	pitLossSec float64
	outputJSON string
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Recommend pit-stop strategies for a target race",
	RunE:  runStrategy,
}

func init() {
	f := strategyCmd.Flags()
	f.IntVar(&strategyFlags.year, "year", 0, "target season year")
	f.StringVar(&strategyFlags.grandPrix, "gp", "", "target grand prix")
	f.StringVar(&strategyFlags.driver, "driver", "", "driver code (e.g. VER)")
	f.StringVar(&strategyFlags.team, "team", "", "team name")
	f.IntVar(&strategyFlags.raceLaps, "race-laps", 0, "planned race lap count")
	f.StringVar(&strategyFlags.condition, "condition", "auto", "race condition: auto, dry, wet or mixed")
	f.Float64Var(&strategyFlags.pitLossSec, "pit-loss-sec", 0, "pit loss in seconds (overrides the configured value, default 21)")
	f.StringVar(&strategyFlags.outputJSON, "output-json", "", "also write the report to this file")
	for _, name := range []string{"year", "gp", "driver", "team", "race-laps"} {
		_ = strategyCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(strategyCmd)
}

func runStrategy(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Logging.Apply()
	logg := logger.New("strategy")

	condition := model.RaceCondition(strategyFlags.condition)
	if !condition.IsValid() {
		return fmt.Errorf("invalid condition %q", strategyFlags.condition)
	}

	sink, err := metrics.NewSink(cfg.Metrics, logg)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	defer metrics.Close(sink)
	if cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusAddr); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}

	provider, err := livetiming.New(cfg.Provider, logger.New("livetiming"))
	if err != nil {
		return fmt.Errorf("timing provider: %w", err)
	}

	req := app.Request{
		Year:      strategyFlags.year,
		GrandPrix: strategyFlags.grandPrix,
		Driver:    strategyFlags.driver,
		Team:      strategyFlags.team,
		RaceLaps:  strategyFlags.raceLaps,
		Condition: condition,
	}
	// Only an explicitly set flag overrides the configured pit loss, so
	// --pit-loss-sec 0 models a race with free stops.
	if cmd.Flags().Changed("pit-loss-sec") {
		req.PitLossSec = &strategyFlags.pitLossSec
	}

	planner := app.New(cfg, provider, sink, logg)
	report, err := planner.Run(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	if strategyFlags.outputJSON != "" {
		if err := os.WriteFile(strategyFlags.outputJSON, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
