package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Buu205/Vietnam-stock-sub000/internal/application/pipeline"
	"github.com/Buu205/Vietnam-stock-sub000/internal/cache"
	"github.com/Buu205/Vietnam-stock-sub000/internal/config"
	"github.com/Buu205/Vietnam-stock-sub000/internal/datasource"
	"github.com/Buu205/Vietnam-stock-sub000/internal/domain"
	"github.com/Buu205/Vietnam-stock-sub000/internal/metrics"
	"github.com/Buu205/Vietnam-stock-sub000/internal/persistence"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Score the candidate universe and print the ranked report",
		Long: `Load candidate features from a JSONL file or the feature API, score
every symbol, and print the qualified candidates ranked by composite score.`,
		RunE: runScan,
	}

	cmd.Flags().String("file", "", "JSONL candidate file (overrides the configured source)")
	cmd.Flags().String("date", "", "Trading date for API fetch, YYYY-MM-DD (default today)")
	cmd.Flags().Int("top-n", 0, "Override the configured result cap")
	cmd.Flags().Bool("json", false, "Emit the full report as JSON instead of a table")
	cmd.Flags().Bool("all", false, "Print every ranked candidate, not just the qualified set")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		cfg.Source.File = file
	}
	if topN, _ := cmd.Flags().GetInt("top-n"); topN > 0 {
		cfg.Scan.TopN = topN
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mets := metrics.NewRegistry()

	dateFlag, _ := cmd.Flags().GetString("date")
	candidates, skipped, err := loadCandidates(ctx, cfg.Source, dateFlag)
	if err != nil {
		return err
	}
	if skipped > 0 {
		mets.CandidatesSkipped.Add(float64(skipped))
		log.Warn().Int("skipped", skipped).Msg("invalid candidate rows dropped")
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no valid candidates to score")
	}

	report, err := pipeline.NewScanner(cfg.Scan, mets).Run(ctx, candidates)
	if err != nil {
		return err
	}

	if counters, err := mets.Snapshot(); err == nil {
		log.Debug().Interface("counters", counters).Msg("scan run counters")
	}

	if err := publishReport(ctx, cfg, report); err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	showAll, _ := cmd.Flags().GetBool("all")
	printReport(report, showAll)
	return nil
}

func loadCandidates(ctx context.Context, src config.SourceConfig, dateFlag string) ([]domain.SignalCandidate, int, error) {
	if src.File != "" {
		return datasource.LoadCandidatesFile(src.File)
	}
	if src.URL == "" {
		return nil, 0, fmt.Errorf("no candidate source: set source.file or source.url")
	}

	date := time.Now()
	if dateFlag != "" {
		var err error
		date, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return nil, 0, fmt.Errorf("parse --date %q: %w", dateFlag, err)
		}
	}
	return datasource.NewClient(src).FetchCandidates(ctx, date)
}

// publishReport pushes the finished report to the optional sinks. Postgres
// keeps history, Redis feeds the serve endpoint. A sink failure aborts the
// run so a cron'd scan surfaces it.
func publishReport(ctx context.Context, cfg config.Config, report *pipeline.Report) error {
	if cfg.Postgres.Enabled {
		store, err := persistence.Open(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Migrate(ctx); err != nil {
			return err
		}
		if err := store.SaveReport(ctx, report); err != nil {
			return err
		}
		log.Info().Str("run_id", report.RunID).Msg("report persisted")
	}

	if cfg.Redis.Enabled {
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		if err := rc.Store(ctx, report); err != nil {
			return err
		}
		log.Info().Str("run_id", report.RunID).Msg("report cached")
	}
	return nil
}

func printReport(report *pipeline.Report, showAll bool) {
	rows := report.Qualified
	heading := "Qualified candidates"
	if showAll {
		rows = report.Ranked
		heading = "Ranked candidates"
	}

	fmt.Printf("%s - run %s (%d scored in %s)\n\n", heading, report.RunID, report.Total, report.Duration)
	if len(rows) == 0 {
		fmt.Println("none passed the scan policy")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSYMBOL\tSCORE\tQUALITY\tDIRECTION\tACTION")
	for i, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1, r.Symbol, r.TotalScore, r.Quality, r.Direction, r.ActionLabel)
	}
	w.Flush()
}
