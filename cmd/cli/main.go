package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gamestats/domain/catalog"
	"gamestats/internal/analysis"
	"gamestats/internal/dataset"
	"gamestats/internal/inference"
	"gamestats/internal/report"
	"gamestats/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:           "gamestats-cli",
		Short:         "Explore a game catalog: cleaning, aggregates and statistical tests",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dataset, "dataset", "", "Catalog file (.csv or .xlsx); overrides GAMESTATS_DATASET_PATH")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file read before the environment")
	rootCmd.PersistentFlags().BoolVar(&opts.events, "events", false, "Print the processing events of the pipeline run")
	rootCmd.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "Print pipeline metrics on exit")

	rootCmd.AddCommand(
		newSummaryCmd(&opts),
		newFilterCmd(&opts),
		newStatsCmd(&opts),
		newTrendCmd(&opts),
		newGroupsCmd(&opts),
		newReportCmd(&opts),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

type selectionFlags struct {
	genres  []string
	minYear int
	maxYear int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "Genre to include (repeatable); none means all")
	cmd.Flags().IntVar(&f.minYear, "min-year", 0, "Earliest release year, inclusive")
	cmd.Flags().IntVar(&f.maxYear, "max-year", 0, "Latest release year, inclusive")
}

func (f *selectionFlags) criteria() analysis.Criteria {
	return analysis.NewCriteria(f.genres, f.minYear, f.maxYear)
}

func newSummaryCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show cleaning results and the headline numbers of the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			return runSummary(s)
		},
	}
	return cmd
}

func runSummary(s *session) error {
	res := s.result
	summary, err := analysis.Summarize(res.Table)
	if err != nil {
		return err
	}
	lo, hi, err := analysis.YearBounds(res.Table)
	if err != nil {
		return err
	}

	fmt.Printf("📦 DATASET %s\n", res.Key.Path)
	fmt.Printf("Run: %s\n", res.RunID)
	fmt.Printf("Raw rows: %d, duplicates removed: %d, undated rows dropped: %d\n",
		res.RawRows, res.DuplicatesRemoved, res.DroppedDates)
	if len(res.ImputedColumns) > 0 {
		fmt.Printf("Imputed columns: %s\n", strings.Join(res.ImputedColumns, ", "))
	}
	fmt.Printf("Price ceiling: %.2f (%d prices clipped)\n", res.PriceCeiling, res.ClippedPrices)

	fmt.Printf("\n📊 CATALOG\n")
	fmt.Printf("Games: %d\n", summary.Games)
	fmt.Printf("Total reviews: %s\n", dataset.FormatCompact(summary.TotalReviews))
	fmt.Printf("Free games: %d\n", summary.FreeGames)
	fmt.Printf("Release years: %d-%d\n", lo, hi)
	fmt.Printf("Genres: %s\n", strings.Join(analysis.DistinctGenres(res.Table), ", "))
	return nil
}

func newFilterCmd(opts *globalOptions) *cobra.Command {
	var sel selectionFlags
	var limit int

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List the games matching a genre and year selection",
		Long: `List the games matching a genre and year selection.

A game matches when any of its genres is selected.

Example: gamestats-cli filter --genre RPG --genre Strategy --min-year 2015 --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			return runFilter(s, sel.criteria(), limit)
		},
	}

	sel.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 10, "Rows to print")
	return cmd
}

func runFilter(s *session, criteria analysis.Criteria, limit int) error {
	view := analysis.Filter(s.result.Table, criteria)
	fmt.Printf("🔎 %d of %d games match %s\n", view.Len(), s.result.Table.Len(), criteria)
	if view.IsEmpty() {
		return nil
	}

	recs := view.Records()
	if limit < len(recs) {
		recs = recs[:limit]
	}
	for _, rec := range recs {
		fmt.Printf("- %s (%d) $%.2f [%s] %s owners, %.0f%% positive of %s\n",
			rec.Name, rec.ReleaseYear, rec.Price, rec.Genres, rec.EstimatedOwners,
			rec.PositivePercentage, dataset.FormatCompact(rec.TotalReviews))
	}
	if view.Len() > limit {
		fmt.Printf("  ... and %d more\n", view.Len()-limit)
	}
	return nil
}

func newStatsCmd(opts *globalOptions) *cobra.Command {
	var sel selectionFlags
	var metric, split, interval string
	var level int
	var threshold float64

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Confidence interval, two-sample test and correlations for a selection",
		Long: `Run the statistical procedures on a selection.

The two-sample test splits games at the median of --split unless --threshold is given.

Example: gamestats-cli stats --genre Indie --metric Positive --split Achievements --level 99`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			if !cmd.Flags().Changed("metric") {
				metric = string(s.config.Metric())
			}
			if !cmd.Flags().Changed("split") {
				split = string(s.config.Split())
			}
			if !cmd.Flags().Changed("interval") {
				interval = string(s.config.Interval())
			}
			if !cmd.Flags().Changed("level") {
				level = s.config.Analysis.ConfidenceLevel
			}
			var at *float64
			if cmd.Flags().Changed("threshold") {
				at = &threshold
			}
			return runStats(cmd.OutOrStdout(), s.result.Table, sel.criteria(), statsColumns{
				metric:       catalog.Column(metric),
				split:        catalog.Column(split),
				interval:     catalog.Column(interval),
				correlations: s.config.Correlations(),
			}, level, at)
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&metric, "metric", "", "Metric column (default from config)")
	cmd.Flags().StringVar(&split, "split", "", "Split column of the two-sample test (default from config)")
	cmd.Flags().StringVar(&interval, "interval", "", "Column of the confidence interval (default from config)")
	cmd.Flags().IntVar(&level, "level", 0, "Confidence level: 70|80|90|95|99 (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Split threshold (default: median of the split column)")
	return cmd
}

type statsColumns struct {
	metric       catalog.Column
	split        catalog.Column
	interval     catalog.Column
	correlations []catalog.Column
}

// runStats prints every procedure it can compute; a selection too small for
// one procedure is reported on its line and the others still run.
func runStats(w io.Writer, pop analysis.Population, criteria analysis.Criteria, cols statsColumns, level int, threshold *float64) error {
	view := analysis.Filter(pop, criteria)
	fmt.Fprintf(w, "🔬 %d games, %s\n\n", view.Len(), criteria)

	ci, err := inference.ConfidenceInterval(view, cols.interval, level)
	switch {
	case err == nil:
		fmt.Fprintf(w, "Mean: %s\n", ci)
	case isNoData(err):
		fmt.Fprintf(w, "Mean: %s\n", describe(err))
	default:
		return err
	}

	var test *inference.TestResult
	if threshold != nil {
		test, err = inference.TwoSampleTest(view, cols.metric, cols.split, *threshold)
	} else {
		test, err = inference.TwoSampleTestAtMedian(view, cols.metric, cols.split)
	}
	switch {
	case err == nil:
		fmt.Fprintf(w, "Welch test: %s\n", test)
		fmt.Fprintf(w, "  %s mean %.2f vs %s mean %.2f\n", test.GroupA, test.MeanA, test.GroupB, test.MeanB)
	case isNoData(err):
		fmt.Fprintf(w, "Welch test: %s\n", describe(err))
	default:
		return err
	}

	corr, err := inference.CorrelationMatrix(view, cols.correlations)
	switch {
	case err == nil:
		fmt.Fprintf(w, "\nCorrelations:\n")
		for _, c := range corr {
			fmt.Fprintf(w, "  %s\n", c)
		}
	case isNoData(err):
		fmt.Fprintf(w, "\nCorrelations: %s\n", describe(err))
	default:
		return err
	}
	return nil
}

func newTrendCmd(opts *globalOptions) *cobra.Command {
	var sel selectionFlags
	var metric string
	var window int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Yearly mean of a metric with a moving average",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			if !cmd.Flags().Changed("metric") {
				metric = string(s.config.Trend())
			}
			if !cmd.Flags().Changed("window") {
				window = s.config.Analysis.Window
			}
			return runTrend(s, sel.criteria(), catalog.Column(metric), window)
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&metric, "metric", "", "Metric column (default from config)")
	cmd.Flags().IntVar(&window, "window", 0, "Moving average window: 1|3|5|7 (default from config)")
	return cmd
}

func runTrend(s *session, criteria analysis.Criteria, metric catalog.Column, window int) error {
	points, err := analysis.YearlyTrend(analysis.Filter(s.result.Table, criteria), metric, window)
	if err != nil {
		return err
	}
	fmt.Printf("📈 %s by release year, %d-year moving average\n", metric, window)
	for _, p := range points {
		fmt.Printf("%d  n=%-5d mean=%10.2f  avg=%10.2f\n", p.Year, p.Count, p.Mean, p.MovingAverage)
	}
	return nil
}

func newGroupsCmd(opts *globalOptions) *cobra.Command {
	var sel selectionFlags
	var by, metric, reduce string
	var top int
	var box bool

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Aggregate a metric by genre, price bucket, release year or owner range",
		Long: `Aggregate a metric over groups of a selection.

--by is one of genre|price_bucket|release_year|owner_range and --reduce one of
mean|sum|count. --top ranks groups by mean; --box prints distribution summaries.

Example: gamestats-cli groups --by genre --metric "Average playtime forever" --top 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()

			if !cmd.Flags().Changed("metric") {
				metric = string(s.config.Metric())
			}
			view := analysis.Filter(s.result.Table, sel.criteria())
			dim := analysis.Dimension(by)
			col := catalog.Column(metric)

			switch {
			case box:
				return runBoxes(view, dim, col)
			case top > 0:
				res, err := analysis.TopNByMean(view, dim, col, top)
				if err != nil {
					return err
				}
				printGroups(res)
				return nil
			default:
				res, err := analysis.GroupBy(view, dim, col, analysis.Reduction(reduce))
				if err != nil {
					return err
				}
				printGroups(res)
				return nil
			}
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&by, "by", string(analysis.ByGenre), "Grouping dimension")
	cmd.Flags().StringVar(&metric, "metric", "", "Metric column (default from config)")
	cmd.Flags().StringVar(&reduce, "reduce", string(analysis.Mean), "Reduction: mean|sum|count")
	cmd.Flags().IntVar(&top, "top", 0, "Keep the N groups with the highest mean")
	cmd.Flags().BoolVar(&box, "box", false, "Print quartiles and outliers per group")
	return cmd
}

func printGroups(res *analysis.AggregateResult) {
	fmt.Printf("📊 %s of %s by %s\n", res.Reduction, res.Metric, res.Dimension)
	for _, g := range res.Groups {
		fmt.Printf("%-28s n=%-6d %12.2f\n", g.Key, g.Count, g.Value)
	}
}

func runBoxes(view *analysis.FilteredView, dim analysis.Dimension, metric catalog.Column) error {
	boxes, err := analysis.Distribution(view, dim, metric)
	if err != nil {
		return err
	}
	fmt.Printf("📦 %s by %s\n", metric, dim)
	for _, b := range boxes {
		fmt.Printf("%-28s n=%-6d min=%.2f q1=%.2f median=%.2f q3=%.2f max=%.2f outliers=%d\n",
			b.Key, b.N, b.Min, b.Q1, b.Median, b.Q3, b.Max, b.Outliers)
	}
	return nil
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var sel selectionFlags
	var asHTML bool
	var out string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a Markdown or HTML report of a selection",
		Long: `Write a report with aggregates, trend and statistical tests of a selection.

Example: gamestats-cli report --genre Action --html --out action.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.close()
			return runReport(s, sel.criteria(), asHTML, out)
		},
	}

	sel.register(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML instead of Markdown")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}

func runReport(s *session, criteria analysis.Criteria, asHTML bool, out string) error {
	r, err := report.Build(analysis.Filter(s.result.Table, criteria), report.Options{
		Title:        "Game Catalog Report",
		Metric:       s.config.Metric(),
		Split:        s.config.Split(),
		Interval:     s.config.Interval(),
		Trend:        s.config.Trend(),
		GenreMetric:  s.config.GenreMetric(),
		Level:        s.config.Analysis.ConfidenceLevel,
		Window:       s.config.Analysis.Window,
		TopN:         s.config.Analysis.TopN,
		Correlations: s.config.Correlations(),
	})
	if err != nil {
		return err
	}

	body := []byte(r.Markdown())
	if asHTML {
		body = r.HTML()
	}
	if out == "" {
		_, err = os.Stdout.Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("✅ report written to %s\n", out)
	return nil
}

func newGenerateCmd() *cobra.Command {
	config := testkit.DefaultCatalogConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic catalog CSV for demos and tests",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := testkit.NewCatalogGenerator(config).Generate()

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := testkit.WriteCSV(w, table); err != nil {
				return fmt.Errorf("failed to write catalog: %w", err)
			}
			if out != "" {
				fmt.Printf("✅ %d rows written to %s\n", table.Len(), out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&config.GameCount, "games", config.GameCount, "Number of games")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed for deterministic output")
	cmd.Flags().IntVar(&config.StartYear, "start-year", config.StartYear, "First release year")
	cmd.Flags().IntVar(&config.EndYear, "end-year", config.EndYear, "Last release year")
	cmd.Flags().Float64Var(&config.MissingRate, "missing-rate", config.MissingRate, "Chance of an empty required cell")
	cmd.Flags().Float64Var(&config.DuplicateRate, "duplicate-rate", config.DuplicateRate, "Chance of a repeated row")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default stdout)")
	return cmd
}
