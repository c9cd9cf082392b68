package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hupe1980/sfatrie"
	"github.com/hupe1980/sfatrie/index"
	"github.com/hupe1980/sfatrie/index/flat"
	"github.com/hupe1980/sfatrie/testutil"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var benchCfg = DefaultConfig()

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Build an index over random walks and verify it against a full scan",
	Long: `Generate a seeded random-walk workload, build a trie index over it and
answer every query twice: with the trie and with an exhaustive scan.

Scenarios:
  whole        every series is one unit; k-NN distances must agree
  subsequence  every window of one long series is a unit; k-NN must agree
  range        range query at epsilon-factor x 1-NN distance; counts must agree

Example:
  sfatrie bench --scenario subsequence --raw-length 100000 --window 256
  sfatrie bench --series 2000 --leaf-threshold 50 --transform sax`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	f := benchCmd.Flags()
	f.StringVar(&benchCfg.Scenario, "scenario", benchCfg.Scenario, "Scenario (whole, subsequence, range)")
	f.Int64Var(&benchCfg.Seed, "seed", benchCfg.Seed, "Random seed")
	f.IntVar(&benchCfg.Series, "series", benchCfg.Series, "Number of series (whole, range)")
	f.IntVar(&benchCfg.Length, "length", benchCfg.Length, "Series length (whole, range)")
	f.IntVar(&benchCfg.RawLength, "raw-length", benchCfg.RawLength, "Length of the long series (subsequence)")
	f.IntVar(&benchCfg.Window, "window", benchCfg.Window, "Window length (subsequence)")
	f.IntVar(&benchCfg.WordLength, "word-length", benchCfg.WordLength, "Symbols per word")
	f.IntVar(&benchCfg.AlphabetSize, "alphabet-size", benchCfg.AlphabetSize, "Symbols per position")
	f.IntVar(&benchCfg.LeafThreshold, "leaf-threshold", benchCfg.LeafThreshold, "Entries per leaf before it splits")
	f.StringVar(&benchCfg.Transform, "transform", benchCfg.Transform, "Symbolic transform (sfa, sax)")
	f.IntVar(&benchCfg.Queries, "queries", benchCfg.Queries, "Number of random queries")
	f.IntVar(&benchCfg.K, "k", benchCfg.K, "Neighbors per query")
	f.Float64Var(&benchCfg.Tolerance, "tolerance", benchCfg.Tolerance, "Allowed distance difference to the full scan")
	f.Float64Var(&benchCfg.EpsilonFactor, "epsilon-factor", benchCfg.EpsilonFactor, "Range radius as a multiple of the 1-NN distance")
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg := benchCfg
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath, cfg); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}

	report, err := runBenchmark(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	report.Print(cmd.OutOrStdout())
	if !report.Passed() {
		return fmt.Errorf("%s: trie disagrees with the full scan", cfg.Scenario)
	}
	return nil
}

// Report summarizes a benchmark run.
type Report struct {
	Config    Config
	Stats     sfatrie.Stats
	BuildTime time.Duration

	SearchTime       time.Duration
	ScanTime         time.Duration
	ExaminedFraction float64 // mean fraction of entries whose exact distance was computed
	MaxDistanceError float64
	Mismatches       int // queries whose answer differs from the full scan
}

// Passed reports whether every query agreed with the full scan.
func (r *Report) Passed() bool { return r.Mismatches == 0 }

// Print writes the report as an aligned table.
func (r *Report) Print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "scenario\t%s\n", r.Config.Scenario)
	fmt.Fprintf(tw, "index\t%s\n", r.Stats)
	fmt.Fprintf(tw, "build\t%s\n", r.BuildTime.Round(time.Millisecond))
	fmt.Fprintf(tw, "queries\t%d (k=%d)\n", r.Config.Queries, r.Config.K)
	fmt.Fprintf(tw, "trie search\t%s\n", r.SearchTime.Round(time.Microsecond))
	fmt.Fprintf(tw, "full scan\t%s\n", r.ScanTime.Round(time.Microsecond))
	fmt.Fprintf(tw, "examined\t%.2f%%\n", 100*r.ExaminedFraction)
	fmt.Fprintf(tw, "max distance error\t%.6f\n", r.MaxDistanceError)
	fmt.Fprintf(tw, "mismatches\t%d\n", r.Mismatches)
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(tw, "result\t%s\n", status)
	_ = tw.Flush()
}

func runBenchmark(ctx context.Context, cfg Config, logger *sfatrie.Logger) (*Report, error) {
	rng := testutil.NewRNG(cfg.Seed)

	opts := []sfatrie.Option{
		sfatrie.WithWordLength(cfg.WordLength),
		sfatrie.WithAlphabetSize(cfg.AlphabetSize),
		sfatrie.WithLeafThreshold(cfg.LeafThreshold),
		sfatrie.WithLogger(logger),
	}
	if strings.EqualFold(cfg.Transform, "sax") {
		opts = append(opts, sfatrie.WithSAX())
	}

	var (
		ix   *sfatrie.Index
		src  *index.Source
		unit int
		err  error
	)

	start := time.Now()
	switch cfg.Scenario {
	case ScenarioSubsequence:
		raw := rng.RandomWalk(cfg.RawLength)
		unit = cfg.Window
		if ix, err = sfatrie.BuildSubsequenceMatching(ctx, raw, cfg.Window, opts...); err != nil {
			return nil, err
		}
		src, err = index.NewSubsequenceSource(raw, cfg.Window)
	default:
		data := rng.RandomWalks(cfg.Series, cfg.Length)
		unit = cfg.Length
		if ix, err = sfatrie.BuildWholeMatching(ctx, data, opts...); err != nil {
			return nil, err
		}
		src, err = index.NewWholeSource(data)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		Config:    cfg,
		Stats:     ix.Stats(),
		BuildTime: time.Since(start),
	}

	queries := rng.RandomWalks(cfg.Queries, unit)

	start = time.Now()
	truth, err := groundTruth(ctx, src, queries, cfg.K)
	if err != nil {
		return nil, err
	}
	report.ScanTime = time.Since(start)

	ix.ResetIOCosts()
	for i, q := range queries {
		t0 := time.Now()
		matches, costs, err := ix.KNN(ctx, q, cfg.K)
		if err != nil {
			return nil, err
		}
		report.SearchTime += time.Since(t0)
		report.ExaminedFraction += float64(costs.EntriesExamined) / float64(max(1, ix.Len()))

		if !agree(truth[i], matches, cfg.Tolerance, &report.MaxDistanceError) {
			report.Mismatches++
			continue
		}

		if cfg.Scenario == ScenarioRange && len(matches) > 0 {
			eps := cfg.EpsilonFactor * matches[0].Distance
			ids, _, err := ix.Range(ctx, q, eps)
			if err != nil {
				return nil, err
			}
			want, err := truthRange(src, q, eps)
			if err != nil {
				return nil, err
			}
			if ids.GetCardinality() != want {
				report.Mismatches++
			}
		}
	}
	report.ExaminedFraction /= float64(len(queries))

	return report, nil
}

// groundTruth answers every query by full scan, one query per goroutine.
func groundTruth(ctx context.Context, src *index.Source, queries [][]float64, k int) ([][]index.Match, error) {
	scan, err := flat.New(src, func(o *flat.Options) { o.Shards = 1 })
	if err != nil {
		return nil, err
	}

	truth := make([][]index.Match, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, _, err := scan.SearchKNN(q, k)
			truth[i] = matches
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return truth, nil
}

func truthRange(src *index.Source, query []float64, epsilon float64) (uint64, error) {
	scan, err := flat.New(src)
	if err != nil {
		return 0, err
	}
	ids, _, err := scan.SearchRange(query, epsilon)
	if err != nil {
		return 0, err
	}
	return ids.GetCardinality(), nil
}

// agree compares two answers rank by rank and tracks the largest distance error.
func agree(want, got []index.Match, tolerance float64, maxErr *float64) bool {
	if len(want) != len(got) {
		return false
	}
	ok := true
	for i := range want {
		diff := math.Abs(want[i].Distance - got[i].Distance)
		*maxErr = max(*maxErr, diff)
		if diff > tolerance {
			ok = false
		}
	}
	return ok
}
