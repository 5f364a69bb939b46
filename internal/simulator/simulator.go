package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/minibalatro/internal/deck"
	"github.com/lox/minibalatro/internal/evaluator"
	"github.com/lox/minibalatro/internal/fileutil"
	"github.com/lox/minibalatro/internal/gameid"
	"github.com/lox/minibalatro/internal/randutil"
	"github.com/lox/minibalatro/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Seeds       int
	StartSeed   int64
	FirstPool   int // cards available to the first played hand
	SecondPool  int // cards available to the second played hand
	Workers     int // 0 means one per CPU
	TargetScore int // a seed "clears" when its total reaches this
	Clock       quartz.Clock
	Logger      *log.Logger

	// OnSeed, if set, is called as each seed finishes. With more than one
	// worker it may be called concurrently.
	OnSeed func(statistics.SeedResult)
}

// Simulator finds the best achievable score over many shuffled decks
type Simulator struct {
	config Config
	logger *log.Logger
}

// Report is the outcome of a simulation run
type Report struct {
	ID      string
	Config  Config
	Results []statistics.SeedResult // in seed order
	Stats   *statistics.Statistics
	Elapsed time.Duration
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Simulator{
		config: config,
		logger: config.Logger.WithPrefix("simulator"),
	}
}

// Run simulates every seed in [StartSeed, StartSeed+Seeds)
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	if cfg.Seeds < 1 {
		return nil, fmt.Errorf("seeds must be at least 1, got %d", cfg.Seeds)
	}
	if cfg.FirstPool < evaluator.HandSize || cfg.SecondPool < evaluator.HandSize {
		return nil, fmt.Errorf("pools must hold at least %d cards: %w", evaluator.HandSize, evaluator.ErrNotEnoughCards)
	}
	if cfg.FirstPool+cfg.SecondPool > deck.DeckSize {
		return nil, fmt.Errorf("pools of %d and %d exceed the deck: %w", cfg.FirstPool, cfg.SecondPool, deck.ErrEmptyDeck)
	}

	report := &Report{
		ID:      gameid.Generate(),
		Config:  cfg,
		Results: make([]statistics.SeedResult, cfg.Seeds),
		Stats:   &statistics.Statistics{},
	}
	logger := s.logger.With("run", report.ID)
	logger.Info("Starting simulation",
		"seeds", cfg.Seeds, "start", cfg.StartSeed, "workers", cfg.Workers,
		"first_pool", cfg.FirstPool, "second_pool", cfg.SecondPool)

	start := cfg.Clock.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range cfg.Seeds {
		seed := cfg.StartSeed + int64(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := RunSeed(seed, cfg.FirstPool, cfg.SecondPool, cfg.TargetScore)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			report.Results[i] = result
			logger.Debug("Seed simulated", "seed", seed, "total", result.Total)
			if cfg.OnSeed != nil {
				cfg.OnSeed(result)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range report.Results {
		report.Stats.Add(result)
	}
	if err := report.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report.Elapsed = cfg.Clock.Since(start)
	logger.Info("Simulation complete",
		"mean", report.Stats.Mean(), "cleared", report.Stats.Cleared, "elapsed", report.Elapsed)

	return report, nil
}

// RunSeed shuffles a deck from seed, draws the two pools in turn and finds
// the best hand in each
func RunSeed(seed int64, firstPool, secondPool, target int) (statistics.SeedResult, error) {
	d := deck.NewDeck(randutil.New(seed))

	first, err := bestOfDraw(d, firstPool)
	if err != nil {
		return statistics.SeedResult{}, fmt.Errorf("first pool: %w", err)
	}
	second, err := bestOfDraw(d, secondPool)
	if err != nil {
		return statistics.SeedResult{}, fmt.Errorf("second pool: %w", err)
	}

	total := first.Total + second.Total
	return statistics.SeedResult{
		Seed:        seed,
		FirstBest:   first,
		SecondBest:  second,
		Total:       total,
		ClearsRound: target > 0 && total >= target,
	}, nil
}

func bestOfDraw(d *deck.Stack, n int) (evaluator.Result, error) {
	pool, err := d.DrawN(n)
	if err != nil {
		return evaluator.Result{}, err
	}
	return evaluator.FindBest(pool)
}

// WriteReport writes the report as JSON, replacing filename atomically
func (r *Report) WriteReport(filename string) error {
	return fileutil.WriteJSONAtomic(filename, r.document(), 0o644)
}

type handDocument struct {
	Total    int    `json:"total"`
	Category string `json:"category"`
	Cards    string `json:"cards"`
	Scoring  string `json:"scoring"`
}

type seedDocument struct {
	Seed   int64        `json:"seed"`
	Total  int          `json:"total"`
	Clears bool         `json:"clears_round"`
	First  handDocument `json:"first"`
	Second handDocument `json:"second"`
}

type reportDocument struct {
	ID          string         `json:"id"`
	StartSeed   int64          `json:"start_seed"`
	Seeds       int            `json:"seeds"`
	FirstPool   int            `json:"first_pool"`
	SecondPool  int            `json:"second_pool"`
	TargetScore int            `json:"target_score"`
	ElapsedMS   int64          `json:"elapsed_ms"`
	Mean        float64        `json:"mean"`
	StdDev      float64        `json:"stddev"`
	Median      float64        `json:"median"`
	P05         float64        `json:"p05"`
	P95         float64        `json:"p95"`
	Cleared     int            `json:"cleared"`
	Categories  map[string]int `json:"categories"`
	Results     []seedDocument `json:"results"`
}

func (r *Report) document() reportDocument {
	doc := reportDocument{
		ID:          r.ID,
		StartSeed:   r.Config.StartSeed,
		Seeds:       r.Config.Seeds,
		FirstPool:   r.Config.FirstPool,
		SecondPool:  r.Config.SecondPool,
		TargetScore: r.Config.TargetScore,
		ElapsedMS:   r.Elapsed.Milliseconds(),
		Mean:        r.Stats.Mean(),
		StdDev:      r.Stats.StdDev(),
		Median:      r.Stats.Median(),
		P05:         r.Stats.Percentile(0.05),
		P95:         r.Stats.Percentile(0.95),
		Cleared:     r.Stats.Cleared,
		Categories:  make(map[string]int, len(r.Stats.Categories)),
		Results:     make([]seedDocument, len(r.Results)),
	}
	for c, n := range r.Stats.Categories {
		doc.Categories[c.String()] = n
	}
	for i, res := range r.Results {
		doc.Results[i] = seedDocument{
			Seed:   res.Seed,
			Total:  res.Total,
			Clears: res.ClearsRound,
			First:  handOf(res.FirstBest),
			Second: handOf(res.SecondBest),
		}
	}
	return doc
}

func handOf(res evaluator.Result) handDocument {
	return handDocument{
		Total:    res.Total,
		Category: res.Score.Name(),
		Cards:    deck.FormatCards(res.Cards),
		Scoring:  deck.FormatCards(res.Scoring),
	}
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, report *Report) {
	stats := report.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== SIMULATION %s ===\n", report.ID)
	fmt.Fprintf(w, "Seeds: %d..%d (%d)\n", report.Config.StartSeed, report.Config.StartSeed+int64(stats.Seeds)-1, stats.Seeds)
	fmt.Fprintf(w, "Pools: %d + %d cards\n", report.Config.FirstPool, report.Config.SecondPool)
	fmt.Fprintf(w, "Elapsed: %v\n", report.Elapsed)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.1f\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.1f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.1f\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.1f, %.1f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.0f, P25=%.0f, P75=%.0f, P95=%.0f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Best: seed %d scored %d\n", stats.Best.Seed, stats.Best.Total)
	fmt.Fprintf(w, "Worst: seed %d scored %d\n", stats.Worst.Seed, stats.Worst.Total)
	if report.Config.TargetScore > 0 {
		fmt.Fprintf(w, "Clears %d: %d seeds (%.1f%%)\n",
			report.Config.TargetScore, stats.Cleared, stats.ClearRate()*100)
	}

	fmt.Fprintf(w, "\n=== BEST HAND CATEGORIES ===\n")
	for _, c := range evaluator.Categories() {
		if n := stats.Categories[c]; n > 0 {
			fmt.Fprintf(w, "%-16s %d\n", c.String()+":", n)
		}
	}
}
