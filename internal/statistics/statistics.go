package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/minibalatro/internal/evaluator"
)

// SeedResult represents the outcome of simulating a single seed
type SeedResult struct {
	Seed        int64
	FirstBest   evaluator.Result // best hand from the first pool
	SecondBest  evaluator.Result // best hand from the second pool
	Total       int              // FirstBest.Total + SecondBest.Total
	ClearsRound bool             // Total reached the target score
}

// Statistics tracks totals across simulated seeds
type Statistics struct {
	Seeds  int
	Sum    float64
	Sum2   float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation

	Cleared int // seeds whose total reached the target

	// Category counts over both pools, so they sum to 2*Seeds
	Categories map[evaluator.Category]int

	Best  SeedResult
	Worst SeedResult
}

// Mean returns the arithmetic mean of all totals
func (s *Statistics) Mean() float64 {
	if s.Seeds == 0 {
		return 0
	}
	return s.Sum / float64(s.Seeds)
}

// Variance returns the sample variance of all totals
func (s *Statistics) Variance() float64 {
	if s.Seeds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.Sum2 - float64(s.Seeds)*mean*mean) / float64(s.Seeds-1)
}

// StdDev returns the sample standard deviation of all totals
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Seeds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Seeds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// ClearRate returns the fraction of seeds that reached the target
func (s *Statistics) ClearRate() float64 {
	if s.Seeds == 0 {
		return 0
	}
	return float64(s.Cleared) / float64(s.Seeds)
}

// Add incorporates a new seed result into the statistics
func (s *Statistics) Add(result SeedResult) {
	total := float64(result.Total)
	s.Seeds++
	s.Sum += total
	s.Sum2 += total * total
	s.Values = append(s.Values, total)

	if result.ClearsRound {
		s.Cleared++
	}

	if s.Categories == nil {
		s.Categories = make(map[evaluator.Category]int)
	}
	s.Categories[result.FirstBest.Score.Category]++
	s.Categories[result.SecondBest.Score.Category]++

	if s.Seeds == 1 || result.Total > s.Best.Total {
		s.Best = result
	}
	if s.Seeds == 1 || result.Total < s.Worst.Total {
		s.Worst = result
	}
}

// Median returns the median total
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks the accumulated counters agree with each other
func (s *Statistics) Validate() error {
	if s.Seeds <= 0 {
		return fmt.Errorf("invalid seed count: %d", s.Seeds)
	}

	if len(s.Values) != s.Seeds {
		return fmt.Errorf("values array length (%d) does not match seed count (%d)",
			len(s.Values), s.Seeds)
	}

	if s.Cleared > s.Seeds {
		return fmt.Errorf("cleared seeds (%d) exceeds total seeds (%d)", s.Cleared, s.Seeds)
	}

	hands := 0
	for _, n := range s.Categories {
		hands += n
	}
	if hands != 2*s.Seeds {
		return fmt.Errorf("category total (%d) does not match two hands per seed (%d)", hands, 2*s.Seeds)
	}

	return nil
}
