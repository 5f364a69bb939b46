package evaluator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/minibalatro/internal/deck"
)

// HandSize is the size of every subset the search evaluates
const HandSize = 5

// ErrNotEnoughCards is returned when searching fewer than HandSize cards
var ErrNotEnoughCards = errors.New("need at least 5 cards to search")

// Result is the best five-card subset found by a search
type Result struct {
	Total   int
	Cards   []*deck.Card // the five cards, in input order
	Scoring []*deck.Card // the cards that scored
	Score   Score
}

// Combinations calls fn with every k-element index subset of [0,n) in
// lexicographic order. The slice passed to fn is reused between calls.
// Enumeration stops early when fn returns false.
func Combinations(n, k int, fn func(idx []int) bool) {
	if k < 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !fn(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// Binomial returns C(n, k)
func Binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}

// FindBest scores every five-card subset of cards and returns the one with
// the highest total. Ties go to the subset enumerated first.
func FindBest(cards []*deck.Card) (Result, error) {
	if len(cards) < HandSize {
		return Result{}, fmt.Errorf("%w: got %d", ErrNotEnoughCards, len(cards))
	}

	var best Result
	var err error
	hand := make([]*deck.Card, HandSize)
	Combinations(len(cards), HandSize, func(idx []int) bool {
		for i, j := range idx {
			hand[i] = cards[j]
		}
		err = consider(&best, hand)
		return err == nil
	})
	if err != nil {
		return Result{}, err
	}
	return best, nil
}

// FindBestParallel returns the same result as FindBest, splitting the
// subsets by their first card across up to workers goroutines.
func FindBestParallel(ctx context.Context, cards []*deck.Card, workers int) (Result, error) {
	if len(cards) < HandSize {
		return Result{}, fmt.Errorf("%w: got %d", ErrNotEnoughCards, len(cards))
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Subsets whose first index is i all come before those starting at i+1,
	// so merging partitions in index order keeps first-seen-wins.
	partitions := len(cards) - HandSize + 1
	results := make([]Result, partitions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for first := range partitions {
		g.Go(func() error {
			best, err := searchFrom(ctx, cards, first)
			if err != nil {
				return err
			}
			results[first] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var best Result
	for _, r := range results {
		if r.Total > best.Total {
			best = r
		}
	}
	return best, nil
}

// searchFrom evaluates every subset whose lowest index is first
func searchFrom(ctx context.Context, cards []*deck.Card, first int) (Result, error) {
	tail := cards[first+1:]
	hand := make([]*deck.Card, HandSize)
	hand[0] = cards[first]

	var best Result
	var err error
	Combinations(len(tail), HandSize-1, func(idx []int) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		for i, j := range idx {
			hand[i+1] = tail[j]
		}
		err = consider(&best, hand)
		return err == nil
	})
	return best, err
}

// consider replaces best when hand scores strictly higher
func consider(best *Result, hand []*deck.Card) error {
	score, scoring, err := Evaluate(hand)
	if err != nil {
		return err
	}
	if total := score.Total(); total > best.Total {
		*best = Result{
			Total:   total,
			Cards:   append([]*deck.Card(nil), hand...),
			Scoring: scoring,
			Score:   score,
		}
	}
	return nil
}
