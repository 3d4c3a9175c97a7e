// Package census enumerates every five-card hand and tallies how the
// evaluator ranks them, checking the totals against the known counts for a
// 52-card deck.
package census

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/handeval/poker"
)

// TotalHands is C(52,5).
const TotalHands = 2598960

// ExpectedCounts is the number of five-card hands in each category, indexed
// by poker.Category.
var ExpectedCounts = [poker.NumCategories]int{
	poker.StraightFlush: 40,
	poker.FourOfAKind:   624,
	poker.FullHouse:     3744,
	poker.Flush:         5108,
	poker.Straight:      10200,
	poker.ThreeOfAKind:  54912,
	poker.TwoPair:       123552,
	poker.OnePair:       1098240,
	poker.HighCard:      1302540,
}

// ErrMismatch is returned by Result.Check when a tally differs from the
// expected value.
var ErrMismatch = errors.New("census mismatch")

// Result is the outcome of a full enumeration.
type Result struct {
	Hands   int
	Counts  [poker.NumCategories]int
	Classes int // distinct hand ranks observed
	Best    poker.HandRank
	Worst   poker.HandRank
	Elapsed time.Duration
}

// Check compares the tallies with the known deck totals.
func (r *Result) Check() error {
	if r.Hands != TotalHands {
		return fmt.Errorf("%w: %d hands, want %d", ErrMismatch, r.Hands, TotalHands)
	}
	for cat, want := range ExpectedCounts {
		if got := r.Counts[cat]; got != want {
			return fmt.Errorf("%w: %s has %d hands, want %d", ErrMismatch, poker.Category(cat), got, want)
		}
	}
	if r.Classes != poker.NumHandRanks {
		return fmt.Errorf("%w: %d distinct ranks, want %d", ErrMismatch, r.Classes, poker.NumHandRanks)
	}
	if r.Best != poker.BestHand || r.Worst != poker.WorstHand {
		return fmt.Errorf("%w: ranks span [%d,%d], want [%d,%d]", ErrMismatch, r.Best, r.Worst, poker.BestHand, poker.WorstHand)
	}
	return nil
}

// Census runs the enumeration across a fixed number of workers.
type Census struct {
	eval    *poker.Evaluator
	logger  *log.Logger
	workers int
	clock   quartz.Clock
}

// Option configures a Census.
type Option func(*Census)

// WithWorkers sets the number of goroutines used.
func WithWorkers(n int) Option {
	return func(c *Census) {
		c.workers = n
	}
}

// WithClock replaces the wall clock used to time the run.
func WithClock(clock quartz.Clock) Option {
	return func(c *Census) {
		c.clock = clock
	}
}

// New creates a census over the given evaluator.
func New(eval *poker.Evaluator, logger *log.Logger, opts ...Option) *Census {
	c := &Census{
		eval:    eval,
		logger:  logger,
		workers: 1,
		clock:   quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.workers = max(1, min(c.workers, poker.NumCards-4))
	return c
}

type tally struct {
	hands  int
	counts [poker.NumCategories]int
	seen   [poker.WorstHand + 1]bool
}

// Run evaluates all C(52,5) hands. Work is split on the lowest card of each
// hand; worker w takes lowest cards w, w+workers, ...
func (c *Census) Run(ctx context.Context) (*Result, error) {
	start := c.clock.Now()

	tallies := make([]*tally, c.workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < c.workers; w++ {
		t := &tally{}
		tallies[w] = t
		g.Go(func() error {
			for a := poker.Index(w); a < poker.NumCards-4; a += poker.Index(c.workers) {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.countFrom(a, t)
			}
			c.logger.Debug("census worker finished", "worker", w, "hands", t.hands)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &Result{Best: poker.WorstHand + 1}
	var seen [poker.WorstHand + 1]bool
	for _, t := range tallies {
		r.Hands += t.hands
		for cat, n := range t.counts {
			r.Counts[cat] += n
		}
		for rank, ok := range t.seen {
			seen[rank] = seen[rank] || ok
		}
	}
	for rank, ok := range seen {
		if !ok {
			continue
		}
		r.Classes++
		r.Best = min(r.Best, poker.HandRank(rank))
		r.Worst = max(r.Worst, poker.HandRank(rank))
	}
	r.Elapsed = c.clock.Now().Sub(start)

	c.logger.Debug("census complete", "hands", r.Hands, "classes", r.Classes, "elapsed", r.Elapsed)
	return r, nil
}

// countFrom evaluates every hand whose lowest card index is a.
func (c *Census) countFrom(a poker.Index, t *tally) {
	for b := a + 1; b < poker.NumCards; b++ {
		for d := b + 1; d < poker.NumCards; d++ {
			for e := d + 1; e < poker.NumCards; e++ {
				for f := e + 1; f < poker.NumCards; f++ {
					rank := c.eval.Evaluate5(a, b, d, e, f)
					t.hands++
					t.counts[rank.Category()]++
					t.seen[rank] = true
				}
			}
		}
	}
}
