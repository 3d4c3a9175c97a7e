package main

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/lox/handeval/internal/census"
	"github.com/lox/handeval/poker"
)

// EvalCmd ranks a single hand.
type EvalCmd struct {
	Cards string `arg:"" help:"Five cards, e.g. 'AsKsQsJsTs'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	cards, rank, err := evaluateHand(e.eval, c.Cards)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s  %s  %s\n",
		e.styles.hand.Render(formatCards(cards)),
		e.styles.rank.Render(fmt.Sprintf("rank %d", rank)),
		e.styles.category.Render(rank.String()))
	return nil
}

// CompareCmd ranks two hands against each other.
type CompareCmd struct {
	A string `arg:"" help:"First hand"`
	B string `arg:"" help:"Second hand"`
}

func (c *CompareCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	cardsA, rankA, err := evaluateHand(e.eval, c.A)
	if err != nil {
		return fmt.Errorf("hand 1: %w", err)
	}
	cardsB, rankB, err := evaluateHand(e.eval, c.B)
	if err != nil {
		return fmt.Errorf("hand 2: %w", err)
	}
	if err := validateNoDuplicates(cardsA, cardsB); err != nil {
		return err
	}

	for i, h := range []struct {
		cards []poker.Card
		rank  poker.HandRank
	}{{cardsA, rankA}, {cardsB, rankB}} {
		fmt.Fprintf(e.out, "%d: %s  %s  %s\n", i+1,
			e.styles.hand.Render(formatCards(h.cards)),
			e.styles.rank.Render(fmt.Sprintf("rank %d", h.rank)),
			e.styles.category.Render(h.rank.String()))
	}

	switch rankA.Compare(rankB) {
	case 1:
		fmt.Fprintln(e.out, e.styles.win.Render("Hand 1 wins"))
	case -1:
		fmt.Fprintln(e.out, e.styles.win.Render("Hand 2 wins"))
	default:
		fmt.Fprintln(e.out, e.styles.tie.Render("Tie"))
	}
	return nil
}

// DealCmd deals random hands from one shuffled deck.
type DealCmd struct {
	Hands int    `short:"n" default:"5" help:"Number of hands to deal (1-10)"`
	Seed  *int64 `help:"Random seed for reproducible deals (overrides config)"`
}

func (c *DealCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	if c.Hands < 1 || c.Hands*5 > poker.NumCards {
		return fmt.Errorf("can deal between 1 and %d hands, got %d", poker.NumCards/5, c.Hands)
	}

	var seed int64
	switch {
	case c.Seed != nil:
		seed = *c.Seed
	case e.settings.Seed != nil:
		seed = *e.settings.Seed
	default:
		seed = time.Now().UnixNano()
	}
	e.logger.Debug("Dealing", "hands", c.Hands, "seed", seed)

	type dealt struct {
		hand [5]poker.Index
		rank poker.HandRank
	}
	deck := poker.NewDeck(rand.New(rand.NewSource(seed)))
	hands := make([][5]poker.Index, c.Hands)
	for i := range hands {
		hands[i], _ = deck.DealFive()
	}
	ranks := e.eval.Evaluate5Batch(hands, nil)

	results := make([]dealt, len(hands))
	for i := range hands {
		results[i] = dealt{hand: hands[i], rank: ranks[i]}
	}
	slices.SortStableFunc(results, func(a, b dealt) int {
		return int(a.rank) - int(b.rank)
	})

	fmt.Fprintln(e.out, e.styles.header.Render(fmt.Sprintf("Seed %d", seed)))
	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tHand\tRank\tCategory")
	for i, r := range results {
		cards := make([]poker.Card, 5)
		for j, idx := range r.hand {
			cards[j] = idx.Card()
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, formatCards(cards), r.rank, r.rank)
	}
	return w.Flush()
}

// CensusCmd enumerates every hand.
type CensusCmd struct {
	Workers int `short:"w" help:"Worker goroutines (overrides config)"`
}

func (c *CensusCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}
	workers := e.settings.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e.logger.Info("Starting census", "hands", census.TotalHands, "workers", workers)
	r, err := census.New(e.eval, e.logger, census.WithWorkers(workers)).Run(ctx)
	if err != nil {
		return err
	}
	printCensus(e, r)

	if err := r.Check(); err != nil {
		fmt.Fprintln(e.out, e.styles.fail.Render("FAIL"))
		return err
	}
	fmt.Fprintln(e.out, e.styles.win.Render("OK"))
	return nil
}

func printCensus(e *env, r *census.Result) {
	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Category\tRanks\tClasses\tHands\t")
	for cat := poker.StraightFlush; cat < poker.NumCategories; cat++ {
		first, last := cat.Range()
		fmt.Fprintf(w, "%s\t%d-%d\t%d\t%d\t\n", cat, first, last, cat.Size(), r.Counts[cat])
	}
	fmt.Fprintf(w, "Total\t%d-%d\t%d\t%d\t\n", r.Best, r.Worst, r.Classes, r.Hands)
	w.Flush()
	fmt.Fprintf(e.out, "Elapsed %s\n", r.Elapsed.Round(time.Millisecond))
}

// evaluateHand parses and ranks one five-card hand.
func evaluateHand(eval *poker.Evaluator, s string) ([]poker.Card, poker.HandRank, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return nil, 0, err
	}
	rank, err := eval.EvaluateCards(cards)
	if err != nil {
		return nil, 0, err
	}
	return cards, rank, nil
}

func validateNoDuplicates(hands ...[]poker.Card) error {
	seen := poker.NewMask()
	for i, hand := range hands {
		for _, card := range hand {
			if seen.Has(card) {
				return fmt.Errorf("duplicate card found in hand %d: %s: %w", i+1, card, poker.ErrDuplicateCard)
			}
			seen |= card.Mask()
		}
	}
	return nil
}

func formatCards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
