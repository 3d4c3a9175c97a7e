package poker

import (
	"fmt"
	"math/bits"
	"sync"
)

// Evaluator ranks five-card hands in constant time. Its tables are built by
// NewEvaluator and never modified, so one Evaluator may be shared by any
// number of goroutines.
type Evaluator struct {
	flush    *flushTable
	products *productHash
}

type options struct {
	loadFactor float64
}

// Option configures table construction.
type Option func(*options)

// WithLoadFactor sets the load factor of the non-flush perfect hash.
func WithLoadFactor(load float64) Option {
	return func(o *options) {
		o.loadFactor = load
	}
}

// NewEvaluator builds the flush and non-flush tables and checks every
// category against its fixed rank range.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	o := options{loadFactor: DefaultLoadFactor}
	for _, opt := range opts {
		opt(&o)
	}

	flush, straights, others, err := buildFlushTable()
	if err != nil {
		return nil, err
	}
	ranks, err := nonFlushClasses(straights, others)
	if err != nil {
		return nil, err
	}
	products, err := buildProductHash(ranks, o.loadFactor)
	if err != nil {
		return nil, err
	}
	return &Evaluator{flush: flush, products: products}, nil
}

var defaultEvaluator = sync.OnceValues(func() (*Evaluator, error) {
	return NewEvaluator()
})

// Default returns the process-wide evaluator, building it on first use. It
// panics if the tables cannot be built.
func Default() *Evaluator {
	e, err := defaultEvaluator()
	if err != nil {
		panic(fmt.Sprintf("poker: building evaluator tables: %v", err))
	}
	return e
}

// Evaluate5 ranks five cards with the default evaluator.
func Evaluate5(c1, c2, c3, c4, c5 Index) HandRank {
	return Default().Evaluate5(c1, c2, c3, c4, c5)
}

// Evaluate5 ranks five distinct cards; argument order does not matter. An
// out-of-range or repeated index is a caller bug and panics with a
// *CardError wrapping ErrInvalidCard or ErrDuplicateCard.
func (e *Evaluator) Evaluate5(c1, c2, c3, c4, c5 Index) HandRank {
	m, err := combine(c1, c2, c3, c4, c5)
	if err != nil {
		panic(err)
	}

	for suit := Clubs; suit <= Spades; suit++ {
		if lane := m.SuitMask(suit); bits.OnesCount16(lane) == 5 {
			return e.flush[lane]
		}
	}

	p := indexPrimes[c1] * indexPrimes[c2] * indexPrimes[c3] * indexPrimes[c4] * indexPrimes[c5]
	rank := e.products.lookup(p)
	if rank == 0 {
		panic(fmt.Sprintf("poker: no table entry for prime product %d", p))
	}
	return rank
}

// EvaluateCards ranks exactly five cards, returning an error instead of
// panicking when the input breaks the contract.
func (e *Evaluator) EvaluateCards(cards []Card) (HandRank, error) {
	if len(cards) != 5 {
		return 0, fmt.Errorf("need exactly 5 cards, got %d", len(cards))
	}
	var idx [5]Index
	for i, c := range cards {
		if !c.Valid() {
			return 0, &CardError{Err: ErrInvalidCard, Detail: fmt.Sprintf("rank %d suit %d", c.Rank, c.Suit)}
		}
		idx[i] = c.Index()
	}
	if err := Validate5(idx[0], idx[1], idx[2], idx[3], idx[4]); err != nil {
		return 0, err
	}
	return e.Evaluate5(idx[0], idx[1], idx[2], idx[3], idx[4]), nil
}

// Evaluate5Batch ranks several hands and writes results into out.
// If out is nil or smaller than hands, a new slice is allocated and returned.
func (e *Evaluator) Evaluate5Batch(hands [][5]Index, out []HandRank) []HandRank {
	if len(out) < len(hands) {
		out = make([]HandRank, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i, h := range hands {
		out[i] = e.Evaluate5(h[0], h[1], h[2], h[3], h[4])
	}
	return out
}

// Validate5 reports whether five indices are a legal Evaluate5 input.
func Validate5(c1, c2, c3, c4, c5 Index) error {
	_, err := combine(c1, c2, c3, c4, c5)
	return err
}

// combine ORs the card masks together, rejecting invalid and repeated cards.
func combine(cards ...Index) (Mask, error) {
	var m Mask
	for _, c := range cards {
		if !c.Valid() {
			return 0, invalidIndex(c)
		}
		bit := indexMasks[c]
		if m&bit != 0 {
			return 0, duplicateIndex(c)
		}
		m |= bit
	}
	return m, nil
}
