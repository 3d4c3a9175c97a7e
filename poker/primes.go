package poker

import "fmt"

// rankPrimes assigns each rank a distinct prime, increasing with rank. The
// product of five rank primes identifies a rank multiset regardless of suits.
var rankPrimes = [NumRanks]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// indexPrimes caches the rank prime of every card index.
var indexPrimes = func() [NumCards]uint32 {
	var table [NumCards]uint32
	for i := Index(0); i < NumCards; i++ {
		table[i] = rankPrimes[i.Rank()]
	}
	return table
}()

// Prime returns the prime assigned to r. An out-of-range rank is a
// programming error and panics.
func (r Rank) Prime() uint32 {
	if !r.Valid() {
		panic(fmt.Sprintf("poker: rank %d out of range", uint8(r)))
	}
	return rankPrimes[r]
}

// Prime returns the rank prime of the card encoded by i.
func (i Index) Prime() uint32 {
	if !i.Valid() {
		panic(invalidIndex(i))
	}
	return indexPrimes[i]
}

// primeProduct multiplies the primes of the given ranks. Five aces, the
// largest product, is 41^5 and fits in 32 bits.
func primeProduct(ranks ...Rank) uint32 {
	p := uint32(1)
	for _, r := range ranks {
		p *= rankPrimes[r]
	}
	return p
}
