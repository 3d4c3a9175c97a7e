package poker

import (
	"fmt"
	"maps"
	"slices"

	"github.com/opencoff/go-chd"
)

// DefaultLoadFactor is the CHD load factor used when none is configured.
const DefaultLoadFactor = 0.9

// nonFlushClass is one rank multiset that can appear without a flush.
type nonFlushClass struct {
	product uint32
	key     []Rank // tie-break tuple, compared lexicographically
}

// classifyMultiset maps a sorted rank multiset with at least one repeated rank
// to its category and tie-break tuple: the distinct ranks ordered by
// multiplicity, then by rank, both descending.
func classifyMultiset(ranks [5]Rank) (Category, []Rank) {
	var counts [NumRanks]uint8
	for _, r := range ranks {
		counts[r]++
	}

	key := make([]Rank, 0, 4)
	for n := uint8(4); n >= 1; n-- {
		for r := Ace; ; r-- {
			if counts[r] == n {
				key = append(key, r)
			}
			if r == Two {
				break
			}
		}
	}

	top := counts[key[0]]
	switch {
	case top == 4:
		return FourOfAKind, key
	case top == 3 && len(key) == 2:
		return FullHouse, key
	case top == 3:
		return ThreeOfAKind, key
	case top == 2 && len(key) == 3:
		return TwoPair, key
	case top == 2:
		return OnePair, key
	default:
		return HighCard, key
	}
}

// nonFlushClasses enumerates the 6175 rank multisets reachable without a
// flush, numbered by category precedence and, inside a category, by
// descending tie-break tuple. Sets of five distinct ranks come from the
// flush-table enumeration so both tables share one ordering.
func nonFlushClasses(straights, others []rankSet) (map[uint32]HandRank, error) {
	var buckets [NumCategories][]nonFlushClass

	for _, s := range straights {
		buckets[Straight] = append(buckets[Straight], nonFlushClass{
			product: primeProduct(s.ranks[:]...),
			key:     []Rank{s.high()},
		})
	}
	for _, s := range others {
		buckets[HighCard] = append(buckets[HighCard], nonFlushClass{
			product: primeProduct(s.ranks[:]...),
			key:     s.ranks[:],
		})
	}

	for a := Two; a <= Ace; a++ {
		for b := a; b <= Ace; b++ {
			for c := b; c <= Ace; c++ {
				for d := c; d <= Ace; d++ {
					for e := d; e <= Ace; e++ {
						if a == e {
							continue // five of a kind
						}
						if a < b && b < c && c < d && d < e {
							continue // distinct ranks handled above
						}
						ranks := [5]Rank{a, b, c, d, e}
						cat, key := classifyMultiset(ranks)
						buckets[cat] = append(buckets[cat], nonFlushClass{
							product: primeProduct(ranks[:]...),
							key:     key,
						})
					}
				}
			}
		}
	}

	ranks := make(map[uint32]HandRank, NumHandRanks-StraightFlush.Size()-Flush.Size())
	for cat := StraightFlush; cat < NumCategories; cat++ {
		if cat == StraightFlush || cat == Flush {
			if len(buckets[cat]) != 0 {
				return nil, fmt.Errorf("non-flush table: %d classes in flush category %s", len(buckets[cat]), cat)
			}
			continue
		}
		bucket := buckets[cat]
		if len(bucket) != cat.Size() {
			return nil, fmt.Errorf("non-flush table: %s has %d classes, want %d", cat, len(bucket), cat.Size())
		}
		slices.SortStableFunc(bucket, func(x, y nonFlushClass) int {
			return slices.Compare(y.key, x.key)
		})
		first, _ := cat.Range()
		for i, cls := range bucket {
			if prev, ok := ranks[cls.product]; ok {
				return nil, fmt.Errorf("non-flush table: product %d maps to both %d and %d", cls.product, prev, first+HandRank(i))
			}
			ranks[cls.product] = first + HandRank(i)
		}
	}
	return ranks, nil
}

// productSlot holds one key of the perfect hash; the key is stored so a
// lookup can confirm it hit the product it was built for.
type productSlot struct {
	product uint32
	rank    HandRank
}

// productHash is a minimal perfect hash from rank-prime product to hand rank.
type productHash struct {
	mph   *chd.Chd
	slots []productSlot
}

// mixProduct spreads the small, clustered prime products over 64 bits
// before they reach the CHD builder (splitmix64 finalizer).
func mixProduct(p uint32) uint64 {
	z := uint64(p) + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func buildProductHash(ranks map[uint32]HandRank, load float64) (*productHash, error) {
	if load <= 0 || load > 1 {
		return nil, fmt.Errorf("perfect hash: load factor %v not in (0,1]", load)
	}

	products := slices.Sorted(maps.Keys(ranks))
	b, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("perfect hash: %w", err)
	}
	for _, p := range products {
		if err := b.Add(mixProduct(p)); err != nil {
			return nil, fmt.Errorf("perfect hash: add %d: %w", p, err)
		}
	}
	mph, err := b.Freeze(load)
	if err != nil {
		return nil, fmt.Errorf("perfect hash: freeze: %w", err)
	}

	var size uint64
	for _, p := range products {
		size = max(size, mph.Find(mixProduct(p))+1)
	}
	h := &productHash{mph: mph, slots: make([]productSlot, size)}
	for _, p := range products {
		i := mph.Find(mixProduct(p))
		if h.slots[i].rank != 0 {
			return nil, fmt.Errorf("perfect hash: products %d and %d collide at slot %d", h.slots[i].product, p, i)
		}
		h.slots[i] = productSlot{product: p, rank: ranks[p]}
	}
	return h, nil
}

// lookup returns the rank for a product built into the hash, or 0 when the
// product is not a non-flush hand.
func (h *productHash) lookup(p uint32) HandRank {
	i := h.mph.Find(mixProduct(p))
	if i >= uint64(len(h.slots)) {
		return 0
	}
	s := h.slots[i]
	if s.product != p {
		return 0
	}
	return s.rank
}
