package poker

import (
	"fmt"
	"slices"
)

// rankSet is one of the C(13,5) = 1287 sets of five distinct ranks.
type rankSet struct {
	ranks    [5]Rank // descending
	pattern  uint16  // lane pattern: bit 12-rank set for each rank
	straight bool
}

// high returns the card that tops the set; the wheel plays its ace low.
func (s rankSet) high() Rank {
	if s.straight && s.ranks[0] == Ace && s.ranks[1] == Five {
		return Five
	}
	return s.ranks[0]
}

func lanePattern(ranks ...Rank) uint16 {
	var p uint16
	for _, r := range ranks {
		p |= 1 << (NumRanks - 1 - r)
	}
	return p
}

func isStraight(ranks [5]Rank) bool {
	if ranks[0] == Ace && ranks[1] == Five && ranks[4] == Two {
		return true
	}
	return ranks[0]-ranks[4] == 4
}

// fiveRankSets enumerates every set of five distinct ranks, split into the ten
// straights (ace-high first, wheel last) and the 1277 others ordered from
// strongest to weakest. The nested descending loops already yield the others
// in descending lexicographic order.
func fiveRankSets() (straights, others []rankSet) {
	for a := Ace; a >= Six; a-- {
		for b := a - 1; b >= Five; b-- {
			for c := b - 1; c >= Four; c-- {
				for d := c - 1; d >= Three; d-- {
					for e := d - 1; ; e-- {
						s := rankSet{ranks: [5]Rank{a, b, c, d, e}}
						s.pattern = lanePattern(s.ranks[:]...)
						s.straight = isStraight(s.ranks)
						if s.straight {
							straights = append(straights, s)
						} else {
							others = append(others, s)
						}
						if e == Two {
							break
						}
					}
				}
			}
		}
	}
	slices.SortStableFunc(straights, func(x, y rankSet) int {
		return int(y.high()) - int(x.high())
	})
	return straights, others
}

// flushTable maps a lane pattern holding five ranks to its hand rank; entries
// for other patterns are zero.
type flushTable [1 << NumRanks]HandRank

// buildFlushTable numbers the straight flushes from 1 and the remaining
// flushes from the flush base. It also returns the straight sets so the
// non-flush table can reuse them.
func buildFlushTable() (*flushTable, []rankSet, []rankSet, error) {
	straights, others := fiveRankSets()
	if len(straights) != StraightFlush.Size() {
		return nil, nil, nil, fmt.Errorf("flush table: %d straight patterns, want %d", len(straights), StraightFlush.Size())
	}
	if len(others) != Flush.Size() {
		return nil, nil, nil, fmt.Errorf("flush table: %d flush patterns, want %d", len(others), Flush.Size())
	}

	t := new(flushTable)
	assign := func(sets []rankSet, cat Category) error {
		first, _ := cat.Range()
		for i, s := range sets {
			if t[s.pattern] != 0 {
				return fmt.Errorf("flush table: pattern %013b assigned twice", s.pattern)
			}
			t[s.pattern] = first + HandRank(i)
		}
		return nil
	}
	if err := assign(straights, StraightFlush); err != nil {
		return nil, nil, nil, err
	}
	if err := assign(others, Flush); err != nil {
		return nil, nil, nil, err
	}
	return t, straights, others, nil
}
