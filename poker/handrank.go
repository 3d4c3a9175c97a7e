package poker

// HandRank represents the strength of a five-card hand. Values run from 1
// (royal flush) to 7462 (seven-high); lower is stronger.
type HandRank uint16

// Category enumerates the hand categories ordered from strongest to weakest.
type Category uint8

const (
	StraightFlush Category = iota
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

// NumCategories is the number of hand categories.
const NumCategories = 9

const (
	straightFlushCount = 10
	fourOfAKindCount   = 13 * 12
	fullHouseCount     = 13 * 12
	flushCount         = 1277
	straightCount      = 10
	threeOfAKindCount  = 13 * 66
	twoPairCount       = 78 * 11
	onePairCount       = 13 * 220
	highCardCount      = 1277
)

const (
	baseStraightFlush = 1
	baseFourOfAKind   = baseStraightFlush + straightFlushCount
	baseFullHouse     = baseFourOfAKind + fourOfAKindCount
	baseFlush         = baseFullHouse + fullHouseCount
	baseStraight      = baseFlush + flushCount
	baseThreeOfAKind  = baseStraight + straightCount
	baseTwoPair       = baseThreeOfAKind + threeOfAKindCount
	baseOnePair       = baseTwoPair + twoPairCount
	baseHighCard      = baseOnePair + onePairCount
)

const (
	// BestHand is the rank of a royal flush.
	BestHand HandRank = baseStraightFlush
	// WorstHand is the rank of 7-5-4-3-2 unsuited.
	WorstHand HandRank = baseHighCard + highCardCount - 1
	// NumHandRanks is the number of distinct five-card hand classes.
	NumHandRanks = int(WorstHand)
)

var categoryBase = [NumCategories + 1]HandRank{
	baseStraightFlush,
	baseFourOfAKind,
	baseFullHouse,
	baseFlush,
	baseStraight,
	baseThreeOfAKind,
	baseTwoPair,
	baseOnePair,
	baseHighCard,
	WorstHand + 1,
}

var categoryNames = [NumCategories]string{
	"Straight Flush",
	"Four of a Kind",
	"Full House",
	"Flush",
	"Straight",
	"Three of a Kind",
	"Two Pair",
	"One Pair",
	"High Card",
}

// Range returns the inclusive rank interval occupied by the category.
func (c Category) Range() (first, last HandRank) {
	return categoryBase[c], categoryBase[c+1] - 1
}

// Size returns the number of hand classes in the category.
func (c Category) Size() int {
	first, last := c.Range()
	return int(last-first) + 1
}

func (c Category) String() string {
	if c >= NumCategories {
		return "Unknown"
	}
	return categoryNames[c]
}

// Valid reports whether h lies in [BestHand, WorstHand].
func (h HandRank) Valid() bool {
	return h >= BestHand && h <= WorstHand
}

// Category returns the category whose range contains h.
func (h HandRank) Category() Category {
	switch {
	case h < baseFourOfAKind:
		return StraightFlush
	case h < baseFullHouse:
		return FourOfAKind
	case h < baseFlush:
		return FullHouse
	case h < baseStraight:
		return Flush
	case h < baseThreeOfAKind:
		return Straight
	case h < baseTwoPair:
		return ThreeOfAKind
	case h < baseOnePair:
		return TwoPair
	case h < baseHighCard:
		return OnePair
	default:
		return HighCard
	}
}

// String returns a human-readable hand description.
func (h HandRank) String() string {
	if h == BestHand {
		return "Royal Flush"
	}
	if !h.Valid() {
		return "Unknown"
	}
	return h.Category().String()
}

// Compare returns 1 if h beats other, -1 if other beats h, 0 for a tie.
func (h HandRank) Compare(other HandRank) int {
	return CompareHands(h, other)
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}
