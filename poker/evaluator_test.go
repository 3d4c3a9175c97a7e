package poker

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indices(t testing.TB, s string) [5]Index {
	t.Helper()
	cards := MustParseCards(s)
	require.Len(t, cards, 5)
	var idx [5]Index
	for i, c := range cards {
		idx[i] = c.Index()
	}
	return idx
}

func eval(t testing.TB, s string) HandRank {
	t.Helper()
	h := indices(t, s)
	return Evaluate5(h[0], h[1], h[2], h[3], h[4])
}

func TestEvaluate5FixedPoints(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		cards string
		want  HandRank
	}{
		{"royal flush", "TcJcQcKcAc", 1},
		{"king-high straight flush", "9hThJhQhKh", 2},
		{"steel wheel", "Ad2d3d4d5d", 10},
		{"four aces king kicker", "AsAhAdAcKs", 11},
		{"four deuces trey kicker", "2s2h2d2c3s", 166},
		{"aces full of kings", "AsAhAdKcKs", 167},
		{"kings full of aces", "KsKhKdAcAs", 179},
		{"deuces full of treys", "2s2h2d3c3s", 322},
		{"ace-high flush", "AsKsQsJs9s", 323},
		{"seven-high flush", "7h5h4h3h2h", 1599},
		{"broadway", "TcJcQcKcAs", 1600},
		{"wheel", "As2h3d4c5s", 1609},
		{"trip aces", "AsAhAdKcQs", 1610},
		{"trip deuces", "2s2h2d4c3s", 2467},
		{"aces up", "AsAhKdKcQs", 2468},
		{"treys and deuces", "3s3h2d2c4s", 3325},
		{"pair of aces", "AsAhKdQcJs", 3326},
		{"pair of deuces", "2s2h5d4c3s", 6185},
		{"ace high", "AsKhQdJc9s", 6186},
		{"worst hand", "2d3s4h5c7d", 7462},
	}

	for _, testCase := range tests {
		tc := testCase
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, eval(t, tc.cards))
		})
	}
}

func TestEvaluate5Categories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cards string
		want  Category
	}{
		{"9s8s7s6s5s", StraightFlush},
		{"AsAhAdAc2s", FourOfAKind},
		{"7s7h7d2c2s", FullHouse},
		{"AsKsQs8s6s", Flush},
		{"6s5h4d3c2s", Straight},
		{"9s9h9d2c5s", ThreeOfAKind},
		{"9s9h5d5cAs", TwoPair},
		{"9s9hAdKc3s", OnePair},
		{"AsKhQd9s7c", HighCard},
	}
	for _, tt := range tests {
		rank := eval(t, tt.cards)
		assert.Equal(t, tt.want, rank.Category(), tt.cards)
		first, last := tt.want.Range()
		assert.GreaterOrEqual(t, rank, first, tt.cards)
		assert.LessOrEqual(t, rank, last, tt.cards)
	}
}

func TestEvaluate5Symmetry(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"TcJcQcKcAc", "As2h3d4c5s", "KsKhKdAcAs", "2d3s4h5c7d", "9s9h5d5cAs"} {
		hand := indices(t, s)
		want := Evaluate5(hand[0], hand[1], hand[2], hand[3], hand[4])
		permute(hand[:], 0, func(p []Index) {
			got := Evaluate5(p[0], p[1], p[2], p[3], p[4])
			require.Equal(t, want, got, "permutation %v of %s", p, s)
		})
	}
}

func permute(a []Index, k int, visit func([]Index)) {
	if k == len(a) {
		visit(a)
		return
	}
	for i := k; i < len(a); i++ {
		a[k], a[i] = a[i], a[k]
		permute(a, k+1, visit)
		a[k], a[i] = a[i], a[k]
	}
}

func TestEvaluate5Distinctness(t *testing.T) {
	t.Parallel()
	acesFull := eval(t, "AsAhAdKcKs")
	kingsFull := eval(t, "KsKhKdAcAs")
	assert.NotEqual(t, acesFull, kingsFull)
	assert.Equal(t, 1, acesFull.Compare(kingsFull))
	assert.NotEqual(t,
		primeProduct(Ace, Ace, Ace, King, King),
		primeProduct(King, King, King, Ace, Ace))
}

func TestEvaluate5SuitsDoNotMatter(t *testing.T) {
	t.Parallel()
	assert.Equal(t, eval(t, "AsAhKdKcQs"), eval(t, "AdAcKhKsQh"))
	assert.Equal(t, eval(t, "AsKsQsJs9s"), eval(t, "AhKhQhJh9h"))
	assert.Equal(t, eval(t, "AsKhQdJc9s"), eval(t, "AhKsQcJd9h"))
}

func TestEvaluate5Idempotent(t *testing.T) {
	t.Parallel()
	e, err := NewEvaluator()
	require.NoError(t, err)
	h := indices(t, "9s9h5d5cAs")
	first := e.Evaluate5(h[0], h[1], h[2], h[3], h[4])
	for range 100 {
		require.Equal(t, first, e.Evaluate5(h[0], h[1], h[2], h[3], h[4]))
	}
	assert.Equal(t, first, Evaluate5(h[0], h[1], h[2], h[3], h[4]))
}

func TestEvaluate5ContractViolations(t *testing.T) {
	t.Parallel()
	h := indices(t, "AsKsQsJsTs")

	err := recoverCardError(func() { Evaluate5(h[0], h[1], h[2], h[3], 52) })
	assert.ErrorIs(t, err, ErrInvalidCard)

	err = recoverCardError(func() { Evaluate5(200, h[1], h[2], h[3], h[4]) })
	assert.ErrorIs(t, err, ErrInvalidCard)

	err = recoverCardError(func() { Evaluate5(h[0], h[1], h[2], h[3], h[0]) })
	assert.ErrorIs(t, err, ErrDuplicateCard)
	var cardErr *CardError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, "duplicate card: As", cardErr.Error())

	assert.ErrorIs(t, Validate5(h[0], h[0], h[2], h[3], h[4]), ErrDuplicateCard)
	assert.ErrorIs(t, Validate5(h[0], h[1], h[2], h[3], 99), ErrInvalidCard)
	assert.NoError(t, Validate5(h[0], h[1], h[2], h[3], h[4]))
}

func TestEvaluateCards(t *testing.T) {
	t.Parallel()
	e := Default()

	rank, err := e.EvaluateCards(MustParseCards("TcJcQcKcAc"))
	require.NoError(t, err)
	assert.Equal(t, BestHand, rank)
	assert.Equal(t, "Royal Flush", rank.String())

	_, err = e.EvaluateCards(MustParseCards("TcJcQcKc"))
	assert.Error(t, err)

	_, err = e.EvaluateCards(MustParseCards("TcJcQcKcTc"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = e.EvaluateCards([]Card{{Rank: 14, Suit: Clubs}, {}, {}, {}, {}})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestEvaluate5Batch(t *testing.T) {
	t.Parallel()
	e := Default()
	hands := [][5]Index{indices(t, "TcJcQcKcAc"), indices(t, "2d3s4h5c7d")}

	out := e.Evaluate5Batch(hands, nil)
	assert.Equal(t, []HandRank{1, 7462}, out)

	buf := make([]HandRank, 8)
	out = e.Evaluate5Batch(hands, buf)
	assert.Len(t, out, 2)
	assert.Equal(t, HandRank(7462), buf[1])
}

func TestNewEvaluatorRejectsBadLoadFactor(t *testing.T) {
	t.Parallel()
	_, err := NewEvaluator(WithLoadFactor(0))
	assert.Error(t, err)
	_, err = NewEvaluator(WithLoadFactor(1.5))
	assert.Error(t, err)
}

func TestNewEvaluatorLoadFactors(t *testing.T) {
	t.Parallel()
	h := indices(t, "9s9h5d5cAs")
	for _, load := range []float64{0.75, 0.9, 1} {
		e, err := NewEvaluator(WithLoadFactor(load))
		require.NoError(t, err, "load %v", load)
		assert.Equal(t, Default().Evaluate5(h[0], h[1], h[2], h[3], h[4]), e.Evaluate5(h[0], h[1], h[2], h[3], h[4]))
	}
}

// naiveKey ranks a hand by brute force: category first, then the ranks
// ordered by multiplicity and value. It shares no tables with Evaluator.
func naiveKey(cards [5]Index) (Category, []int) {
	var counts [NumRanks]int
	flush := true
	for i, c := range cards {
		counts[c.Rank()]++
		if c.Suit() != cards[0].Suit() && i > 0 {
			flush = false
		}
	}

	var key []int
	for n := 4; n >= 1; n-- {
		for r := NumRanks - 1; r >= 0; r-- {
			if counts[r] == n {
				key = append(key, r)
			}
		}
	}

	straight := false
	if len(key) == 5 {
		if key[0]-key[4] == 4 {
			straight = true
			key = []int{key[0]}
		} else if key[0] == int(Ace) && key[1] == int(Five) {
			straight = true
			key = []int{int(Five)}
		}
	}

	switch {
	case straight && flush:
		return StraightFlush, key
	case counts[key[0]] == 4:
		return FourOfAKind, key
	case counts[key[0]] == 3 && len(key) == 2:
		return FullHouse, key
	case flush:
		return Flush, key
	case straight:
		return Straight, key
	case counts[key[0]] == 3:
		return ThreeOfAKind, key
	case counts[key[0]] == 2 && len(key) == 3:
		return TwoPair, key
	case counts[key[0]] == 2:
		return OnePair, key
	default:
		return HighCard, key
	}
}

func naiveCompare(a, b [5]Index) int {
	ca, ka := naiveKey(a)
	cb, kb := naiveKey(b)
	if ca != cb {
		if ca < cb {
			return 1
		}
		return -1
	}
	return slices.Compare(ka, kb)
}

func TestEvaluate5MatchesNaiveOrdering(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(12345))
	deck := NewDeck(rng)

	for i := 0; i < 100000; i++ {
		deck.Reset()
		a, _ := deck.DealFive()
		b, _ := deck.DealFive()

		ra := Evaluate5(a[0], a[1], a[2], a[3], a[4])
		rb := Evaluate5(b[0], b[1], b[2], b[3], b[4])

		cat, _ := naiveKey(a)
		require.Equal(t, cat, ra.Category(), "hand %v", a)
		require.Equal(t, naiveCompare(a, b), ra.Compare(rb), "hands %v vs %v", a, b)
	}
}

func TestEvaluate5AllHands(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive enumeration")
	}
	t.Parallel()
	e := Default()

	var counts [NumCategories]int
	seen := make(map[HandRank]bool, NumHandRanks)
	byKey := make(map[string]HandRank)
	total := 0

	for a := Index(0); a < NumCards; a++ {
		for b := a + 1; b < NumCards; b++ {
			for c := b + 1; c < NumCards; c++ {
				for d := c + 1; d < NumCards; d++ {
					for f := d + 1; f < NumCards; f++ {
						rank := e.Evaluate5(a, b, c, d, f)
						require.True(t, rank.Valid())
						cat, key := naiveKey([5]Index{a, b, c, d, f})
						require.Equal(t, cat, rank.Category())
						counts[cat]++
						seen[rank] = true

						k := cat.String() + string(intsToBytes(key))
						if prev, ok := byKey[k]; ok {
							require.Equal(t, prev, rank, "equal hands must tie")
						} else {
							byKey[k] = rank
						}
						total++
					}
				}
			}
		}
	}

	assert.Equal(t, 2598960, total)
	assert.Len(t, seen, NumHandRanks)
	assert.Len(t, byKey, NumHandRanks)
	assert.Equal(t, [NumCategories]int{40, 624, 3744, 5108, 10200, 54912, 123552, 1098240, 1302540}, counts)
}

func intsToBytes(v []int) []byte {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
	return b
}

func BenchmarkEvaluate5(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	deck := NewDeck(rng)
	hands := make([][5]Index, 1000)
	for i := range hands {
		deck.Reset()
		hands[i], _ = deck.DealFive()
	}
	e := Default()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		h := hands[i%len(hands)]
		_ = e.Evaluate5(h[0], h[1], h[2], h[3], h[4])
	}
}

func BenchmarkNewEvaluator(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := NewEvaluator(); err != nil {
			b.Fatal(err)
		}
	}
}
