package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Rank is a card rank, Two (0) through Ace (12).
type Rank uint8

// Suit is a card suit, Clubs (0) through Spades (3).
type Suit uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	// NumRanks is the number of distinct ranks.
	NumRanks = 13
	// NumSuits is the number of distinct suits.
	NumSuits = 4
	// NumCards is the size of a standard deck.
	NumCards = NumRanks * NumSuits

	laneWidth = NumRanks
	laneMask  = 1<<laneWidth - 1
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool { return r < NumRanks }

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool { return s < NumSuits }

// String returns the single character used in card notation ("A", "T", "2").
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return rankChars[r : r+1]
}

// String returns the single lowercase character used in card notation.
func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return suitChars[s : s+1]
}

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from a rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// Valid reports whether both the rank and suit are in range.
func (c Card) Valid() bool { return c.Rank.Valid() && c.Suit.Valid() }

// String returns the card in two-character notation, e.g. "As" or "Td".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Index returns the compact encoding rank*4 + suit. It panics with a
// *CardError if the card is outside the deck.
func (c Card) Index() Index {
	if !c.Valid() {
		panic(&CardError{Err: ErrInvalidCard, Detail: fmt.Sprintf("rank %d suit %d", c.Rank, c.Suit)})
	}
	return Index(uint8(c.Rank)*NumSuits + uint8(c.Suit))
}

// Mask returns the one-hot bitmask for the card.
func (c Card) Mask() Mask {
	return c.Index().Mask()
}

// Index is a card encoded as an integer in [0,52).
type Index uint8

// Valid reports whether i encodes a card.
func (i Index) Valid() bool { return i < NumCards }

// Rank returns the rank encoded in i.
func (i Index) Rank() Rank { return Rank(i / NumSuits) }

// Suit returns the suit encoded in i.
func (i Index) Suit() Suit { return Suit(i % NumSuits) }

// Card decodes i. It panics with a *CardError if i is out of range.
func (i Index) Card() Card {
	if !i.Valid() {
		panic(invalidIndex(i))
	}
	return Card{Rank: i.Rank(), Suit: i.Suit()}
}

// Mask returns the one-hot bitmask for i. It panics with a *CardError if i
// is out of range.
func (i Index) Mask() Mask {
	if !i.Valid() {
		panic(invalidIndex(i))
	}
	return indexMasks[i]
}

// String returns the card notation for i.
func (i Index) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Index(%d)", uint8(i))
	}
	return i.Card().String()
}

// Mask is a set of cards packed into four 13-bit suit lanes. Clubs occupy the
// highest lane (bits 39-51) and spades the lowest (bits 0-12). Within a lane
// the ace is bit 0 and the deuce bit 12.
type Mask uint64

// NewMask builds a mask holding the given cards.
func NewMask(cards ...Card) Mask {
	var m Mask
	for _, c := range cards {
		m |= c.Mask()
	}
	return m
}

func maskOf(rank Rank, suit Suit) Mask {
	return Mask(1) << (laneShift(suit) + uint(NumRanks-1-rank))
}

func laneShift(suit Suit) uint {
	return uint(NumSuits-1-suit) * laneWidth
}

// indexMasks maps every Index to its single-bit Mask.
var indexMasks = func() [NumCards]Mask {
	var table [NumCards]Mask
	for i := Index(0); i < NumCards; i++ {
		table[i] = maskOf(i.Rank(), i.Suit())
	}
	return table
}()

// Valid reports whether every set bit of m encodes a card.
func (m Mask) Valid() bool {
	return m>>NumCards == 0
}

// CountCards returns the number of cards in the mask.
func (m Mask) CountCards() int {
	return bits.OnesCount64(uint64(m))
}

// Has reports whether the card is in the mask.
func (m Mask) Has(c Card) bool {
	return m&c.Mask() != 0
}

// SuitMask returns the 13-bit rank pattern for one suit lane.
func (m Mask) SuitMask(suit Suit) uint16 {
	return uint16(uint64(m)>>laneShift(suit)) & laneMask
}

// Card decodes a mask holding exactly one card.
func (m Mask) Card() (Card, error) {
	if !m.Valid() || m.CountCards() != 1 {
		return Card{}, &CardError{Err: ErrInvalidCard, Detail: fmt.Sprintf("mask %#x is not a single card", uint64(m))}
	}
	pos := uint(bits.TrailingZeros64(uint64(m)))
	suit := Suit(NumSuits - 1 - pos/laneWidth)
	rank := Rank(NumRanks - 1 - pos%laneWidth)
	return Card{Rank: rank, Suit: suit}, nil
}

// Cards lists the cards in the mask in lane order: spades first, and within
// a suit from ace down to deuce.
func (m Mask) Cards() []Card {
	cards := make([]Card, 0, m.CountCards())
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		c, _ := Mask(rest & -rest).Card()
		cards = append(cards, c)
	}
	return cards
}

// ParseCard parses a single card in [Rank][Suit] notation, e.g. "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: must be two characters", s)
	}
	rank, err := parseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	suit, err := parseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("invalid card %q: %w", s, err)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a string of card notation into a slice of cards.
// Format: "AsKsQsJsTs"; spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'a':
		c = 'A'
	case 'k':
		c = 'K'
	case 'q':
		c = 'Q'
	case 'j':
		c = 'J'
	case 't':
		c = 'T'
	}
	if i := strings.IndexByte(rankChars, c); i >= 0 {
		return Rank(i), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'c', 'C':
		return Clubs, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'h', 'H':
		return Hearts, nil
	case 's', 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
