package evaluator

// Category is a scoring hand category. Higher values take precedence when
// a hand satisfies several patterns.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	FiveOfAKind
	FlushHouse
	FlushFive
)

type categoryInfo struct {
	name  string
	chips int
	mult  int
}

var categoryTable = [...]categoryInfo{
	HighCard:      {"High Card", 5, 1},
	Pair:          {"Pair", 10, 2},
	TwoPair:       {"Two Pair", 20, 2},
	ThreeOfAKind:  {"Three of a Kind", 30, 3},
	Straight:      {"Straight", 30, 4},
	Flush:         {"Flush", 35, 4},
	FullHouse:     {"Full House", 40, 4},
	FourOfAKind:   {"Four of a Kind", 60, 7},
	StraightFlush: {"Straight Flush", 100, 8},
	FiveOfAKind:   {"Five of a Kind", 120, 12},
	FlushHouse:    {"Flush House", 140, 14},
	FlushFive:     {"Flush Five", 160, 16},
}

// Categories returns every category from lowest to highest precedence
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	for i := range categoryTable {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c >= HighCard && int(c) < len(categoryTable)
}

// String returns the display name of the category
func (c Category) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return categoryTable[c].name
}

// BaseChips returns the chips the category scores before card values
func (c Category) BaseChips() int {
	if !c.Valid() {
		return 0
	}
	return categoryTable[c].chips
}

// BaseMult returns the multiplier the category scores before card values
func (c Category) BaseMult() int {
	if !c.Valid() {
		return 0
	}
	return categoryTable[c].mult
}

// BaseScore returns a fresh Score holding only the category's base values
func (c Category) BaseScore() Score {
	return Score{Category: c, Chips: c.BaseChips(), Mult: c.BaseMult()}
}
