package mines

import "strconv"

// MaxCount is the largest possible number of mined neighbours.
const MaxCount = 8

// Symbol is the player-visible state of a cell.
type Symbol string

const (
	SymbolHidden Symbol = "h"
	SymbolFlag   Symbol = "f"
	SymbolMine   Symbol = "m"
)

// SymbolCount returns the symbol of an open cell with n mined neighbours.
func SymbolCount(n int) Symbol {
	return Symbol(strconv.Itoa(n))
}

func (s Symbol) Valid() bool {
	_, ok := s.piece()
	return ok
}

func (s Symbol) String() string {
	return string(s)
}

// Piece maps s onto the fixed set of board pieces. Unknown symbols map
// to [Base].
func (s Symbol) Piece() Piece {
	p, _ := s.piece()
	return p
}

func (s Symbol) piece() (Piece, bool) {
	switch s {
	case SymbolHidden:
		return Base, true
	case SymbolFlag:
		return Flag, true
	case SymbolMine:
		return Mine, true
	}
	if len(s) == 1 && '0' <= s[0] && s[0] <= '8' {
		return Piece(s[0] - '0'), true
	}
	return Base, false
}

type Piece uint8

const (
	Empty Piece = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Base
	Mine
	Flag
)

// Cell is the state of a single grid position. The mine and count fields
// are written only while the board is being initialized.
type Cell struct {
	hidden  bool
	flagged bool
	mine    bool
	count   int
}

func newCell() Cell {
	return Cell{hidden: true}
}

// empty cells propagate the flood fill to their neighbours
func (c Cell) empty() bool {
	return !c.mine && !c.flagged && c.count == 0
}

func (c Cell) correct() bool {
	return c.flagged && c.mine
}

// Symbol reports what the player sees. A flag hides everything below it,
// a covered cell hides its mine or count.
func (c Cell) Symbol() Symbol {
	switch {
	case c.flagged:
		return SymbolFlag
	case c.hidden:
		return SymbolHidden
	case c.mine:
		return SymbolMine
	default:
		return SymbolCount(c.count)
	}
}
