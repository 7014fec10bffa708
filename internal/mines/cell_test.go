package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellSymbol(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want Symbol
	}{
		{"new", newCell(), SymbolHidden},
		{"hidden mine", Cell{hidden: true, mine: true}, SymbolHidden},
		{"hidden count", Cell{hidden: true, count: 3}, SymbolHidden},
		{"open empty", Cell{count: 0}, "0"},
		{"open one", Cell{count: 1}, "1"},
		{"open eight", Cell{count: 8}, "8"},
		{"open mine", Cell{mine: true, count: 2}, SymbolMine},
		{"flag over hidden", Cell{flagged: true, hidden: true}, SymbolFlag},
		{"flag over open", Cell{flagged: true}, SymbolFlag},
		{"flag over mine", Cell{flagged: true, mine: true}, SymbolFlag},
		{"flag over open mine", Cell{flagged: true, hidden: false, mine: true}, SymbolFlag},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.cell.Symbol())
			assert.True(t, test.cell.Symbol().Valid())
		})
	}
}

func TestCellPredicates(t *testing.T) {
	assert.True(t, Cell{}.empty())
	assert.True(t, newCell().empty(), "covered cells with no count are still empty")
	assert.False(t, Cell{count: 1}.empty())
	assert.False(t, Cell{mine: true}.empty())
	assert.False(t, Cell{flagged: true}.empty())

	assert.True(t, Cell{flagged: true, mine: true}.correct())
	assert.False(t, Cell{flagged: true}.correct())
	assert.False(t, Cell{mine: true}.correct())
}

func TestSymbolPiece(t *testing.T) {
	for n := range MaxCount + 1 {
		assert.Equal(t, Piece(n), SymbolCount(n).Piece())
	}
	assert.Equal(t, Base, SymbolHidden.Piece())
	assert.Equal(t, Flag, SymbolFlag.Piece())
	assert.Equal(t, Mine, SymbolMine.Piece())

	for _, s := range []Symbol{"", "9", "x", "10", "H"} {
		assert.False(t, s.Valid(), "symbol %q", s)
		assert.Equal(t, Base, s.Piece())
	}
}
