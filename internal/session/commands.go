package session

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
)

// Maps known commands to number of arguments, -1 for any
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"r": 0,
	"n": -1,
	"h": 0,
	"q": 0,
}

const usage = `commands:
  o ROW COL   open a cell
  f ROW COL   toggle a flag
  g           print the board
  r           restart with the same size
  n [preset=NAME] [rows=R] [cols=C] [mines=M]
              start a new board
  h           this help
  q           quit
several commands may be joined with ';'
`

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("column must be an int")
		return
	}
	return
}

// NewGameParams are the arguments of the "n" command. Sizes left out fall
// back to the named preset, or the default preset when none is named.
type NewGameParams struct {
	Preset string `schema:"preset"`
	Rows   *int   `schema:"rows"`
	Cols   *int   `schema:"cols"`
	Mines  *int   `schema:"mines"`
}

func parseNewGameParams(dec *schema.Decoder, args []string) (NewGameParams, error) {
	src := make(map[string][]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return NewGameParams{}, fmt.Errorf("argument %q must look like key=value", arg)
		}
		src[key] = append(src[key], value)
	}

	var params NewGameParams
	err := dec.Decode(&params, src)
	return params, err
}

func (p NewGameParams) Resolve(cfg *config.Config) (config.Preset, error) {
	name := p.Preset
	if name == "" {
		name = cfg.DefaultPreset
	}
	base, err := cfg.Preset(name)
	if err != nil {
		return config.Preset{}, err
	}
	if p.Rows != nil {
		base.Rows = *p.Rows
	}
	if p.Cols != nil {
		base.Cols = *p.Cols
	}
	if p.Mines != nil {
		base.Mines = *p.Mines
	}
	return base, nil
}
