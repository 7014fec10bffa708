package mines

import (
	"fmt"
	"iter"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type State uint8

const (
	Fresh State = iota
	Active
	Over
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Active:
		return "active"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// Board is a single game. It is not safe for concurrent use; callers that
// share a Board between goroutines must hold one lock per Board.
type Board struct {
	rows, cols, mines int

	cells       []Cell // row-major, see [Board.index]
	initialized bool
	gameOver    bool
	startedAt   *time.Time
	stoppedAt   *time.Time

	sampler Sampler
	clock   Clock
	log     *logrus.Logger
}

type Option = func(*Board)

func WithSampler(s Sampler) Option {
	return func(b *Board) {
		b.sampler = s
	}
}

func WithClock(c Clock) Option {
	return func(b *Board) {
		b.clock = c
	}
}

func WithLogger(l *logrus.Logger) Option {
	return func(b *Board) {
		b.log = l
	}
}

// MaxMines is the largest mine count accepted for a rows x cols board:
// half the cells, rounded down.
func MaxMines(rows, cols int) int {
	return rows * cols / 2
}

func New(rows, cols, mines int, options ...Option) (*Board, error) {
	switch {
	case rows <= 0 || cols <= 0:
		return nil, fmt.Errorf(
			"%w: board must be at least 1x1 (have %dx%d)",
			ErrInvalidConfiguration, rows, cols,
		)
	case rows > math.MaxInt/cols:
		return nil, fmt.Errorf(
			"%w: board %dx%d has too many cells", ErrInvalidConfiguration, rows, cols,
		)
	case mines < 0:
		return nil, fmt.Errorf(
			"%w: negative mine count %d", ErrInvalidConfiguration, mines,
		)
	case mines > MaxMines(rows, cols):
		return nil, fmt.Errorf(
			"%w: too many mines (max. %d, have %d)",
			ErrInvalidConfiguration, MaxMines(rows, cols), mines,
		)
	}

	b := &Board{
		rows:  rows,
		cols:  cols,
		mines: mines,
		cells: newGrid(rows * cols),
	}
	for _, op := range options {
		op(b)
	}
	if b.sampler == nil {
		b.sampler = DefaultSampler()
	}
	if b.clock == nil {
		b.clock = SystemClock{}
	}
	if b.log == nil {
		b.log = Log
	}
	return b, nil
}

func newGrid(size int) []Cell {
	cells := make([]Cell, size)
	for i := range cells {
		cells[i] = newCell()
	}
	return cells
}

func (b *Board) Rows() int { return b.rows }
func (b *Board) Cols() int { return b.cols }
func (b *Board) Mines() int { return b.mines }

func (b *Board) Initialized() bool { return b.initialized }
func (b *Board) GameOver() bool { return b.gameOver }

func (b *Board) State() State {
	switch {
	case b.gameOver:
		return Over
	case b.initialized:
		return Active
	default:
		return Fresh
	}
}

func (b *Board) fields() logrus.Fields {
	return logrus.Fields{
		"rows":  b.rows,
		"cols":  b.cols,
		"mines": b.mines,
	}
}

func (b *Board) contains(p Point) bool {
	return 0 <= p.Row && p.Row < b.rows && 0 <= p.Col && p.Col < b.cols
}

// index must only be called with points that passed [Board.contains].
func (b *Board) index(p Point) int {
	return p.Row*b.cols + p.Col
}

func (b *Board) point(row, col int) (Point, error) {
	p := Point{row, col}
	if !b.contains(p) {
		return p, &OutOfBoundsError{
			Row: row, Col: col, Rows: b.rows, Cols: b.cols,
		}
	}
	return p, nil
}

// neighbours yields the in-bounds Moore neighbourhood of p, p excluded.
func (b *Board) neighbours(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				q := Point{p.Row + dr, p.Col + dc}
				if (dr == 0 && dc == 0) || !b.contains(q) {
					continue
				}
				if !yield(q) {
					return
				}
			}
		}
	}
}

// At returns the symbol shown for the cell at row, col.
func (b *Board) At(row, col int) (Symbol, error) {
	p, err := b.point(row, col)
	if err != nil {
		return "", err
	}
	return b.cells[b.index(p)].Symbol(), nil
}

// activate performs the Fresh -> Active transition. Both [Board.Step] and
// [Board.Flag] funnel through here so the first touched cell is always
// mine-free.
func (b *Board) activate(first Point) {
	if b.State() != Fresh {
		return
	}
	b.initialize(first)
}

// panics [AssertionError]
func (b *Board) initialize(first Point) {
	population := make([]Point, 0, b.rows*b.cols-1)
	for row := range b.rows {
		for col := range b.cols {
			if p := (Point{row, col}); p != first {
				population = append(population, p)
			}
		}
	}

	picked := b.sampler.Sample(population, b.mines)
	if len(picked) != b.mines {
		panic(AssertionError{fmt.Sprintf(
			"sampler returned %d points, want %d", len(picked), b.mines,
		)})
	}

	/*
	 * Lay the mines on a scratch grid so a bad draw leaves the board
	 * untouched.
	 */
	cells := newGrid(b.rows * b.cols)
	for _, p := range picked {
		if !b.contains(p) || p == first {
			panic(AssertionError{fmt.Sprintf("invalid mine position %v", p)})
		}
		i := b.index(p)
		if cells[i].mine {
			panic(AssertionError{fmt.Sprintf("duplicate mine position %v", p)})
		}
		cells[i].mine = true

		for q := range b.neighbours(p) {
			c := &cells[b.index(q)]
			if c.count < MaxCount {
				c.count++
			}
		}
	}

	b.cells = cells
	b.initialized = true
	now := b.clock.Now()
	b.startedAt = &now

	b.log.WithFields(b.fields()).WithField("first", first).Debug("board initialized")
}

func (b *Board) stop() {
	now := b.clock.Now()
	b.stoppedAt = &now
	b.gameOver = true
}

// Step digs the cell at row, col. Flagged cells are left alone. Opening a
// cell with no mined neighbours opens its whole zero region together with
// the numbered cells around it.
func (b *Board) Step(row, col int) error {
	p, err := b.point(row, col)
	if err != nil {
		return err
	}

	b.activate(p)

	if b.gameOver {
		return ErrGameOver
	}

	c := &b.cells[b.index(p)]
	if c.flagged {
		return nil
	}
	c.hidden = false

	if c.empty() {
		b.reveal(p)
	}

	if c.mine {
		b.stop()
		b.log.WithFields(b.fields()).WithField("cell", p).Debug("mine stepped, game lost")
	}

	return nil
}

// reveal opens the connected region of empty cells around start, walking
// it with an explicit stack. Numbered cells on the border are opened but
// not expanded.
func (b *Board) reveal(start Point) {
	stack := []Point{start}
	visited := make(map[Point]struct{})

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}

		c := &b.cells[b.index(p)]
		c.hidden = false
		if !c.empty() {
			continue
		}

		for q := range b.neighbours(p) {
			if _, ok := visited[q]; !ok {
				stack = append(stack, q)
			}
		}
	}
}

// Flag toggles the flag on the cell at row, col. The hidden bit flips with
// it, so flagging covers the cell's identity and unflagging restores it.
func (b *Board) Flag(row, col int) error {
	p, err := b.point(row, col)
	if err != nil {
		return err
	}

	b.activate(p)

	if b.gameOver {
		return ErrGameOver
	}

	c := &b.cells[b.index(p)]
	c.flagged = !c.flagged
	c.hidden = !c.hidden

	if b.HasWon() {
		b.stop()
		b.log.WithFields(b.fields()).Debug("all mines flagged, game won")
	}

	return nil
}

// HasWon reports whether every mine carries a flag. Flags on safe cells
// and covered safe cells do not matter.
func (b *Board) HasWon() bool {
	correct := 0
	for _, c := range b.cells {
		if c.correct() {
			correct++
		}
	}
	return correct == b.mines
}

// MinesLeft is the mine count minus the number of flags. It goes
// negative when the player over-flags.
func (b *Board) MinesLeft() int {
	flagged := 0
	for _, c := range b.cells {
		if c.flagged {
			flagged++
		}
	}
	return b.mines - flagged
}

func (b *Board) Elapsed() time.Duration {
	if b.startedAt == nil {
		return 0
	}
	end := b.clock.Now()
	if b.stoppedAt != nil {
		end = *b.stoppedAt
	}
	return end.Sub(*b.startedAt)
}

func (b *Board) Reset() {
	b.initialized = false
	b.gameOver = false
	b.startedAt = nil
	b.stoppedAt = nil
	b.cells = newGrid(b.rows * b.cols)

	b.log.WithFields(b.fields()).Debug("board reset")
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row*b.cols+col].Symbol().String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
