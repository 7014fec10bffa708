// Package session drives a [mines.Board] from line-based text commands.
// It is the thin collaborator around the engine: it parses coordinates,
// forwards moves and prints the board's symbols.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Session struct {
	log     *logrus.Logger
	cfg     *config.Config
	out     io.Writer
	dec     *schema.Decoder
	options []mines.Option
	board   *mines.Board
}

// New starts a session on the config's default preset. options are passed
// to every board the session creates and may replace the session's logger.
func New(
	cfg *config.Config,
	out io.Writer,
	log *logrus.Logger,
	options ...mines.Option,
) (*Session, error) {
	s := &Session{
		log:     log,
		cfg:     cfg,
		out:     out,
		dec:     schema.NewDecoder(),
		options: append([]mines.Option{mines.WithLogger(log)}, options...),
	}

	preset, err := cfg.Preset(cfg.DefaultPreset)
	if err != nil {
		return nil, err
	}
	if err := s.newBoard(preset); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Board() *mines.Board {
	return s.board
}

func (s *Session) newBoard(p config.Preset) error {
	board, err := mines.New(p.Rows, p.Cols, p.Mines, s.options...)
	if err != nil {
		return err
	}
	s.board = board
	s.log.WithField("preset", p.String()).Info("new board")
	return nil
}

// Run executes commands read from in until EOF, a quit command or ctx is
// done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errCh := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	s.printBoard()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				select {
				case err := <-errCh:
					return err
				default:
					return ctx.Err()
				}
			}
			if err := s.Execute(line); errors.Is(err, ErrQuit) {
				return nil
			}
		}
	}
}

// Execute runs one input line. Rejected commands are reported to the
// player and stop the rest of the line; only [ErrQuit] is returned.
func (s *Session) Execute(line string) error {
	for _, c := range byPiece(line, ";") {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		err := s.execute(c)
		if errors.Is(err, ErrQuit) {
			return err
		}
		if err != nil {
			s.log.WithError(err).WithField("command", c).Debug("command rejected")
			fmt.Fprintf(s.out, "error: %s\n", err)
			return nil
		}
	}
	return nil
}

func (s *Session) execute(c string) error {
	parts := strings.Fields(c)
	name, args := parts[0], parts[1:]

	nargs, ok := commandNargs[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if nargs >= 0 && nargs != len(args) {
		return fmt.Errorf("%w for %q: have %d, want %d", ErrBadArgs, name, len(args), nargs)
	}

	switch name {
	case "g":
		s.printBoard()
	case "o":
		return s.move(args, s.board.Step)
	case "f":
		return s.move(args, s.board.Flag)
	case "r":
		s.board.Reset()
		s.printBoard()
	case "n":
		params, err := parseNewGameParams(s.dec, args)
		if err != nil {
			return err
		}
		preset, err := params.Resolve(s.cfg)
		if err != nil {
			return err
		}
		if err := s.newBoard(preset); err != nil {
			return err
		}
		s.printBoard()
	case "h":
		fmt.Fprint(s.out, usage)
	case "q":
		return ErrQuit
	}
	return nil
}

func (s *Session) move(args []string, do func(row, col int) error) error {
	if s.board.GameOver() {
		fmt.Fprintln(s.out, "game over, r to play again")
		return nil
	}

	row, col, err := parseRowCol(args)
	if err != nil {
		return err
	}
	if err := do(row, col); err != nil {
		return err
	}

	if s.board.GameOver() {
		s.log.WithFields(logrus.Fields{
			"won":     s.board.HasWon(),
			"elapsed": s.board.Elapsed().String(),
		}).Info("game over")
	}
	s.printBoard()
	return nil
}

func (s *Session) printBoard() {
	fmt.Fprint(s.out, s.board.String())
	fmt.Fprintf(s.out, "mines left: %d  time: %ds\n",
		s.board.MinesLeft(), int64(s.board.Elapsed()/time.Second),
	)
	if s.board.GameOver() {
		if s.board.HasWon() {
			fmt.Fprintln(s.out, "GG")
		} else {
			fmt.Fprintln(s.out, "Game Over")
		}
	}
}
