package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	log.SetOutput(io.Discard)
	s, err := session.New(config.Default(), io.Discard, log)
	require.NoError(t, err)
	return s
}

func runAsync(ctx context.Context, s *session.Session, in io.ReadCloser) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, s, in)
	}()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
		return nil
	}
}

func TestRunQuitClosesInput(t *testing.T) {
	s := newTestSession(t)
	r, w := io.Pipe()

	done := runAsync(context.Background(), s, r)
	_, err := io.WriteString(w, "o 0 0\nq\n")
	require.NoError(t, err)

	assert.NoError(t, wait(t, done))

	_, err = io.WriteString(w, "g\n")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestRunCancelUnblocksRead(t *testing.T) {
	s := newTestSession(t)
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, s, r)
	cancel()

	assert.ErrorIs(t, wait(t, done), context.Canceled)

	_, err := io.WriteString(w, "g\n")
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
