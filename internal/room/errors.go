package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Seednode/bingohub/internal/bingo"
	"github.com/Seednode/bingohub/internal/store"
)

var (
	// ErrRoomNotFound means the room code does not name a live room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrAccessDenied means the write touched a field the caller does not own.
	ErrAccessDenied = errors.New("access denied")
	// ErrExhausted means all 75 numbers have been called.
	ErrExhausted = bingo.ErrExhausted
	// ErrServiceUnavailable means the store could not be reached. It never
	// means the room is gone.
	ErrServiceUnavailable = errors.New("service unavailable")

	ErrNoSession      = errors.New("not in a room")
	ErrAlreadyInRoom  = errors.New("already in a room")
	ErrInvalidName    = errors.New("name must not be empty")
	ErrNotPlaying     = errors.New("game is not in progress")
	ErrInvalidCell    = errors.New("no such cell")
	ErrNotCalled      = errors.New("number has not been called")
	ErrNotWinning     = errors.New("card has no completed line")
	ErrWinnerDeclared = errors.New("a winner has already been declared")
	ErrInvalidConfig  = errors.New("invalid room configuration")
	ErrStale          = errors.New("room changed while the request was in flight, retry")
)

// translate maps store failures onto the room error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrRoomNotFound
	case errors.Is(err, store.ErrAccessDenied):
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case errors.Is(err, store.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	case errors.Is(err, store.ErrConflict):
		return ErrStale
	}
	return err
}
