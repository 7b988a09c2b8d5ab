// Package order maintains dense, gap-free, zero-based positions for the
// ordered containers of the board: the board's columns and each column's
// tasks. Every operation shifts exactly one contiguous range of siblings by
// one; nothing ever renumbers a whole container.
//
// The package is pure bookkeeping over the Container seam. The caller owns
// the entity write that accompanies each shift (the INSERT of a created row,
// the UPDATE of a moved one) and the transaction both statements run in.
package order

import (
	"context"
	"fmt"
)

// Container is one sibling group sharing a position namespace.
//
// Implementations back onto a SQL table, an in-memory slice, or anything else
// that can report its size and shift a contiguous order range atomically.
type Container interface {
	// Size returns the number of entities currently in the container.
	Size(ctx context.Context) (int, error)

	// ShiftRange adds delta to the order of every entity whose order lies in
	// the inclusive range [lo, hi]. It must execute as a single atomic
	// statement against the backing store; intermediate states in which two
	// siblings share an order must not be observable outside the enclosing
	// transaction.
	ShiftRange(ctx context.Context, lo, hi, delta int) error
}

// Append reserves the position one past the current tail and returns it.
// No siblings move.
func Append(ctx context.Context, c Container) (int, error) {
	size, err := c.Size(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to size container: %w", err)
	}
	return size, nil
}

// InsertAt makes room at the requested position and returns the position the
// new entity must be written with. The request is clamped to [0, size]: a
// negative request lands at the head, anything past the tail appends. When
// the position is inside the container, the tail [at, size-1] shifts up by
// one.
func InsertAt(ctx context.Context, c Container, at int) (int, error) {
	size, err := c.Size(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to size container: %w", err)
	}
	at = clamp(at, 0, size)
	if at < size {
		if err := c.ShiftRange(ctx, at, size-1, +1); err != nil {
			return 0, fmt.Errorf("failed to shift siblings up: %w", err)
		}
	}
	return at, nil
}

// Remove closes the gap left behind at position at. It must be called after
// the entity's own row is already gone, so Size reports the survivors only.
// Every sibling above the gap shifts down by one; removing the tail shifts
// nothing.
func Remove(ctx context.Context, c Container, at int) error {
	size, err := c.Size(ctx)
	if err != nil {
		return fmt.Errorf("failed to size container: %w", err)
	}
	// Survivors above the gap occupy [at+1, size]; the count equals the old
	// tail position, so size doubles as the inclusive upper bound.
	if at+1 > size {
		return nil
	}
	if err := c.ShiftRange(ctx, at+1, size, -1); err != nil {
		return fmt.Errorf("failed to shift siblings down: %w", err)
	}
	return nil
}

// Reposition moves the entity currently at from to the requested position and
// returns the position the entity must be rewritten with. The request is
// clamped to [0, size-1]. Only the siblings strictly between the two
// positions move: toward the head they shift up, toward the tail they shift
// down, and a request for the current position shifts nothing.
func Reposition(ctx context.Context, c Container, from, to int) (int, error) {
	size, err := c.Size(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to size container: %w", err)
	}
	to = clamp(to, 0, size-1)
	switch {
	case to == from:
	case to < from:
		if err := c.ShiftRange(ctx, to, from-1, +1); err != nil {
			return 0, fmt.Errorf("failed to shift siblings up: %w", err)
		}
	default:
		if err := c.ShiftRange(ctx, from+1, to, -1); err != nil {
			return 0, fmt.Errorf("failed to shift siblings down: %w", err)
		}
	}
	return to, nil
}

// IsDense reports whether orders is a permutation of 0..len(orders)-1, the
// at-rest invariant of every container.
func IsDense(orders []int) bool {
	seen := make([]bool, len(orders))
	for _, o := range orders {
		if o < 0 || o >= len(orders) || seen[o] {
			return false
		}
		seen[o] = true
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
