package util

import "errors"

var ErrAlreadySet = errors.New("util: cell already set")

// Cell is a present/absent slot that accepts exactly one write.
type Cell[T any] struct {
	val T
	ok  bool
}

// Set stores v, or returns ErrAlreadySet leaving the first value in place.
func (c *Cell[T]) Set(v T) error {
	if c.ok {
		return ErrAlreadySet
	}
	c.val, c.ok = v, true
	return nil
}

func (c *Cell[T]) Get() (T, bool) { return c.val, c.ok }

func (c *Cell[T]) IsSet() bool { return c.ok }

// GetOr returns the stored value or def when the cell is empty.
func (c *Cell[T]) GetOr(def T) T {
	if !c.ok {
		return def
	}
	return c.val
}
