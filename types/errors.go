package types

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidArgument = errors.New("invalid argument")
)

// IndexError reports a position outside [0, Size) where an existing
// element was required.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: index %d, size %d", e.Index, e.Size)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ArgumentError reports an insertion index outside [0, Size].
type ArgumentError struct {
	Index int
	Size  int
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: insertion index %d, size %d", e.Index, e.Size)
}

func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
