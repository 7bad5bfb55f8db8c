package types

import (
	"strconv"
	"strings"
)

// List is a doubly linked list of integers. Positional access walks from
// the front, so it costs O(index). A List is not safe for concurrent use.
//
// The zero value is an empty list ready to use.
type List struct {
	c chain[int]
}

func NewList() *List {
	return &List{}
}

// Prepend returns a new list holding value followed by a copy of rest.
// The two lists share no nodes.
func Prepend(value int, rest *List) *List {
	l := NewList()
	l.Append(value)
	if rest == nil {
		return l
	}

	for h := rest.c.front; h != nilHandle; h = rest.c.next(h) {
		l.c.pushBack(rest.c.value(h))
	}

	return l
}

func (l *List) checkIndex(index int) error {
	if index < 0 || index >= l.c.size {
		return &IndexError{Index: index, Size: l.c.size}
	}
	return nil
}

// Get returns the value at index, counting the front as 0.
func (l *List) Get(index int) (int, error) {
	if err := l.checkIndex(index); err != nil {
		return 0, err
	}

	return l.c.value(l.c.nodeAt(index)), nil
}

// IndexOf returns the position of the first occurrence of value, or -1.
func (l *List) IndexOf(value int) int {
	index := 0
	for h := l.c.front; h != nilHandle; h = l.c.next(h) {
		if l.c.value(h) == value {
			return index
		}
		index++
	}

	return -1
}

func (l *List) Append(value int) {
	l.c.pushBack(value)
}

// InsertAt inserts value so that it ends up at index. An index equal to
// Size appends.
func (l *List) InsertAt(index, value int) error {
	if index == l.c.size {
		l.Append(value)
		return nil
	}
	if err := l.checkIndex(index); err != nil {
		return err
	}

	l.c.insertBefore(value, l.c.nodeAt(index))
	return nil
}

// AddAlternative inserts value after the nodes originally at positions
// 0, 2, 4, ... of the list. The last node reached gets a copy as well.
// On an empty list it appends.
func (l *List) AddAlternative(value int) {
	if l.c.size == 0 {
		l.Append(value)
		return
	}

	h := l.c.front
	for h != nilHandle {
		skip := l.c.next(h)
		l.c.insertAfter(value, h)
		if skip == nilHandle {
			return
		}
		h = l.c.next(skip)
	}
}

// AddAll inserts values as one contiguous block starting at index,
// keeping their order. An index equal to Size appends them.
func (l *List) AddAll(index int, values ...int) error {
	if index < 0 || index > l.c.size {
		return &ArgumentError{Index: index, Size: l.c.size}
	}

	if index == l.c.size {
		for _, v := range values {
			l.c.pushBack(v)
		}
		return nil
	}

	at := l.c.nodeAt(index)
	for _, v := range values {
		l.c.insertBefore(v, at)
	}

	return nil
}

// Remove deletes the element at index.
func (l *List) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}

	l.c.remove(l.c.nodeAt(index))
	return nil
}

func (l *List) Size() int {
	return l.c.size
}

// Equal reports whether both lists hold the same values in the same order.
func (l *List) Equal(other *List) bool {
	if other == nil || l.c.size != other.c.size {
		return false
	}

	a, b := l.c.front, other.c.front
	for a != nilHandle {
		if !l.c.nodes.at(a).equal(other.c.nodes.at(b)) {
			return false
		}
		a, b = l.c.next(a), other.c.next(b)
	}

	return true
}

// Values returns the elements from front to last.
func (l *List) Values() []int {
	values := make([]int, 0, l.c.size)
	for h := l.c.front; h != nilHandle; h = l.c.next(h) {
		values = append(values, l.c.value(h))
	}

	return values
}

// String renders the list as "[v0, v1, ..., vN]".
func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for h := l.c.front; h != nilHandle; h = l.c.next(h) {
		if h != l.c.front {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(l.c.value(h)))
	}
	sb.WriteByte(']')

	return sb.String()
}

// StringReverse renders the list from last to front following the
// previous links.
func (l *List) StringReverse() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for h := l.c.last; h != nilHandle; h = l.c.prev(h) {
		if h != l.c.last {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(l.c.value(h)))
	}
	sb.WriteByte(']')

	return sb.String()
}
