package types

// handle addresses a slot in an arena. The zero handle means "no node",
// so zero-value containers are ready to use.
type handle int

const nilHandle handle = 0

type slot[T comparable] struct {
	prev, next handle

	value T
}

func (s *slot[T]) equal(other *slot[T]) bool {
	return s.value == other.value
}

// arena owns every node of one container. Released slots are kept on a
// free list and handed out again by alloc.
type arena[T comparable] struct {
	slots []slot[T]
	free  []handle
}

// alloc only creates the node, it never touches neighbours.
func (a *arena[T]) alloc(value T) handle {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h-1] = slot[T]{value: value}
		return h
	}

	a.slots = append(a.slots, slot[T]{value: value})
	return handle(len(a.slots))
}

func (a *arena[T]) release(h handle) {
	a.slots[h-1] = slot[T]{}
	a.free = append(a.free, h)
}

func (a *arena[T]) at(h handle) *slot[T] {
	return &a.slots[h-1]
}

// chain is a doubly linked sequence of arena slots.
type chain[T comparable] struct {
	nodes arena[T]
	front handle
	last  handle
	size  int
}

func (c *chain[T]) next(h handle) handle {
	return c.nodes.at(h).next
}

func (c *chain[T]) prev(h handle) handle {
	return c.nodes.at(h).prev
}

func (c *chain[T]) value(h handle) T {
	return c.nodes.at(h).value
}

// linkBetween splices the detached node h in between prev and next, which
// must be adjacent (either may be nilHandle at the ends).
func (c *chain[T]) linkBetween(h, prev, next handle) {
	n := c.nodes.at(h)
	n.prev, n.next = prev, next

	if prev == nilHandle {
		c.front = h
	} else {
		c.nodes.at(prev).next = h
	}

	if next == nilHandle {
		c.last = h
	} else {
		c.nodes.at(next).prev = h
	}

	c.size++
}

// unlink detaches h and repairs both neighbours. The slot is not released.
func (c *chain[T]) unlink(h handle) {
	n := c.nodes.at(h)

	if n.prev == nilHandle {
		c.front = n.next
	} else {
		c.nodes.at(n.prev).next = n.next
	}

	if n.next == nilHandle {
		c.last = n.prev
	} else {
		c.nodes.at(n.next).prev = n.prev
	}

	n.prev, n.next = nilHandle, nilHandle
	c.size--
}

func (c *chain[T]) pushBack(value T) handle {
	h := c.nodes.alloc(value)
	c.linkBetween(h, c.last, nilHandle)
	return h
}

func (c *chain[T]) insertBefore(value T, at handle) handle {
	h := c.nodes.alloc(value)
	c.linkBetween(h, c.prev(at), at)
	return h
}

func (c *chain[T]) insertAfter(value T, at handle) handle {
	h := c.nodes.alloc(value)
	c.linkBetween(h, at, c.next(at))
	return h
}

func (c *chain[T]) remove(h handle) T {
	value := c.value(h)
	c.unlink(h)
	c.nodes.release(h)
	return value
}

// nodeAt walks from the front. The caller validates index.
func (c *chain[T]) nodeAt(index int) handle {
	h := c.front
	for i := 0; i < index; i++ {
		h = c.next(h)
	}
	return h
}
