package pool

// Resettable is a constraint for types that have a Reset() method.
type Resettable interface {
	Reset()
}

// Poolable is a constraint for types that can be pooled (must be resettable and comparable).
type Poolable interface {
	Resettable
	comparable
}

// Pool is a bounded free list of reusable objects, e.g. response buffers.
type Pool[T Poolable] struct {
	items   chan T
	newItem func() T
}

// New creates a Pool holding at most capacity idle objects. newItem is
// called whenever Get finds the pool empty.
func New[T Poolable](capacity int, newItem func() T) *Pool[T] {
	return &Pool[T]{
		items:   make(chan T, capacity),
		newItem: newItem,
	}
}

// Get returns an idle object or a freshly created one.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		return p.newItem()
	}
}

// Put resets item and keeps it for reuse. Zero values are ignored and the
// item is dropped when the pool is full.
func (p *Pool[T]) Put(item T) {
	var zero T
	if item == zero {
		return
	}
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Idle reports how many objects are waiting for reuse.
func (p *Pool[T]) Idle() int {
	return len(p.items)
}
