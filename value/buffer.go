package value

// buf is a growable element buffer with room for one inline element, so
// singletons never touch the heap.
type buf[T any] struct {
	items []T
	one   [1]T
}

func (b *buf[T]) reserve(n int) {
	if n <= cap(b.items) {
		return
	}
	if n == 1 && b.items == nil {
		b.items = b.one[:0]
		return
	}
	c := max(n, 2*cap(b.items))
	items := make([]T, len(b.items), c)
	copy(items, b.items)
	clear(b.one[:])
	b.items = items
}

func (b *buf[T]) push(x T) {
	b.reserve(len(b.items) + 1)
	b.items = append(b.items, x)
}

// resize sets the length. Growth exposes zero values; shrinking zeroes the
// dropped tail so it holds no references.
func (b *buf[T]) resize(n int) {
	if n < len(b.items) {
		clear(b.items[n:])
		b.items = b.items[:n]
		return
	}
	b.reserve(n)
	old := len(b.items)
	b.items = b.items[:n]
	clear(b.items[old:])
}

func (b *buf[T]) erase(i int) {
	n := len(b.items)
	copy(b.items[i:], b.items[i+1:])
	var zero T
	b.items[n-1] = zero
	b.items = b.items[:n-1]
}
