package cache

// ring is a circular recency list of cached runs with a sentinel node.
// root.next is the most recently used entry, root.prev the least.
// It is not safe for concurrent use; the owning shard locks around it.
type ring[V any] struct {
	root entry[V]
	n    int
}

// entry is a cached run linked into its shard's ring.
type entry[V any] struct {
	key        ShapingKey
	value      V
	prev, next *entry[V]
}

func (r *ring[V]) init() {
	r.root.prev = &r.root
	r.root.next = &r.root
	r.n = 0
}

// insert links a new entry at the front and returns it.
func (r *ring[V]) insert(key ShapingKey, value V) *entry[V] {
	e := &entry[V]{key: key, value: value}
	r.link(e)
	r.n++
	return e
}

// touch moves e to the front.
func (r *ring[V]) touch(e *entry[V]) {
	if r.root.next == e {
		return
	}
	r.unlink(e)
	r.link(e)
}

// drop unlinks e.
func (r *ring[V]) drop(e *entry[V]) {
	r.unlink(e)
	r.n--
}

// oldest returns the least recently used entry, or nil when empty.
func (r *ring[V]) oldest() *entry[V] {
	if r.n == 0 {
		return nil
	}
	return r.root.prev
}

func (r *ring[V]) link(e *entry[V]) {
	e.prev = &r.root
	e.next = r.root.next
	r.root.next.prev = e
	r.root.next = e
}

func (r *ring[V]) unlink(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
}
