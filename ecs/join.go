package ecs

// borrowSet tracks the storages borrowed for the duration of a join.
type borrowSet struct {
	exclusive bool
	held      []iComponentStorage
}

// acquire borrows every non-nil storage. If one borrow fails the ones already
// taken are released before the panic propagates.
func acquire(exclusive bool, cols ...iComponentStorage) (b borrowSet) {
	b.exclusive = exclusive
	b.held = make([]iComponentStorage, 0, len(cols))

	defer func() {
		if r := recover(); r != nil {
			b.release()
			panic(r)
		}
	}()

	for _, col := range cols {
		if col == nil {
			continue
		}
		col.borrow(exclusive)
		b.held = append(b.held, col)
	}
	return b
}

func (b borrowSet) release() {
	for i := len(b.held) - 1; i >= 0; i-- {
		b.held[i].release(b.exclusive)
	}
}

// WithComponents1 calls fn with the entity's A, or nil if it has none. The
// pointer must be treated as read-only.
func WithComponents1[A any](w *World, e Entity, fn func(a *A)) {
	ca := lookupColumn[A](w.components)

	b := acquire(false, erase(ca))
	defer b.release()

	fn(ca.get(e))
}

// WithComponentsMut1 calls fn with a mutable pointer to the entity's A, or nil.
func WithComponentsMut1[A any](w *World, e Entity, fn func(a *A)) {
	ca := lookupColumn[A](w.components)

	b := acquire(true, erase(ca))
	defer b.release()

	fn(ca.get(e))
}

// WithComponents2 calls fn with the entity's A and B. Either is nil when the
// entity does not hold it. The pointers must be treated as read-only.
func WithComponents2[A, B any](w *World, e Entity, fn func(a *A, b *B)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)

	b := acquire(false, erase(ca), erase(cb))
	defer b.release()

	fn(ca.get(e), cb.get(e))
}

// WithComponentsMut2 calls fn with mutable pointers to the entity's A and B.
// A and B must be different types.
func WithComponentsMut2[A, B any](w *World, e Entity, fn func(a *A, b *B)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)

	b := acquire(true, erase(ca), erase(cb))
	defer b.release()

	fn(ca.get(e), cb.get(e))
}

// WithComponents3 calls fn with the entity's A, B and C, each nil when
// missing. The pointers must be treated as read-only.
func WithComponents3[A, B, C any](w *World, e Entity, fn func(a *A, b *B, c *C)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)
	cc := lookupColumn[C](w.components)

	b := acquire(false, erase(ca), erase(cb), erase(cc))
	defer b.release()

	fn(ca.get(e), cb.get(e), cc.get(e))
}

// WithComponentsMut3 calls fn with mutable pointers to the entity's A, B and
// C. The three types must be distinct.
func WithComponentsMut3[A, B, C any](w *World, e Entity, fn func(a *A, b *B, c *C)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)
	cc := lookupColumn[C](w.components)

	b := acquire(true, erase(ca), erase(cb), erase(cc))
	defer b.release()

	fn(ca.get(e), cb.get(e), cc.get(e))
}

// Each1 calls fn for every live entity holding an A, in ascending id order.
// Storages stay borrowed for the whole iteration, so fn must not borrow A
// again or add/remove components of type A.
func Each1[A any](w *World, fn func(e Entity, a *A)) {
	ca := lookupColumn[A](w.components)
	if ca == nil {
		return
	}

	b := acquire(true, ca)
	defer b.release()

	for e, a := range ca.storage.Iter() {
		if !w.entities.IsActive(e) {
			continue
		}
		fn(e, a)
	}
}

// Each2 calls fn for every live entity holding both an A and a B.
func Each2[A, B any](w *World, fn func(e Entity, a *A, b *B)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)
	if ca == nil || cb == nil {
		return
	}

	b := acquire(true, ca, cb)
	defer b.release()

	for e, a := range ca.storage.Iter() {
		if !w.entities.IsActive(e) {
			continue
		}
		if bv := cb.get(e); bv != nil {
			fn(e, a, bv)
		}
	}
}

// Each3 calls fn for every live entity holding an A, a B and a C.
func Each3[A, B, C any](w *World, fn func(e Entity, a *A, b *B, c *C)) {
	ca := lookupColumn[A](w.components)
	cb := lookupColumn[B](w.components)
	cc := lookupColumn[C](w.components)
	if ca == nil || cb == nil || cc == nil {
		return
	}

	b := acquire(true, ca, cb, cc)
	defer b.release()

	for e, a := range ca.storage.Iter() {
		if !w.entities.IsActive(e) {
			continue
		}
		bv := cb.get(e)
		if bv == nil {
			continue
		}
		if cv := cc.get(e); cv != nil {
			fn(e, a, bv, cv)
		}
	}
}
