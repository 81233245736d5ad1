package activate

import (
	"fmt"
	"iter"
)

// Keyed is a Registry that carries a payload for every held score. The set
// of IDs with a payload always equals the set of held IDs.
type Keyed[T any] struct {
	reg      *Registry
	payloads map[ID]T
}

// NewKeyed creates a Keyed registry with room for capacity entries.
func NewKeyed[T any](capacity int) (*Keyed[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("activate: new keyed registry with capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return newKeyed[T](capacity), nil
}

func newKeyed[T any](capacity int) *Keyed[T] {
	return &Keyed[T]{
		reg:      newRegistry(capacity),
		payloads: make(map[ID]T, capacity),
	}
}

// Registry returns the backing registry. Callers must not mutate it.
func (k *Keyed[T]) Registry() *Registry { return k.reg }

// Len returns the number of held entries.
func (k *Keyed[T]) Len() int { return k.reg.held }

// Cap returns the total number of slots.
func (k *Keyed[T]) Cap() int { return k.reg.Cap() }

// Put offers (score, v). On acceptance v is stored under the returned ID,
// replacing the payload of any entry the insertion evicted.
func (k *Keyed[T]) Put(score float64, v T) (ID, bool) {
	id, ok := k.reg.Put(score)
	if ok {
		k.payloads[id] = v
	}
	return id, ok
}

// Drop removes the lowest-scoring entry and its slot for good.
func (k *Keyed[T]) Drop() (float64, T, bool) {
	id, score, ok := k.reg.Drop()
	if !ok {
		var zero T
		return 0, zero, false
	}
	v := k.payloads[id]
	delete(k.payloads, id)
	return score, v, true
}

// Extend adds one free slot.
func (k *Keyed[T]) Extend() ID { return k.reg.Extend() }

// Resize changes the capacity, discarding the payloads of removed entries.
func (k *Keyed[T]) Resize(n int) ([]ID, error) {
	removed, err := k.reg.Resize(n)
	if err != nil {
		return nil, err
	}
	for _, id := range removed {
		delete(k.payloads, id)
	}
	return removed, nil
}

// Copy replaces the contents of k with the highest-scoring entries of other.
// Payloads are matched by position, since the two registries assign IDs
// independently.
func (k *Keyed[T]) Copy(other *Keyed[T]) {
	if other == k {
		return
	}
	k.reg.Copy(other.reg)
	clear(k.payloads)

	src := other.reg
	j := src.heldHead
	for skip := src.held - k.reg.held; skip > 0; skip-- {
		j = src.slots[j].next
	}
	dst := k.reg
	for i := dst.heldHead; i != nilIdx; i = dst.slots[i].next {
		k.payloads[dst.slots[i].id] = other.payloads[src.slots[j].id]
		j = src.slots[j].next
	}
}

// Clone returns an independent copy of k.
func (k *Keyed[T]) Clone() *Keyed[T] {
	c := newKeyed[T](k.Cap())
	c.Copy(k)
	return c
}

// Clear removes every entry, keeping capacity.
func (k *Keyed[T]) Clear() {
	k.reg.Clear()
	clear(k.payloads)
}

// Get returns the payload held by id.
func (k *Keyed[T]) Get(id ID) (T, bool) {
	v, ok := k.payloads[id]
	return v, ok
}

// Keys yields held IDs in ascending score order.
func (k *Keyed[T]) Keys() iter.Seq[ID] { return k.reg.IDs() }

// Values yields payloads in ascending score order.
func (k *Keyed[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		r := k.reg
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			if !yield(k.payloads[r.slots[i].id]) {
				return
			}
		}
	}
}

// All yields (ID, payload) pairs in ascending score order.
func (k *Keyed[T]) All() iter.Seq2[ID, T] {
	return func(yield func(ID, T) bool) {
		r := k.reg
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			id := r.slots[i].id
			if !yield(id, k.payloads[id]) {
				return
			}
		}
	}
}

// Scored yields (score, payload) pairs in ascending score order.
func (k *Keyed[T]) Scored() iter.Seq2[float64, T] {
	return func(yield func(float64, T) bool) {
		r := k.reg
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			if !yield(r.slots[i].score, k.payloads[r.slots[i].id]) {
				return
			}
		}
	}
}
