package activate

import (
	"fmt"
	"iter"
	"math"
)

// nilIdx terminates a slot chain.
const nilIdx int32 = -1

// slot is one arena entry. A slot is on exactly one of the held or free
// chains, or retired (on neither) after Drop or a shrinking Resize.
type slot struct {
	id    ID
	score float64
	next  int32
}

// Registry is a fixed-capacity, always-sorted set of scores. It keeps the
// highest-scoring entries it has been offered: once full, a new score evicts
// the current minimum unless it is lower than that minimum.
//
// Slots live in a preallocated arena and are linked by index into an
// ascending held chain and a free chain. Put and Clear never allocate; Drop
// occasionally compacts the arena once half its slots are retired.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	slots    []slot
	heldHead int32
	freeHead int32
	held     int
	free     int
	retired  int
	nextID   ID
}

// NewRegistry creates a Registry with room for capacity scores.
func NewRegistry(capacity int) (*Registry, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("activate: new registry with capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	return newRegistry(capacity), nil
}

// newRegistry skips validation so Clone works on a registry that Drop has
// shrunk to zero.
func newRegistry(capacity int) *Registry {
	r := &Registry{
		slots:    make([]slot, capacity),
		heldHead: nilIdx,
		freeHead: nilIdx,
		free:     capacity,
	}
	for i := range r.slots {
		r.nextID++
		r.slots[i] = slot{id: r.nextID, next: int32(i) + 1}
	}
	if capacity > 0 {
		r.slots[capacity-1].next = nilIdx
		r.freeHead = 0
	}
	return r
}

// Len returns the number of held scores.
func (r *Registry) Len() int { return r.held }

// Free returns the number of unused slots.
func (r *Registry) Free() int { return r.free }

// Cap returns the total number of slots, held or free.
func (r *Registry) Cap() int { return r.held + r.free }

// Put offers score to the registry. It returns the ID of the slot now holding
// score, or false if the registry is full and score is lower than every held
// score. When full, the lowest-scoring slot is evicted and reused; its ID is
// kept. A score equal to existing ones is placed after them. NaN is always
// rejected.
func (r *Registry) Put(score float64) (ID, bool) {
	if math.IsNaN(score) {
		return NoID, false
	}
	var i int32
	switch {
	case r.freeHead != nilIdx:
		i = r.freeHead
		r.freeHead = r.slots[i].next
		r.free--
	case r.heldHead != nilIdx && score >= r.slots[r.heldHead].score:
		i = r.heldHead
		r.heldHead = r.slots[i].next
		r.held--
	default:
		return NoID, false
	}
	r.slots[i].score = score
	r.insert(i)
	return r.slots[i].id, true
}

// insert links slot i into the held chain before the first strictly greater
// score.
func (r *Registry) insert(i int32) {
	score := r.slots[i].score
	prev, cur := nilIdx, r.heldHead
	for cur != nilIdx && r.slots[cur].score <= score {
		prev, cur = cur, r.slots[cur].next
	}
	r.slots[i].next = cur
	if prev == nilIdx {
		r.heldHead = i
	} else {
		r.slots[prev].next = i
	}
	r.held++
}

// Clear returns every held slot to the free chain. IDs are preserved.
func (r *Registry) Clear() {
	if r.heldHead == nilIdx {
		return
	}
	tail := r.heldHead
	for r.slots[tail].next != nilIdx {
		tail = r.slots[tail].next
	}
	r.slots[tail].next = r.freeHead
	r.freeHead = r.heldHead
	r.heldHead = nilIdx
	r.free += r.held
	r.held = 0
}

// Drop permanently removes the lowest-scoring entry and its slot, reducing
// Cap by one. It returns false and leaves the registry untouched when
// nothing is held.
func (r *Registry) Drop() (ID, float64, bool) {
	i := r.heldHead
	if i == nilIdx {
		return NoID, 0, false
	}
	r.heldHead = r.slots[i].next
	r.held--
	id, score := r.slots[i].id, r.slots[i].score
	r.retire(i)
	if r.retired*2 > len(r.slots) {
		r.compact()
	}
	return id, score, true
}

// Extend adds one fresh free slot and returns its ID.
func (r *Registry) Extend() ID {
	r.nextID++
	i := int32(len(r.slots))
	r.slots = append(r.slots, slot{id: r.nextID, next: r.freeHead})
	r.freeHead = i
	r.free++
	return r.nextID
}

// Resize changes Cap to n. Growing extends with fresh slots and returns nil.
// Shrinking removes free slots first, then the lowest-scoring held slots,
// and returns the IDs of every removed slot.
func (r *Registry) Resize(n int) ([]ID, error) {
	if n < 0 {
		return nil, fmt.Errorf("activate: resize registry to %d: %w", n, ErrInvalidCapacity)
	}
	if n >= r.Cap() {
		for r.Cap() < n {
			r.Extend()
		}
		return nil, nil
	}
	removed := make([]ID, 0, r.Cap()-n)
	for r.Cap() > n {
		var i int32
		if r.freeHead != nilIdx {
			i = r.freeHead
			r.freeHead = r.slots[i].next
			r.free--
		} else {
			i = r.heldHead
			r.heldHead = r.slots[i].next
			r.held--
		}
		removed = append(removed, r.slots[i].id)
		r.retire(i)
	}
	r.compact()
	return removed, nil
}

// Copy replaces the contents of r with the highest-scoring entries of other,
// as many as r can hold. Scores keep their ascending order, equal scores
// included. Copying a registry onto itself does nothing.
func (r *Registry) Copy(other *Registry) {
	if other == r {
		return
	}
	r.Clear()
	skip := other.held - r.Cap()
	// r is empty and other's chain is ascending, so every copied score is
	// appended at the tail.
	tail := nilIdx
	for j := other.heldHead; j != nilIdx; j = other.slots[j].next {
		if skip > 0 {
			skip--
			continue
		}
		i := r.freeHead
		r.freeHead = r.slots[i].next
		r.free--
		r.slots[i].score = other.slots[j].score
		r.slots[i].next = nilIdx
		if tail == nilIdx {
			r.heldHead = i
		} else {
			r.slots[tail].next = i
		}
		tail = i
		r.held++
	}
}

// Clone returns a new Registry with the same capacity and held scores. The
// clone allocates its own IDs.
func (r *Registry) Clone() *Registry {
	c := newRegistry(r.Cap())
	c.Copy(r)
	return c
}

// Min returns the lowest held entry.
func (r *Registry) Min() (ID, float64, bool) {
	if r.heldHead == nilIdx {
		return NoID, 0, false
	}
	s := &r.slots[r.heldHead]
	return s.id, s.score, true
}

// Max returns the highest held entry.
func (r *Registry) Max() (ID, float64, bool) {
	if r.heldHead == nilIdx {
		return NoID, 0, false
	}
	i := r.heldHead
	for r.slots[i].next != nilIdx {
		i = r.slots[i].next
	}
	return r.slots[i].id, r.slots[i].score, true
}

// Score returns the score held by id.
func (r *Registry) Score(id ID) (float64, bool) {
	for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
		if r.slots[i].id == id {
			return r.slots[i].score, true
		}
	}
	return 0, false
}

// Contains reports whether id currently holds a score.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.Score(id)
	return ok
}

// Scores yields held scores in ascending order.
func (r *Registry) Scores() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			if !yield(r.slots[i].score) {
				return
			}
		}
	}
}

// IDs yields the IDs of held slots in ascending score order.
func (r *Registry) IDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			if !yield(r.slots[i].id) {
				return
			}
		}
	}
}

// All yields (ID, score) pairs in ascending score order.
func (r *Registry) All() iter.Seq2[ID, float64] {
	return func(yield func(ID, float64) bool) {
		for i := r.heldHead; i != nilIdx; i = r.slots[i].next {
			if !yield(r.slots[i].id, r.slots[i].score) {
				return
			}
		}
	}
}

// retire detaches slot i from both chains for good. The caller has already
// unlinked it and adjusted held or free.
func (r *Registry) retire(i int32) {
	r.slots[i] = slot{next: nilIdx}
	r.retired++
}

// compact rebuilds the arena without retired slots, held chain first.
func (r *Registry) compact() {
	if r.retired == 0 {
		return
	}
	live := make([]slot, 0, r.held+r.free)
	live, r.heldHead = appendChain(live, r.slots, r.heldHead)
	live, r.freeHead = appendChain(live, r.slots, r.freeHead)
	r.slots = live
	r.retired = 0
}

// appendChain appends the chain starting at head in src to dst, relinking
// it by position, and returns the new head index.
func appendChain(dst, src []slot, head int32) ([]slot, int32) {
	if head == nilIdx {
		return dst, nilIdx
	}
	first := int32(len(dst))
	for i := head; i != nilIdx; i = src[i].next {
		s := src[i]
		s.next = int32(len(dst)) + 1
		dst = append(dst, s)
	}
	dst[len(dst)-1].next = nilIdx
	return dst, first
}
