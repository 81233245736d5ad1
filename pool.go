package activate

import (
	"fmt"
	"iter"
	"math"
	"time"
)

// PoolConfig holds the callbacks that drive a Pool. Only Score is required.
type PoolConfig[T Index] struct {
	// Score rates watched index i. Only scores above zero are admitted; the
	// Pool keeps the Cap highest. Score must not mutate the Pool.
	Score func(i int) float64
	// OnActivate fires for each index that entered the active set this update.
	OnActivate func(v T)
	// OnDeactivate fires for each index that left the active set this update.
	// All deactivations of an update fire before any activation.
	OnDeactivate func(v T)
	// OnBeforeUpdate fires once per update before any index is scored.
	OnBeforeUpdate func()
	// OnAfterUpdate fires once per update after every callback.
	OnAfterUpdate func()
}

// Stats is a snapshot of a Pool's counters. Updates, Activated, Deactivated
// and Rejected are cumulative since construction.
type Stats struct {
	Updates     uint64
	Activated   uint64
	Deactivated uint64
	Rejected    uint64
	Active      int
	Capacity    int
	Size        int
}

// Pool tracks which indices of a watch domain are active. Each Update
// re-scores the whole domain, keeps the top Cap positively scored indices,
// and reports only membership changes since the previous Update.
//
// Two Keyed registries alternate roles: one is rebuilt while the other still
// holds the previous result for diffing.
type Pool[T Index] struct {
	cfg  PoolConfig[T]
	size int

	regs     [2]*Keyed[T]
	cur      int // index into regs of the registry the last Update built
	capacity int // the next registry to rebuild is resized to this

	// Epoch stamps per watched index. inCur[i] == epoch means i is in the
	// current registry; inPrev[i] == epoch-1 means i is in the previous one.
	inCur  []uint32
	inPrev []uint32
	epoch  uint32

	updating bool
	debug    bool
	stats    Stats
}

// NewPool creates a Pool that activates up to capacity indices out of the
// watch domain [0, size).
func NewPool[T Index](capacity, size int, cfg PoolConfig[T]) (*Pool[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("activate: new pool with capacity %d: %w", capacity, ErrInvalidCapacity)
	}
	if size < 0 {
		return nil, fmt.Errorf("activate: new pool with size %d: %w", size, ErrInvalidSize)
	}
	if cfg.Score == nil {
		return nil, fmt.Errorf("activate: new pool: %w", ErrNilScore)
	}
	p := &Pool[T]{
		cfg:      cfg,
		size:     size,
		capacity: capacity,
		cur:      1,
		epoch:    1,
		inCur:    make([]uint32, size),
		inPrev:   make([]uint32, size),
	}
	p.regs[0] = newKeyed[T](capacity)
	p.regs[1] = newKeyed[T](capacity)
	return p, nil
}

// SetDebug enables per-update stats on stderr and invariant checks.
func (p *Pool[T]) SetDebug(enabled bool) { p.debug = enabled }

// Size returns the number of watched indices.
func (p *Pool[T]) Size() int { return p.size }

// Cap returns the capacity the next Update will use.
func (p *Pool[T]) Cap() int { return p.capacity }

// Len returns the number of active indices.
func (p *Pool[T]) Len() int { return p.regs[p.cur].Len() }

// IsActive reports whether v was active after the last Update.
func (p *Pool[T]) IsActive(v T) bool {
	i := int(v)
	return i >= 0 && i < len(p.inCur) && p.inCur[i] == p.epoch
}

// Active yields the active indices in ascending score order.
func (p *Pool[T]) Active() iter.Seq[T] { return p.regs[p.cur].Values() }

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	s := p.stats
	s.Active = p.Len()
	s.Capacity = p.capacity
	s.Size = p.size
	return s
}

// ResizePool changes the number of indices that can be active at once. Only
// the registry the next Update rebuilds is resized now; the other one is
// resized right before its own rebuild, so the result of the last Update
// stays intact until then.
func (p *Pool[T]) ResizePool(n int) error {
	p.checkReentry("ResizePool")
	if n < 1 {
		return fmt.Errorf("activate: resize pool to %d: %w", n, ErrInvalidCapacity)
	}
	p.capacity = n
	_, err := p.regs[1-p.cur].Resize(n)
	return err
}

// SetSize changes the watch domain to [0, n). Active indices outside the new
// domain are deactivated by the next Update.
func (p *Pool[T]) SetSize(n int) error {
	p.checkReentry("SetSize")
	if n < 0 {
		return fmt.Errorf("activate: set pool size to %d: %w", n, ErrInvalidSize)
	}
	p.size = n
	if n > len(p.inCur) {
		p.inCur = append(p.inCur, make([]uint32, n-len(p.inCur))...)
		p.inPrev = append(p.inPrev, make([]uint32, n-len(p.inPrev))...)
	}
	return nil
}

// Update re-scores the watch domain and fires OnDeactivate for every index
// that left the active set, then OnActivate for every index that joined it.
// Indices are visited in order 0..Size-1; among equal scores competing for
// the last slot, the one visited later wins.
//
// Update must not be called from inside one of the pool's callbacks. Panics
// raised by callbacks propagate and abandon the rest of the pass.
func (p *Pool[T]) Update() {
	p.checkReentry("Update")
	p.updating = true
	defer func() { p.updating = false }()

	var start time.Time
	if p.debug {
		start = time.Now()
	}

	// The flip is committed only after scoring, so a panicking Score leaves
	// the last result in place.
	next := 1 - p.cur
	cur, prev := p.regs[next], p.regs[p.cur]
	if cur.Cap() != p.capacity {
		// p.capacity is at least 1 (NewPool and ResizePool reject less), so
		// Resize cannot fail here.
		_, _ = cur.Resize(p.capacity)
	}
	cur.Clear()

	if p.cfg.OnBeforeUpdate != nil {
		p.cfg.OnBeforeUpdate()
	}

	var candidates, rejected uint64
	for i := 0; i < p.size; i++ {
		score := p.cfg.Score(i)
		if score > 0 {
			candidates++
			if _, ok := cur.Put(score, T(i)); !ok {
				rejected++
			}
		}
	}

	p.cur = next
	p.inCur, p.inPrev = p.inPrev, p.inCur
	p.nextEpoch(prev)
	for v := range cur.Values() {
		p.inCur[int(v)] = p.epoch
	}

	var deactivated, activated uint64
	for v := range prev.Values() {
		if p.inCur[int(v)] != p.epoch {
			deactivated++
			if p.cfg.OnDeactivate != nil {
				p.cfg.OnDeactivate(v)
			}
		}
	}
	for v := range cur.Values() {
		if p.inPrev[int(v)] != p.epoch-1 {
			activated++
			if p.cfg.OnActivate != nil {
				p.cfg.OnActivate(v)
			}
		}
	}

	if p.cfg.OnAfterUpdate != nil {
		p.cfg.OnAfterUpdate()
	}

	p.stats.Updates++
	p.stats.Activated += activated
	p.stats.Deactivated += deactivated
	p.stats.Rejected += rejected

	if p.debug {
		p.debugLog(updateStats{
			elapsed:     time.Since(start),
			candidates:  int(candidates),
			rejected:    int(rejected),
			activated:   int(activated),
			deactivated: int(deactivated),
		})
		debugCheckPool(p)
	}
}

// Reset deactivates every active index and empties both registries. The
// pool then behaves as if freshly constructed.
func (p *Pool[T]) Reset() {
	p.checkReentry("Reset")
	p.updating = true
	defer func() { p.updating = false }()

	cur := p.regs[p.cur]
	var deactivated uint64
	if p.cfg.OnDeactivate != nil {
		for v := range cur.Values() {
			p.cfg.OnDeactivate(v)
			deactivated++
		}
	} else {
		deactivated = uint64(cur.Len())
	}
	p.stats.Deactivated += deactivated
	for _, k := range p.regs {
		k.Clear()
	}
	// Invalidate the current marks so the next Update activates from scratch.
	p.nextEpoch(nil)
}

// nextEpoch advances the stamp. Marks older than the previous epoch read as
// absent. Before the counter wraps both mark arrays are wiped and the marks
// of prev, if any, are restamped.
func (p *Pool[T]) nextEpoch(prev *Keyed[T]) {
	if p.epoch == math.MaxUint32 {
		clear(p.inCur)
		clear(p.inPrev)
		p.epoch = 1
		if prev != nil {
			for v := range prev.Values() {
				p.inPrev[int(v)] = p.epoch
			}
		}
	}
	p.epoch++
}

func (p *Pool[T]) checkReentry(op string) {
	if p.updating {
		panic("activate: " + op + " called from inside a pool callback")
	}
}
