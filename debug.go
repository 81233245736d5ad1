package activate

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// updateStats holds per-update timing and membership counts.
// Only populated when Pool.debug is true.
type updateStats struct {
	elapsed     time.Duration
	candidates  int
	rejected    int
	activated   int
	deactivated int
}

// debugLog prints update stats to stderr.
func (p *Pool[T]) debugLog(stats updateStats) {
	if !p.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[activate] update #%d: %v | watched: %d | candidates: %d | rejected: %d\n",
		p.stats.Updates, stats.elapsed, p.size, stats.candidates, stats.rejected)
	_, _ = fmt.Fprintf(os.Stderr,
		"[activate] active: %d/%d | +%d -%d\n",
		p.Len(), p.capacity, stats.activated, stats.deactivated)
}

// debugCheckPool panics with a descriptive message when either registry or
// the active marks are inconsistent. Only called in debug mode.
func debugCheckPool[T Index](p *Pool[T]) {
	for i, k := range p.regs {
		if err := k.check(); err != nil {
			panic(fmt.Sprintf("activate debug: registry %d: %v", i, err))
		}
	}
	n := 0
	for v := range p.Active() {
		if !p.IsActive(v) {
			panic(fmt.Sprintf("activate debug: index %d held but not marked active", int(v)))
		}
		n++
	}
	if n != p.Len() {
		panic(fmt.Sprintf("activate debug: active yields %d indices, Len is %d", n, p.Len()))
	}
}

// check verifies the chain invariants: held plus free equals the live slot
// count, the held chain is ascending, and every live slot is on exactly one
// chain.
func (r *Registry) check() error {
	seen := make([]bool, len(r.slots))
	walk := func(head int32, name string) (int, error) {
		n := 0
		for i := head; i != nilIdx; i = r.slots[i].next {
			if i < 0 || int(i) >= len(r.slots) {
				return n, fmt.Errorf("%s chain index %d out of range", name, i)
			}
			if seen[i] {
				return n, fmt.Errorf("slot %d linked twice (%s chain)", i, name)
			}
			if r.slots[i].id == NoID {
				return n, fmt.Errorf("retired slot %d on %s chain", i, name)
			}
			seen[i] = true
			n++
		}
		return n, nil
	}
	held, err := walk(r.heldHead, "held")
	if err != nil {
		return err
	}
	free, err := walk(r.freeHead, "free")
	if err != nil {
		return err
	}
	if held != r.held || free != r.free {
		return fmt.Errorf("counts held=%d free=%d, chains held=%d free=%d", r.held, r.free, held, free)
	}
	if held+free+r.retired != len(r.slots) {
		return fmt.Errorf("%d held + %d free + %d retired != %d slots", held, free, r.retired, len(r.slots))
	}
	for i := r.heldHead; i != nilIdx && r.slots[i].next != nilIdx; i = r.slots[i].next {
		if r.slots[i].score > r.slots[r.slots[i].next].score {
			return errors.New("held chain not ascending")
		}
	}
	return nil
}

// check verifies the registry and that payload keys match the held IDs.
func (k *Keyed[T]) check() error {
	if err := k.reg.check(); err != nil {
		return err
	}
	if len(k.payloads) != k.reg.held {
		return fmt.Errorf("%d payloads for %d held entries", len(k.payloads), k.reg.held)
	}
	for id := range k.reg.IDs() {
		if _, ok := k.payloads[id]; !ok {
			return fmt.Errorf("held id %d has no payload", id)
		}
	}
	return nil
}
