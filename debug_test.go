package activate

import (
	"strings"
	"testing"
)

func TestRegistryCheckDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(r *Registry)
		want    string
	}{
		{"unsorted", func(r *Registry) {
			r.slots[r.heldHead].score = 100
		}, "not ascending"},
		{"held count", func(r *Registry) {
			r.held++
		}, "counts"},
		{"cycle", func(r *Registry) {
			tail := r.heldHead
			for r.slots[tail].next != nilIdx {
				tail = r.slots[tail].next
			}
			r.slots[tail].next = r.heldHead
		}, "linked twice"},
		{"lost slot", func(r *Registry) {
			r.freeHead = r.slots[r.freeHead].next
			r.free--
		}, "slots"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(4)
			putAll(r, 1, 2, 3)
			if err := r.check(); err != nil {
				t.Fatalf("clean registry: %v", err)
			}
			tt.corrupt(r)
			err := r.check()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("check = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestKeyedCheckDetectsMissingPayload(t *testing.T) {
	k := newKeyed[int](2)
	id, _ := k.Put(1, 10)
	delete(k.payloads, id)
	if err := k.check(); err == nil {
		t.Error("check should fail when a held id has no payload")
	}
}

func TestDebugCheckPoolPanics(t *testing.T) {
	p := mustPool(t, 2, 3, PoolConfig[int]{Score: func(i int) float64 { return 1 }})
	p.Update()
	p.inCur[2] = 0 // index 2 is held but no longer marked

	defer func() {
		r := recover()
		msg, _ := r.(string)
		if !strings.HasPrefix(msg, "activate debug:") {
			t.Errorf("recover = %v, want activate debug panic", r)
		}
	}()
	debugCheckPool(p)
}
