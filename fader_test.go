package activate

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-4 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestFaderFadeIn(t *testing.T) {
	f := NewFader[int](FaderConfig{FadeIn: 1, FadeOut: 1})
	f.FadeIn(7)
	assertNear(t, "alpha at start", f.Alpha(7), 0)

	f.Update(0.5)
	assertNear(t, "alpha at 0.5s", f.Alpha(7), 0.5)

	f.Update(1)
	assertNear(t, "alpha at end", f.Alpha(7), 1)
	if f.Len() != 1 || f.Fading(7) {
		t.Errorf("Len = %d, Fading = %v; want 1, false", f.Len(), f.Fading(7))
	}
}

func TestFaderFadeOutHides(t *testing.T) {
	f := NewFader[int](FaderConfig{FadeIn: 0, FadeOut: 0.5, Ease: ease.Linear})
	var hidden []int
	f.OnHidden = func(v int) { hidden = append(hidden, v) }

	f.FadeIn(1)
	assertNear(t, "instant fade in", f.Alpha(1), 1)

	f.FadeOut(1)
	if !f.Fading(1) {
		t.Error("Fading(1) = false after FadeOut")
	}
	f.Update(0.25)
	assertNear(t, "alpha mid fade out", f.Alpha(1), 0.5)
	if len(hidden) != 0 {
		t.Errorf("hidden early: %v", hidden)
	}

	f.Update(0.5)
	if len(hidden) != 1 || hidden[0] != 1 {
		t.Errorf("hidden = %v, want [1]", hidden)
	}
	if f.Len() != 0 || f.Alpha(1) != 0 {
		t.Errorf("after hide: Len = %d, Alpha = %v", f.Len(), f.Alpha(1))
	}
}

func TestFaderReverse(t *testing.T) {
	f := NewFader[string](FaderConfig{FadeIn: 1, FadeOut: 1})
	hidden := 0
	f.OnHidden = func(string) { hidden++ }

	f.FadeIn("a")
	f.Update(0.6)
	f.FadeOut("a")
	f.Update(0.2)
	assertNear(t, "alpha after partial fade out", f.Alpha("a"), 0.4)

	// Reversing mid fade-out keeps the key and resumes from the current alpha.
	f.FadeIn("a")
	f.Update(0.3)
	assertNear(t, "alpha after reverse", f.Alpha("a"), 0.7)
	f.Update(1)
	if hidden != 0 || f.Fading("a") {
		t.Errorf("hidden = %d, fading = %v after reverse", hidden, f.Fading("a"))
	}
}

func TestFaderFadeOutUnknownIgnored(t *testing.T) {
	f := NewFader[int](FaderConfig{FadeOut: 1})
	f.FadeOut(3)
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
}

func TestFaderVisible(t *testing.T) {
	f := NewFader[int](FaderConfig{})
	f.FadeIn(1)
	f.FadeIn(2)
	got := map[int]float64{}
	for v, a := range f.Visible() {
		got[v] = a
	}
	if len(got) != 2 || got[1] != 1 || got[2] != 1 {
		t.Errorf("visible = %v", got)
	}
}

func TestFaderDrivenByPool(t *testing.T) {
	head := 0
	f := NewFader[int](FaderConfig{FadeIn: 0.1, FadeOut: 0.1})
	released := map[int]bool{}
	f.OnHidden = func(v int) { released[v] = true }

	p := mustPool(t, 2, 10, PoolConfig[int]{
		Score: func(i int) float64 {
			if i == head || i == head+1 {
				return 1
			}
			return 0
		},
		OnActivate:   f.FadeIn,
		OnDeactivate: f.FadeOut,
	})

	p.Update()
	f.Update(1)
	head = 5
	p.Update()
	if f.Len() != 4 {
		t.Errorf("Len during crossfade = %d, want 4", f.Len())
	}
	f.Update(1)
	if !released[0] || !released[1] || len(released) != 2 {
		t.Errorf("released = %v, want {0,1}", released)
	}
	assertNear(t, "alpha(5)", f.Alpha(5), 1)
}
