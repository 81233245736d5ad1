package activate

import (
	"iter"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FaderConfig controls fade timing. Durations are in seconds for a full
// 0-to-1 (or 1-to-0) fade; partial fades are shortened proportionally.
type FaderConfig struct {
	FadeIn  float32
	FadeOut float32
	// Ease is the easing function for both directions. Defaults to ease.Linear.
	Ease ease.TweenFunc
}

// fade is the alpha animation state of one key.
type fade struct {
	tween *gween.Tween
	alpha float32
	out   bool
}

// Fader animates an alpha per key so activated items can fade in and
// deactivated ones fade out before their resources are released. Its FadeIn
// and FadeOut methods match PoolConfig.OnActivate and OnDeactivate:
//
//	fader := activate.NewFader[int](activate.FaderConfig{FadeIn: 0.25, FadeOut: 0.5})
//	fader.OnHidden = releaseSprite
//	pool, _ := activate.NewPool(64, len(points), activate.PoolConfig[int]{
//		Score:        activate.Nearest(points, &player, 300),
//		OnActivate:   fader.FadeIn,
//		OnDeactivate: fader.FadeOut,
//	})
//
// There is no global animation manager; call Update once per frame.
type Fader[T comparable] struct {
	cfg   FaderConfig
	fades map[T]*fade

	// OnHidden fires from Update when a fade-out reaches zero. The key is
	// forgotten before the callback runs.
	OnHidden func(v T)
}

// NewFader creates an empty Fader.
func NewFader[T comparable](cfg FaderConfig) *Fader[T] {
	if cfg.Ease == nil {
		cfg.Ease = ease.Linear
	}
	return &Fader[T]{cfg: cfg, fades: make(map[T]*fade)}
}

// FadeIn starts (or reverses) a fade toward full alpha for v.
func (f *Fader[T]) FadeIn(v T) {
	fd, ok := f.fades[v]
	if !ok {
		fd = &fade{}
		f.fades[v] = fd
	}
	fd.out = false
	f.start(fd, 1, f.cfg.FadeIn*(1-fd.alpha))
}

// FadeOut starts a fade toward zero for v. Keys that are not visible are
// ignored.
func (f *Fader[T]) FadeOut(v T) {
	fd, ok := f.fades[v]
	if !ok {
		return
	}
	fd.out = true
	f.start(fd, 0, f.cfg.FadeOut*fd.alpha)
}

func (f *Fader[T]) start(fd *fade, to, duration float32) {
	if duration <= 0 {
		fd.alpha = to
		fd.tween = nil
		return
	}
	fd.tween = gween.New(fd.alpha, to, duration, f.cfg.Ease)
}

// Update advances every running fade by dt seconds.
func (f *Fader[T]) Update(dt float32) {
	for v, fd := range f.fades {
		if fd.tween != nil {
			val, done := fd.tween.Update(dt)
			fd.alpha = val
			if done {
				fd.tween = nil
			}
		}
		if fd.out && fd.tween == nil {
			delete(f.fades, v)
			if f.OnHidden != nil {
				f.OnHidden(v)
			}
		}
	}
}

// Alpha returns the current alpha of v, 0 for unknown keys.
func (f *Fader[T]) Alpha(v T) float64 {
	if fd, ok := f.fades[v]; ok {
		return float64(fd.alpha)
	}
	return 0
}

// Fading reports whether v is fading out.
func (f *Fader[T]) Fading(v T) bool {
	fd, ok := f.fades[v]
	return ok && fd.out
}

// Len returns the number of keys that are visible or fading out.
func (f *Fader[T]) Len() int { return len(f.fades) }

// Visible yields every visible or fading key with its alpha, in no
// particular order.
func (f *Fader[T]) Visible() iter.Seq2[T, float64] {
	return func(yield func(T, float64) bool) {
		for v, fd := range f.fades {
			if !yield(v, float64(fd.alpha)) {
				return
			}
		}
	}
}
