// Package activate keeps the top-K scoring members of a watched index domain
// and reports, frame over frame, which ones joined or left.
//
// It is built for per-frame work in games and simulations: streaming the
// chunks nearest the camera, lighting the closest lamps, picking which
// entities get full AI this tick. Every structure is preallocated, so a
// steady-state update does no allocation.
//
// # Quick start
//
// A [Pool] scores every index of its domain on each [Pool.Update], keeps the
// highest positive scores up to its capacity, and fires callbacks only for
// membership changes:
//
//	focus := activate.Vec2{}
//	pool, err := activate.NewPool(32, len(lamps), activate.PoolConfig[int]{
//		Score:        activate.Nearest(lampPositions, &focus, 400),
//		OnActivate:   func(i int) { lamps[i].On() },
//		OnDeactivate: func(i int) { lamps[i].Off() },
//	})
//	// each frame:
//	focus = player.Position()
//	pool.Update()
//
// All OnDeactivate calls of an update happen before any OnActivate, so a
// caller recycling a bounded resource always sees release-then-claim.
//
// # Registries
//
// [Registry] is the underlying bounded, always-sorted score set. When full it
// evicts its lowest score for any new score that is not lower; every slot keeps
// a stable [ID] across evictions. [Keyed] adds a payload per held entry.
//
//	r, _ := activate.NewRegistry(4)
//	for _, s := range []float64{101, 100, 103, 102, 400} {
//		r.Put(s)
//	}
//	// r.Scores() yields 101 102 103 400
//
// # Extras
//
// [Fader] fades activated items in and deactivated ones out (via [gween]) and
// reports when a fade-out has finished. Sub-package metrics exports pool stats
// to Prometheus; the separate ecs module publishes activations into a
// [Donburi] world.
//
// None of the types are safe for concurrent use, and callbacks must not call
// back into the pool that invoked them.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package activate
