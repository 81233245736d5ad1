// Package ecs provides ECS adapters for activate.
//
// The primary adapter is [NewDonburiSink], which turns pool activations and
// deactivations into [ActivationEvent] values published on a [Donburi]
// world. Subscribe to [ActivationEventType] in your ECS systems to spawn or
// despawn entities for the indices a pool hands out.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	cfg := activate.PoolConfig[int]{Score: score}
//	sink.Bind(&cfg)
//	pool, err := activate.NewPool(64, len(chunks), cfg)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
