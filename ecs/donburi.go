// Package ecs provides ECS adapters for activate.
package ecs

import (
	"github.com/phanxgames/activate"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ActivationEvent reports that a watched index joined (Active) or left the
// active set of a pool.
type ActivationEvent struct {
	Index  int
	Active bool
}

// ActivationEventType is the Donburi event type for activation events.
// Events are queued; they reach subscribers on ProcessEvents, after the
// pool's Update has returned.
var ActivationEventType = events.NewEventType[ActivationEvent]()

// DonburiSink publishes pool membership changes to a Donburi world.
type DonburiSink struct {
	world donburi.World
}

// NewDonburiSink creates a sink publishing to world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// Activate publishes an activation of index i.
func (s *DonburiSink) Activate(i int) {
	ActivationEventType.Publish(s.world, ActivationEvent{Index: i, Active: true})
}

// Deactivate publishes a deactivation of index i.
func (s *DonburiSink) Deactivate(i int) {
	ActivationEventType.Publish(s.world, ActivationEvent{Index: i})
}

// Bind installs the sink's callbacks on cfg. Callbacks already set on cfg
// still run, before the event is published.
func (s *DonburiSink) Bind(cfg *activate.PoolConfig[int]) {
	onActivate, onDeactivate := cfg.OnActivate, cfg.OnDeactivate
	cfg.OnActivate = func(i int) {
		if onActivate != nil {
			onActivate(i)
		}
		s.Activate(i)
	}
	cfg.OnDeactivate = func(i int) {
		if onDeactivate != nil {
			onDeactivate(i)
		}
		s.Deactivate(i)
	}
}
