package sim

import "time"

// noopScheduler returns an empty plan every tick. It backs the fork handed
// to the live scheduler for look-ahead (the fork is frozen to "now" and
// never advances on its own unless the caller drives it), and is a
// reasonable default for tests that don't care about scheduling.
type noopScheduler struct{}

func (noopScheduler) Schedule(SchedulerArgs) Plan { return nil }

// fork returns a deep, fully decoupled snapshot of s that shares no
// mutable state with the parent: the child's scheduler is replaced by
// scheduler, and if deadline is non-nil the child's static catalog is
// restricted to orders whose creation time does not exceed *deadline. All
// state stores, the event queue, distance counters, and callbacks are
// copied by value.
func (s *Simulator) fork(scheduler Scheduler, deadline *time.Time) *Simulator {
	cat := s.Catalog
	if deadline != nil {
		cat = s.Catalog.RestrictToDeadline(s.InitialDate, *deadline)
	}

	child := &Simulator{
		Catalog:          cat,
		queue:            s.queue.Clone(),
		vehicles:         make(map[VehicleId]*VehicleState, len(s.vehicles)),
		factories:        make(map[FactoryId]*FactoryState, len(s.factories)),
		items:            make(map[OrderItemId]*OrderItemState, len(cat.Items)),
		scheduler:        scheduler,
		callbacks:        s.callbacks.clone(),
		InitialDate:      s.InitialDate,
		Clock:            s.Clock,
		Horizon:          s.Horizon,
		TimeInterval:     s.TimeInterval,
		TotalDistance:    s.TotalDistance,
		lastTickDistance: s.lastTickDistance,
		Logger:           s.Logger,
	}

	for id, vs := range s.vehicles {
		child.vehicles[id] = vs.clone()
	}
	for id, fs := range s.factories {
		child.factories[id] = fs.clone()
	}
	for id, st := range s.items {
		if _, ok := cat.Items[id]; !ok {
			continue
		}
		cp := *st
		child.items[id] = &cp
	}

	return child
}

// Fork is the public entry point for schedulers that want to simulate
// forward from the present without disturbing the live kernel (§4.8).
// deadline, when non-nil, restricts the fork's visible orders to those
// created at or before it.
func (s *Simulator) Fork(scheduler Scheduler, deadline *time.Time) *Simulator {
	return s.fork(scheduler, deadline)
}
