package sim

import "time"

// snapshotArgs freezes the read-only view handed to the scheduler on each
// tick: visible items, their states, every vehicle's planned stack and
// position, distance travelled since the previous tick, and an
// independent fork for look-ahead.
func (s *Simulator) snapshotArgs() SchedulerArgs {
	items := make(map[OrderItemId]*OrderItem)
	states := make(map[OrderItemId]OrderItemState, len(s.items))
	for id, st := range s.items {
		if st.Kind == ItemUnavailable {
			continue
		}
		items[id] = s.Catalog.Items[id]
		states[id] = *st
	}

	stacks := make(map[VehicleId][]OrderItemId, len(s.vehicles))
	positions := make(map[VehicleId]VehiclePosition, len(s.vehicles))
	for id, vs := range s.vehicles {
		stacks[id] = append([]OrderItemId(nil), vs.AllocatedItemStack...)
		positions[id] = vs.Position
	}

	return SchedulerArgs{
		Items:            items,
		ItemStates:       states,
		VehicleStacks:    stacks,
		VehiclePositions: positions,
		Time:             s.Clock,
		ElapsedDistance:  s.TotalDistance - s.lastTickDistance,
		StaticSimulator:  s.fork(noopScheduler{}, &s.Clock),
	}
}

// allDelivered reports whether every known item has reached the terminal
// Delivered state.
func (s *Simulator) allDelivered() bool {
	for _, st := range s.items {
		if st.Kind != ItemDelivered {
			return false
		}
	}
	return true
}

// runSchedulerGateway is the UpdateTimestep body (§4.6): snapshot, dispatch
// to the scheduler, canonicalize and validate the resulting plan, install
// it, and either schedule the next tick (dilated by the scheduler's
// measured wall-clock cost) or emit the completion summary.
func (s *Simulator) runSchedulerGateway() {
	args := s.snapshotArgs()
	s.callbacks.onDispatchInput(args)

	start := time.Now()
	plan := s.scheduler.Schedule(args)
	cost := time.Since(start)

	s.callbacks.onDispatchOutput(plan)

	plan = ClonePlan(plan)
	Deduplicate(plan)

	if err := s.ValidatePlan(plan); err != nil {
		panic(err)
	}

	for v, routes := range plan {
		vs := s.vehicles[v]
		vs.RouteQueue = routes
		if vs.Position.Kind == PositionIdle && len(vs.RouteQueue) > 0 {
			next := vs.RouteQueue[0]
			vs.RouteQueue = vs.RouteQueue[1:]
			s.beginVehicleTransporting(v, vs.Position.At, next, s.Clock)
		}
	}

	s.lastTickDistance = s.TotalDistance

	if s.allDelivered() {
		s.emitSummary()
		s.stopped = true
		return
	}

	k := 1 + int(cost/s.TimeInterval)
	s.queue.Push(&UpdateTimestepEvent{baseEvent: baseEvent{at: s.Clock.Add(time.Duration(k) * s.TimeInterval)}})
}
