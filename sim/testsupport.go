package sim

// The methods below are a small, deliberately narrow public surface used by
// black-box scenario tests (see features/) that cannot reach the kernel's
// unexported state directly. They are not meant for scheduler or CLI code.

// DemandOf resolves an item's box-unit demand from the catalog.
func (s *Simulator) DemandOf(id OrderItemId) int {
	return s.demand(id)
}

// ItemState returns the current lifecycle state of an item.
func (s *Simulator) ItemState(id OrderItemId) OrderItemState {
	if st, ok := s.items[id]; ok {
		return *st
	}
	return OrderItemState{}
}

// VehiclePosition returns a vehicle's current position.
func (s *Simulator) VehiclePosition(v VehicleId) VehiclePosition {
	if vs, ok := s.vehicles[v]; ok {
		return vs.Position
	}
	return VehiclePosition{}
}

// SetVehiclePosition forces a vehicle's position, for scenario setup that
// needs to start a handler from a specific precondition.
func (s *Simulator) SetVehiclePosition(v VehicleId, pos VehiclePosition) {
	s.vehicles[v].Position = pos
}

// WaitingQueueLen returns the number of vehicles queued for a factory's dock.
func (s *Simulator) WaitingQueueLen(f FactoryId) int {
	return len(s.factories[f].WaitingQueue)
}

// Stopped reports whether the kernel has emitted its completion summary and
// stopped enqueuing further ticks.
func (s *Simulator) Stopped() bool {
	return s.stopped
}

// InstallPlan validates and installs a plan exactly as the scheduler gateway
// would on a live UpdateTimestep, beginning transport immediately for any
// idle vehicle. It panics, like the gateway, if the plan is invalid.
func (s *Simulator) InstallPlan(p Plan) {
	p = ClonePlan(p)
	Deduplicate(p)
	if err := s.ValidatePlan(p); err != nil {
		panic(err)
	}
	for v, routes := range p {
		vs := s.vehicles[v]
		vs.RouteQueue = routes
		if vs.Position.Kind == PositionIdle && len(vs.RouteQueue) > 0 {
			next := vs.RouteQueue[0]
			vs.RouteQueue = vs.RouteQueue[1:]
			s.beginVehicleTransporting(v, vs.Position.At, next, s.Clock)
		}
	}
}

// DispatchApproachedDock drives the VehicleApproachedDock handler directly,
// for scenario tests exercising dock contention without a full event loop.
func (s *Simulator) DispatchApproachedDock(v VehicleId, f FactoryId) {
	s.handleVehicleApproachedDock(&VehicleApproachedDockEvent{
		baseEvent: baseEvent{at: s.Clock},
		VehicleID: v,
		FactoryID: f,
		Work:      Work{},
	})
}

// DispatchFinishLoading drives the FinishLoading handler directly.
func (s *Simulator) DispatchFinishLoading(v VehicleId, f FactoryId) {
	s.handleFinishLoading(&FinishLoadingEvent{
		baseEvent: baseEvent{at: s.Clock},
		VehicleID: v,
		FactoryID: f,
	})
}
