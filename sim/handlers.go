package sim

import (
	"fmt"
	"time"
)

// secondsToDuration converts a RouteMap time/distance-style float (seconds)
// into a time.Duration.
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// handleOrderArrival makes every item of a freshly arrived order available
// for scheduling. All items of an order transition together.
func (s *Simulator) handleOrderArrival(e *OrderArrivalEvent) {
	for _, id := range e.ItemIDs {
		st := s.items[id]
		if st.Kind != ItemUnavailable {
			panic(fmt.Sprintf("sim: order arrival on item %s in state %s, want Unavailable", id, st.Kind))
		}
		st.Kind = ItemUnallocated
	}
}

// handleUpdateTimestep runs the scheduler gateway and, unless the run is
// complete, re-enqueues the next tick.
func (s *Simulator) handleUpdateTimestep(e *UpdateTimestepEvent) {
	s.runSchedulerGateway()
}

// handleVehicleArrival marks physical arrival at the destination factory
// and schedules the fixed dock-approach delay.
func (s *Simulator) handleVehicleArrival(e *VehicleArrivalEvent) {
	v := s.vehicles[e.VehicleID]
	if v.Position.Kind != PositionTransporting || v.Position.To != e.FactoryID {
		panic(fmt.Sprintf("sim: vehicle %s arrival at %s but position is %v", e.VehicleID, e.FactoryID, v.Position))
	}
	v.Position = DoingWork(e.FactoryID)
	s.queue.Push(&VehicleApproachedDockEvent{
		baseEvent: baseEvent{at: e.Timestamp().Add(DockApproachingTime)},
		VehicleID: e.VehicleID,
		FactoryID: e.FactoryID,
		Work:      e.Work,
	})
}

// handleVehicleApproachedDock enters the vehicle into dock contention:
// either it begins service immediately, or it joins the FIFO wait queue.
func (s *Simulator) handleVehicleApproachedDock(e *VehicleApproachedDockEvent) {
	f := s.factories[e.FactoryID]
	if f.FreeDocks == 0 {
		f.WaitingQueue = append(f.WaitingQueue, FactoryWork{VehicleID: e.VehicleID, Work: e.Work})
		return
	}
	f.FreeDocks--
	s.beginVehicleLoading(e.VehicleID, e.FactoryID, e.Work, e.Timestamp())
}

// handleFinishLoading releases the dock (handing it to the next waiter, if
// any), marks delivered items terminal, and, if the vehicle has further
// routes queued, begins transporting the next leg immediately.
func (s *Simulator) handleFinishLoading(e *FinishLoadingEvent) {
	f := s.factories[e.FactoryID]
	if len(f.WaitingQueue) > 0 {
		next := f.WaitingQueue[0]
		f.WaitingQueue = f.WaitingQueue[1:]
		s.beginVehicleLoading(next.VehicleID, e.FactoryID, next.Work, e.Timestamp())
	} else {
		f.FreeDocks++
	}

	v := s.vehicles[e.VehicleID]
	v.Position = Idle(e.FactoryID)

	deliverTime := e.Timestamp().Add(-DockApproachingTime).Add(-e.TotalUnloadTime)
	for _, id := range e.DeliveredItems {
		item := s.Catalog.Items[id]
		st := s.items[id]
		st.Kind = ItemDelivered
		st.Deadline = item.CommittedCompletionAt(s.InitialDate)
		st.DeliverTime = deliverTime
	}

	if len(v.RouteQueue) > 0 {
		route := v.RouteQueue[0]
		v.RouteQueue = v.RouteQueue[1:]
		s.beginVehicleTransporting(e.VehicleID, e.FactoryID, route, e.Timestamp())
	}
}

// beginVehicleLoading performs the physical load+unload service at a dock
// a vehicle has just acquired. Preconditions failing here are fatal kernel
// bugs: any plan that would violate them was rejected by the validator
// before it ever reached runtime.
func (s *Simulator) beginVehicleLoading(v VehicleId, f FactoryId, work Work, t time.Time) {
	vs := s.vehicles[v]
	if vs.Position.Kind != PositionDoingWork || vs.Position.At != f {
		panic(fmt.Sprintf("sim: begin_vehicle_loading on %s not DoingWork(%s): %v", v, f, vs.Position))
	}

	for i := len(work.UnloadItems) - 1; i >= 0; i-- {
		want := work.UnloadItems[i]
		n := len(vs.ItemStack)
		if n == 0 || vs.ItemStack[n-1] != want {
			panic(fmt.Sprintf("sim: LIFO violation unloading %s on vehicle %s", want, v))
		}
		vs.ItemStack = vs.ItemStack[:n-1]
	}

	vs.ItemStack = append(vs.ItemStack, work.LoadItems...)
	for _, id := range work.LoadItems {
		s.items[id].Kind = ItemPickedUp
	}

	if s.totalDemand(vs.ItemStack) > s.capacityOf(v) {
		panic(fmt.Sprintf("sim: vehicle %s over capacity after loading", v))
	}

	s.queue.Push(&FinishLoadingEvent{
		baseEvent:       baseEvent{at: t.Add(work.LoadTime + work.UnloadTime)},
		VehicleID:       v,
		FactoryID:       f,
		DeliveredItems:  work.UnloadItems,
		TotalUnloadTime: work.UnloadTime,
	})
}

// beginVehicleTransporting commits the planned next leg of a vehicle's
// route: it advances the planned stack ahead of the physical one and puts
// the vehicle in transit.
func (s *Simulator) beginVehicleTransporting(v VehicleId, from FactoryId, route VehicleRoute, t time.Time) {
	vs := s.vehicles[v]
	if vs.Position.Kind != PositionIdle || vs.Position.At != from {
		panic(fmt.Sprintf("sim: begin_vehicle_transporting on %s not Idle(%s): %v", v, from, vs.Position))
	}

	for _, id := range route.Work.LoadItems {
		s.items[id].Kind = ItemAllocated
	}

	for i := len(route.Work.UnloadItems) - 1; i >= 0; i-- {
		want := route.Work.UnloadItems[i]
		n := len(vs.AllocatedItemStack)
		if n == 0 || vs.AllocatedItemStack[n-1] != want {
			panic(fmt.Sprintf("sim: planned LIFO violation unloading %s on vehicle %s", want, v))
		}
		vs.AllocatedItemStack = vs.AllocatedItemStack[:n-1]
	}
	vs.AllocatedItemStack = append(vs.AllocatedItemStack, route.Work.LoadItems...)

	s.TotalDistance += s.Catalog.Routes.Distance(from, route.Destination)
	vs.Position = Transporting(from, route.Destination)

	transit := s.Catalog.Routes.Time(from, route.Destination)
	s.queue.Push(&VehicleArrivalEvent{
		baseEvent: baseEvent{at: t.Add(secondsToDuration(transit))},
		VehicleID: v,
		FactoryID: route.Destination,
		Work:      route.Work,
	})
}
