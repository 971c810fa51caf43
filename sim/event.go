package sim

import (
	"time"

	"github.com/dpdp-sim/dpdp-sim/sim/catalog"
)

// Event is a single scheduled occurrence in the simulation. Every event
// knows when it fires and how to mutate the kernel when it does. The two
// unexported methods are satisfied by embedding baseEvent; event kinds are a
// closed set owned by this package, not an extension point.
type Event interface {
	Timestamp() time.Time
	Execute(s *Simulator)
	seqNum() uint64
	setSeq(n uint64)
}

// baseEvent carries the fields common to every event, plus a monotonically
// increasing sequence number used only to break timestamp ties so that
// events pushed earlier dispatch first (stable FIFO).
type baseEvent struct {
	at  time.Time
	seq uint64
}

func (b baseEvent) Timestamp() time.Time { return b.at }
func (b baseEvent) seqNum() uint64       { return b.seq }
func (b *baseEvent) setSeq(n uint64)     { b.seq = n }

// OrderArrivalEvent fires at an order's creation time; it makes every item
// of that order Unallocated.
type OrderArrivalEvent struct {
	baseEvent
	OrderID OrderId
	ItemIDs []catalog.OrderItemId
}

func (e *OrderArrivalEvent) Execute(s *Simulator) { s.handleOrderArrival(e) }

// VehicleArrivalEvent fires when a vehicle physically reaches a factory it
// was transporting toward.
type VehicleArrivalEvent struct {
	baseEvent
	VehicleID VehicleId
	FactoryID catalog.FactoryId
	Work      Work
}

func (e *VehicleArrivalEvent) Execute(s *Simulator) { s.handleVehicleArrival(e) }

// VehicleApproachedDockEvent fires dockApproachingTime after a
// VehicleArrivalEvent: the vehicle now contends for a dock.
type VehicleApproachedDockEvent struct {
	baseEvent
	VehicleID VehicleId
	FactoryID catalog.FactoryId
	Work      Work
}

func (e *VehicleApproachedDockEvent) Execute(s *Simulator) { s.handleVehicleApproachedDock(e) }

// FinishLoadingEvent fires when a vehicle's combined load+unload dock
// service completes. TotalUnloadTime is the unload-side duration of this
// same service, needed to attribute delivery time (§4.3).
type FinishLoadingEvent struct {
	baseEvent
	VehicleID       VehicleId
	FactoryID       catalog.FactoryId
	DeliveredItems  []catalog.OrderItemId
	TotalUnloadTime time.Duration
}

func (e *FinishLoadingEvent) Execute(s *Simulator) { s.handleFinishLoading(e) }

// UpdateTimestepEvent is the scheduling cadence tick.
type UpdateTimestepEvent struct {
	baseEvent
}

func (e *UpdateTimestepEvent) Execute(s *Simulator) { s.handleUpdateTimestep(e) }
