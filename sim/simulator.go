package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// DockApproachingTime is the fixed delay between a vehicle's physical
// arrival at a factory and the moment it begins contending for a dock.
const DockApproachingTime = 30 * time.Minute

// DefaultTimeInterval is the base cadence between UpdateTimestep ticks,
// before any wall-clock dilation (§4.6).
const DefaultTimeInterval = 100 * time.Minute

// Scheduler is the pluggable collaborator invoked on every UpdateTimestep.
// Implementations must be deterministic given identical Args and must not
// retain a reference to Args.StaticSimulator beyond the call.
type Scheduler interface {
	Schedule(args SchedulerArgs) Plan
}

// SchedulerArgs is the read-only view the kernel hands the scheduler on
// each tick: everything it needs to reason about the world without being
// able to mutate it.
type SchedulerArgs struct {
	Items            map[OrderItemId]*OrderItem
	ItemStates       map[OrderItemId]OrderItemState
	VehicleStacks    map[VehicleId][]OrderItemId
	VehiclePositions map[VehicleId]VehiclePosition
	Time             time.Time
	ElapsedDistance  float64
	StaticSimulator  *Simulator
}

// Simulator is the event-driven kernel: an event queue, the static catalog,
// mutable per-entity state, the scheduler collaborator, and the observers
// watching it. It is single-threaded: nothing here is safe for concurrent
// use, because nothing needs to be.
type Simulator struct {
	Catalog *Catalog

	queue     *EventQueue
	vehicles  map[VehicleId]*VehicleState
	factories map[FactoryId]*FactoryState
	items     map[OrderItemId]*OrderItemState

	scheduler Scheduler
	callbacks callbackSet

	InitialDate  time.Time
	Clock        time.Time
	Horizon      time.Time
	TimeInterval time.Duration

	TotalDistance    float64
	lastTickDistance float64

	stopped bool

	Logger      *logrus.Logger
	LastSummary *Summary
}

// NewSimulator builds a Simulator over cat, anchored at initialDate, with
// vehicles placed by placement (usually derived from a PartitionedRNG's
// SubsystemPlacement stream). It seeds the initial event set: one
// OrderArrival per order and one UpdateTimestep at initialDate.
func NewSimulator(cat *Catalog, initialDate time.Time, horizon time.Time, scheduler Scheduler, placement func(catalog *Catalog) map[VehicleId]FactoryId) *Simulator {
	s := &Simulator{
		Catalog:      cat,
		queue:        NewEventQueue(),
		vehicles:     make(map[VehicleId]*VehicleState, len(cat.Vehicles)),
		factories:    make(map[FactoryId]*FactoryState, len(cat.Factories)),
		items:        make(map[OrderItemId]*OrderItemState, len(cat.Items)),
		scheduler:    scheduler,
		InitialDate:  initialDate,
		Clock:        initialDate,
		Horizon:      horizon,
		TimeInterval: DefaultTimeInterval,
		Logger:       logrus.StandardLogger(),
	}

	initial := placement(cat)
	for _, id := range cat.VehicleIds() {
		f, ok := initial[id]
		if !ok {
			panic(fmt.Sprintf("sim: no initial position supplied for vehicle %s", id))
		}
		s.vehicles[id] = &VehicleState{Position: Idle(f)}
	}
	for _, id := range cat.FactoryIds() {
		info := cat.Factories[id]
		s.factories[id] = &FactoryState{FreeDocks: info.PortNum, PortNum: info.PortNum}
	}
	for id := range cat.Items {
		s.items[id] = &OrderItemState{Kind: ItemUnavailable}
	}

	for _, order := range cat.Orders {
		itemIDs := make([]OrderItemId, 0, len(order.Items()))
		for _, item := range order.Items() {
			itemIDs = append(itemIDs, item.ID)
		}
		s.queue.Push(&OrderArrivalEvent{
			baseEvent: baseEvent{at: order.CreationAt(initialDate)},
			OrderID:   order.ID,
			ItemIDs:   itemIDs,
		})
	}
	s.queue.Push(&UpdateTimestepEvent{baseEvent: baseEvent{at: initialDate}})

	return s
}

// AddCallback registers an observer. Observers fire in registration order.
func (s *Simulator) AddCallback(c SimulationCallback) {
	s.callbacks = append(s.callbacks, c)
}

func (s *Simulator) demand(id OrderItemId) int {
	item, ok := s.Catalog.Items[id]
	if !ok {
		panic(fmt.Sprintf("sim: unknown item %s", id))
	}
	return item.Demand
}

func (s *Simulator) capacityOf(v VehicleId) int {
	info, ok := s.Catalog.Vehicles[v]
	if !ok {
		panic(fmt.Sprintf("sim: unknown vehicle %s", v))
	}
	return info.CapacityBoxes
}

// Run drains the event queue, advancing the clock to each event's
// timestamp in turn, until the queue empties or the next event's timestamp
// exceeds Horizon.
func (s *Simulator) Run() {
	for {
		e := s.queue.Peek()
		if e == nil {
			break
		}
		if e.Timestamp().After(s.Horizon) {
			break
		}
		s.step()
		if s.stopped {
			break
		}
	}
}

// SimulateUntil drains events with timestamp <= t, then stops, regardless
// of Horizon. It is equivalent to temporarily setting Horizon to t.
func (s *Simulator) SimulateUntil(t time.Time) {
	for {
		e := s.queue.Peek()
		if e == nil || e.Timestamp().After(t) {
			break
		}
		s.step()
		if s.stopped {
			break
		}
	}
}

func (s *Simulator) step() {
	e := s.queue.Pop()
	if e.Timestamp().Before(s.Clock) {
		panic(fmt.Sprintf("sim: event queue timestamp regression: %s before clock %s", e.Timestamp(), s.Clock))
	}
	s.Clock = e.Timestamp()
	s.callbacks.onEvent(e)
	s.Logger.WithFields(logrus.Fields{"clock": s.Clock, "event": fmt.Sprintf("%T", e)}).Debug("dispatching event")
	e.Execute(s)
}

// totalDemand sums the box-unit demand of an item stack.
func (s *Simulator) totalDemand(stack []OrderItemId) int {
	total := 0
	for _, id := range stack {
		total += s.demand(id)
	}
	return total
}
