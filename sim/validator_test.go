package sim

import (
	"testing"
	"time"

	"github.com/dpdp-sim/dpdp-sim/sim/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSimulator builds a minimal Simulator for validator/handler unit
// tests, bypassing NewSimulator's vehicle placement and initial event seeding.
func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	cat := &Catalog{
		Factories: map[FactoryId]*FactoryInfo{
			"A": {ID: "A", PortNum: 1},
			"B": {ID: "B", PortNum: 1},
		},
		Vehicles: map[VehicleId]*VehicleInfo{
			"v1": {ID: "v1", CapacityBoxes: 16},
		},
		Orders: map[OrderId]*Order{},
		Items:  map[OrderItemId]*OrderItem{},
		Routes: &catalog.RouteMap{},
	}
	s := &Simulator{
		Catalog:      cat,
		queue:        NewEventQueue(),
		vehicles:     map[VehicleId]*VehicleState{"v1": {Position: Idle("A")}},
		factories:    map[FactoryId]*FactoryState{"A": {FreeDocks: 1, PortNum: 1}, "B": {FreeDocks: 1, PortNum: 1}},
		items:        map[OrderItemId]*OrderItemState{},
		InitialDate:  time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		Clock:        time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
		TimeInterval: DefaultTimeInterval,
	}
	return s
}

func addItem(s *Simulator, order OrderId, class ItemClass, idx int, demand int, pickup, delivery FactoryId, kind ItemStateKind) OrderItemId {
	id := OrderItemId{Order: order, Class: class, Index: idx}
	s.Catalog.Items[id] = &OrderItem{ID: id, Demand: demand, PickupID: pickup, DeliveryID: delivery}
	s.items[id] = &OrderItemState{Kind: kind}
	if _, ok := s.Catalog.Orders[order]; !ok {
		s.Catalog.Orders[order] = &Order{ID: order, PickupID: pickup, DeliveryID: delivery}
	}
	return id
}

func TestValidatePlanAcceptsSimpleLoadUnload(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, PickupID: "A", DeliveryID: "B"}
	item := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemUnallocated)

	plan := Plan{"v1": {
		{Destination: "A", Work: NewWork([]OrderItemId{item}, nil, s.demand)},
		{Destination: "B", Work: NewWork(nil, []OrderItemId{item}, s.demand)},
	}}

	assert.NoError(t, s.ValidatePlan(plan))
}

func TestValidatePlanRejectsCapacityViolation(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 5, PickupID: "A", DeliveryID: "B"}
	var items []OrderItemId
	for i := 0; i < 5; i++ {
		items = append(items, addItem(s, "o1", ClassStandard, i, 4, "A", "B", ItemUnallocated))
	}

	plan := Plan{"v1": {{Destination: "A", Work: NewWork(items, nil, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, CapacityViolation, verr.Reason)
}

func TestValidatePlanRejectsLifoViolation(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 2, PickupID: "A", DeliveryID: "B"}
	a := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemUnallocated)
	b := addItem(s, "o1", ClassStandard, 1, 4, "A", "B", ItemUnallocated)

	// Loaded in order a then b (stack top = b); unloading listed as [b, a]
	// asks the validator to pop "a" first, which is not the top.
	plan := Plan{"v1": {
		{Destination: "A", Work: NewWork([]OrderItemId{a, b}, nil, s.demand)},
		{Destination: "B", Work: NewWork(nil, []OrderItemId{b, a}, s.demand)},
	}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, LifoViolation, verr.Reason)
}

func TestValidatePlanRejectsOrderSplit(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, QSmall: 1, PickupID: "A", DeliveryID: "B"}
	a := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemUnallocated)
	addItem(s, "o1", ClassSmall, 0, 2, "A", "B", ItemUnallocated)

	plan := Plan{"v1": {{Destination: "A", Work: NewWork([]OrderItemId{a}, nil, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, OrderSplit, verr.Reason)
}

func TestValidatePlanAllowsSplitWhenOrderExceedsCapacity(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 5, PickupID: "A", DeliveryID: "B"}
	var items []OrderItemId
	for i := 0; i < 5; i++ {
		items = append(items, addItem(s, "o1", ClassStandard, i, 4, "A", "B", ItemUnallocated))
	}

	// capacity is 16 boxes = 4 standard items; split 4 + 1 across two routes on the same vehicle.
	plan := Plan{"v1": {
		{Destination: "A", Work: NewWork(items[:4], nil, s.demand)},
		{Destination: "B", Work: NewWork(nil, items[:4], s.demand)},
		{Destination: "A", Work: NewWork(items[4:], nil, s.demand)},
		{Destination: "B", Work: NewWork(nil, items[4:], s.demand)},
	}}

	assert.NoError(t, s.ValidatePlan(plan))
}

func TestValidatePlanRejectsUnknownVehicle(t *testing.T) {
	s := newTestSimulator(t)
	err := s.ValidatePlan(Plan{"ghost": {}})
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, UnknownVehicle, verr.Reason)
}

func TestValidatePlanRejectsUnknownItem(t *testing.T) {
	s := newTestSimulator(t)
	ghost := OrderItemId{Order: "ghost", Class: ClassStandard, Index: 0}

	plan := Plan{"v1": {{Destination: "A", Work: Work{LoadItems: []OrderItemId{ghost}}}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, UnknownItem, verr.Reason)
}

func TestValidatePlanRejectsWrongPickupLocation(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, PickupID: "A", DeliveryID: "B"}
	item := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemUnallocated)

	// item's pickup is "A" but the route tries to load it at "B".
	plan := Plan{"v1": {{Destination: "B", Work: NewWork([]OrderItemId{item}, nil, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, WrongPickupLocation, verr.Reason)
}

func TestValidatePlanRejectsLoadingUnready(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, PickupID: "A", DeliveryID: "B"}
	// Already allocated (e.g. to another route), so it's not loadable again.
	item := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemAllocated)

	plan := Plan{"v1": {{Destination: "A", Work: NewWork([]OrderItemId{item}, nil, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, LoadingUnready, verr.Reason)
}

func TestValidatePlanRejectsWrongDeliveryLocation(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, PickupID: "A", DeliveryID: "B"}
	item := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemAllocated)
	s.vehicles["v1"].AllocatedItemStack = []OrderItemId{item}

	// item's delivery is "B" but the route tries to unload it at "A".
	plan := Plan{"v1": {{Destination: "A", Work: NewWork(nil, []OrderItemId{item}, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, WrongDeliveryLocation, verr.Reason)
}

func TestValidatePlanRejectsUnloadingUnready(t *testing.T) {
	s := newTestSimulator(t)
	s.Catalog.Orders["o1"] = &Order{ID: "o1", QStandard: 1, PickupID: "A", DeliveryID: "B"}
	// On the vehicle's planned stack (so the LIFO/destination checks pass)
	// but its lifecycle state was never advanced past Unallocated.
	item := addItem(s, "o1", ClassStandard, 0, 4, "A", "B", ItemUnallocated)
	s.vehicles["v1"].AllocatedItemStack = []OrderItemId{item}

	plan := Plan{"v1": {{Destination: "B", Work: NewWork(nil, []OrderItemId{item}, s.demand)}}}

	err := s.ValidatePlan(plan)
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, UnloadingUnready, verr.Reason)
}
