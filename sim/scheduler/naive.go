package scheduler

import (
	"sort"

	"github.com/dpdp-sim/dpdp-sim/sim"
)

// NaiveScheduler is a reference heuristic: it always finishes the trip a
// vehicle is already carrying (unload every item on its planned stack, top
// first, one route per item, straight to that item's delivery factory), then assigns
// every still-unallocated order round-robin across the fleet, splitting an
// order across consecutive vehicles only when its total demand exceeds a
// single vehicle's capacity. It is not meant to be good; it is meant to be
// obviously correct so it can anchor the kernel's tests.
type NaiveScheduler struct {
	vehicles []sim.VehicleId
	catalog  *sim.Catalog
}

// NewNaiveScheduler builds a NaiveScheduler over a fixed catalog snapshot,
// mirroring the reference implementation's own independent instance load.
func NewNaiveScheduler(cat *sim.Catalog) *NaiveScheduler {
	return &NaiveScheduler{vehicles: cat.VehicleIds(), catalog: cat}
}

func (n *NaiveScheduler) demand(id sim.OrderItemId) int {
	return n.catalog.Items[id].Demand
}

func (n *NaiveScheduler) Schedule(args sim.SchedulerArgs) sim.Plan {
	if len(n.vehicles) == 0 {
		return nil
	}
	schedule := make(sim.Plan)

	vehicleIDs := make([]sim.VehicleId, 0, len(args.VehicleStacks))
	for v := range args.VehicleStacks {
		vehicleIDs = append(vehicleIDs, v)
	}
	sort.Slice(vehicleIDs, func(i, j int) bool { return vehicleIDs[i] < vehicleIDs[j] })

	for _, v := range vehicleIDs {
		stack := args.VehicleStacks[v]
		for i := len(stack) - 1; i >= 0; i-- {
			itemID := stack[i]
			item := n.catalog.Items[itemID]
			schedule[v] = append(schedule[v], sim.VehicleRoute{
				Destination: item.DeliveryID,
				Work:        sim.NewWork(nil, []sim.OrderItemId{itemID}, n.demand),
			})
		}
	}

	orders := make(map[sim.OrderId][]sim.OrderItemId)
	for id, item := range args.Items {
		if args.ItemStates[id].Kind != sim.ItemUnallocated {
			continue
		}
		orders[id.Order] = append(orders[id.Order], item.ID)
	}
	orderIDs := make([]sim.OrderId, 0, len(orders))
	for id := range orders {
		orderIDs = append(orderIDs, id)
		items := orders[id]
		sort.Slice(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if a.Class != b.Class {
				return a.Class < b.Class
			}
			return a.Index < b.Index
		})
	}
	sort.Slice(orderIDs, func(i, j int) bool { return orderIDs[i] < orderIDs[j] })

	capacity := n.catalog.Vehicles[n.vehicles[0]].CapacityBoxes
	vehicleIdx := 0

	appendLoadUnload := func(v sim.VehicleId, pickup, delivery sim.FactoryId, items []sim.OrderItemId) {
		schedule[v] = append(schedule[v],
			sim.VehicleRoute{Destination: pickup, Work: sim.NewWork(items, nil, n.demand)},
			sim.VehicleRoute{Destination: delivery, Work: sim.NewWork(nil, items, n.demand)},
		)
	}

	for _, orderID := range orderIDs {
		items := orders[orderID]
		order := n.catalog.Orders[orderID]
		demand := 0
		for _, id := range items {
			demand += n.demand(id)
		}

		if demand > capacity {
			curDemand := 0
			var chunk []sim.OrderItemId
			for _, id := range items {
				item := n.catalog.Items[id]
				if curDemand+item.Demand > capacity && len(chunk) > 0 {
					appendLoadUnload(n.vehicles[vehicleIdx], order.PickupID, order.DeliveryID, chunk)
					vehicleIdx = (vehicleIdx + 1) % len(n.vehicles)
					curDemand = 0
					chunk = nil
				}
				chunk = append(chunk, id)
				curDemand += item.Demand
			}
			if len(chunk) > 0 {
				appendLoadUnload(n.vehicles[vehicleIdx], order.PickupID, order.DeliveryID, chunk)
			}
		} else {
			appendLoadUnload(n.vehicles[vehicleIdx], order.PickupID, order.DeliveryID, items)
		}

		vehicleIdx = (vehicleIdx + 1) % len(n.vehicles)
	}

	sim.Deduplicate(schedule)
	return schedule
}
