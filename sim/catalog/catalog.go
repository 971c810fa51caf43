package catalog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/samber/lo"
)

// Catalog is the immutable static instance: every factory, vehicle, order,
// the items derived from those orders, and the route matrix between
// factories. It never changes once loaded.
type Catalog struct {
	Factories map[FactoryId]*FactoryInfo
	Vehicles  map[VehicleId]*VehicleInfo
	Orders    map[OrderId]*Order
	Items     map[OrderItemId]*OrderItem
	Routes    *RouteMap
}

// Load reads the four standard CSV files from dir (factory_info.csv,
// vehicle_info.csv, orders.csv, route_info.csv), expands every order into
// its items, and validates that every order references known factories.
// Any failure here is a configuration error: fatal for the run.
func Load(dir string) (*Catalog, error) {
	factories, err := LoadFactories(filepath.Join(dir, "factory_info.csv"))
	if err != nil {
		return nil, fmt.Errorf("load factories: %w", err)
	}
	vehicles, err := LoadVehicles(filepath.Join(dir, "vehicle_info.csv"))
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	orders, err := LoadOrders(filepath.Join(dir, "orders.csv"))
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	routes, err := LoadRoutes(filepath.Join(dir, "route_info.csv"))
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}

	items := make(map[OrderItemId]*OrderItem)
	for _, order := range orders {
		if _, ok := factories[order.PickupID]; !ok {
			return nil, fmt.Errorf("order %s: unknown pickup factory %q", order.ID, order.PickupID)
		}
		if _, ok := factories[order.DeliveryID]; !ok {
			return nil, fmt.Errorf("order %s: unknown delivery factory %q", order.ID, order.DeliveryID)
		}
		for _, item := range order.Items() {
			items[item.ID] = item
		}
	}

	return &Catalog{
		Factories: factories,
		Vehicles:  vehicles,
		Orders:    orders,
		Items:     items,
		Routes:    routes,
	}, nil
}

// FactoryIds returns a deterministically-sorted slice of every known
// factory id, useful for initial-position assignment.
func (c *Catalog) FactoryIds() []FactoryId {
	ids := lo.Keys(c.Factories)
	lo.Sort(ids)
	return ids
}

// VehicleIds returns a deterministically-sorted slice of every known vehicle id.
func (c *Catalog) VehicleIds() []VehicleId {
	ids := lo.Keys(c.Vehicles)
	lo.Sort(ids)
	return ids
}

// RestrictToDeadline returns a new Catalog containing only orders (and their
// items) whose creation time, anchored to initialDate, is <= deadline. Used
// by the fork facility to build a "static" look-ahead instance visible only
// up to the fork point.
func (c *Catalog) RestrictToDeadline(initialDate, deadline time.Time) *Catalog {
	orders := make(map[OrderId]*Order, len(c.Orders))
	for id, order := range c.Orders {
		if order.CreationAt(initialDate).After(deadline) {
			continue
		}
		orders[id] = order
	}

	// Reuse the parent's *OrderItem values rather than re-deriving them via
	// order.Items(): this runs on every scheduler tick via the fork facility,
	// so avoiding a fresh allocation per item per tick matters.
	items := make(map[OrderItemId]*OrderItem, len(c.Items))
	for id, item := range c.Items {
		if _, ok := orders[id.Order]; ok {
			items[id] = item
		}
	}

	return &Catalog{
		Factories: c.Factories,
		Vehicles:  c.Vehicles,
		Orders:    orders,
		Items:     items,
		Routes:    c.Routes,
	}
}
