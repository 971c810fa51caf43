package sim

import "github.com/dpdp-sim/dpdp-sim/sim/catalog"

// Re-exported identifier types so kernel code can refer to them without the
// catalog qualifier; they remain exactly the catalog types underneath.
type (
	FactoryId     = catalog.FactoryId
	VehicleId     = catalog.VehicleId
	OrderId       = catalog.OrderId
	OrderItemId   = catalog.OrderItemId
	ItemClass     = catalog.ItemClass
	FactoryInfo   = catalog.FactoryInfo
	VehicleInfo   = catalog.VehicleInfo
	Order         = catalog.Order
	OrderItem     = catalog.OrderItem
	RouteMap      = catalog.RouteMap
	Catalog       = catalog.Catalog
)

// Re-exported item-class constants.
const (
	ClassStandard = catalog.ClassStandard
	ClassSmall    = catalog.ClassSmall
	ClassBox      = catalog.ClassBox
)
