// Package catalog holds the immutable static reference data for a DPDP
// instance: factories, vehicles, orders, the derived order items, and the
// route matrix, plus the CSV loaders that populate them.
package catalog

import "fmt"

// FactoryId, VehicleId and OrderId are opaque identifiers taken verbatim
// from the CSV input files.
type FactoryId string
type VehicleId string
type OrderId string

// ItemClass is the box-demand class an OrderItem is expanded from.
type ItemClass int

const (
	ClassStandard ItemClass = iota
	ClassSmall
	ClassBox
)

// Demand returns the box-unit demand of a single item in this class.
func (c ItemClass) Demand() int {
	switch c {
	case ClassStandard:
		return 4
	case ClassSmall:
		return 2
	case ClassBox:
		return 1
	default:
		panic(fmt.Sprintf("unknown item class %d", c))
	}
}

func (c ItemClass) String() string {
	switch c {
	case ClassStandard:
		return "standard"
	case ClassSmall:
		return "small"
	case ClassBox:
		return "box"
	default:
		panic(fmt.Sprintf("unknown item class %d", c))
	}
}

// OrderItemId is the triple (OrderId, ItemClass, index) that names a single
// atomic delivery unit expanded from an Order.
type OrderItemId struct {
	Order OrderId
	Class ItemClass
	Index int
}

// String serializes an OrderItemId as "<order>_<class_lowercase>_<index>",
// the stable format required for reproducible dispatch logs.
func (id OrderItemId) String() string {
	return fmt.Sprintf("%s_%s_%d", id.Order, id.Class, id.Index)
}

// MarshalText lets OrderItemId serve as a JSON object key (via its stable
// String form), which dispatch-log dumps rely on.
func (id OrderItemId) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
