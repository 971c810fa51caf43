package sim

import "time"

// boxTime is tau: the per-box service time for both loading and unloading.
const boxTime = time.Minute

// Work bundles the items a vehicle loads and unloads during a single dock
// visit. LoadTime and UnloadTime are always derived as
// Σ(demand(i))·boxTime over the respective item list — never taken from an
// order's own (informational) LoadTime/UnloadTime fields.
type Work struct {
	LoadItems   []OrderItemId
	UnloadItems []OrderItemId
	LoadTime    time.Duration
	UnloadTime  time.Duration
}

// demandOf resolves an item's box-unit demand from the item catalog.
type demandLookup func(OrderItemId) int

// NewWork builds a Work from load/unload item lists, deriving its times
// from the given demand lookup.
func NewWork(loadItems, unloadItems []OrderItemId, demand demandLookup) Work {
	var loadBoxes, unloadBoxes int
	for _, i := range loadItems {
		loadBoxes += demand(i)
	}
	for _, i := range unloadItems {
		unloadBoxes += demand(i)
	}
	return Work{
		LoadItems:   loadItems,
		UnloadItems: unloadItems,
		LoadTime:    boxTime * time.Duration(loadBoxes),
		UnloadTime:  boxTime * time.Duration(unloadBoxes),
	}
}

// merge concatenates another Work's item lists and sums its times in place.
func (w *Work) merge(other Work) {
	w.LoadItems = append(w.LoadItems, other.LoadItems...)
	w.UnloadItems = append(w.UnloadItems, other.UnloadItems...)
	w.LoadTime += other.LoadTime
	w.UnloadTime += other.UnloadTime
}

// VehicleRoute pairs a destination factory with the work to perform there.
type VehicleRoute struct {
	Destination FactoryId
	Work        Work
}

// deltaDemand returns load demand minus unload demand for this route.
func (r VehicleRoute) deltaDemand(demand demandLookup) int {
	var d int
	for _, i := range r.Work.LoadItems {
		d += demand(i)
	}
	for _, i := range r.Work.UnloadItems {
		d -= demand(i)
	}
	return d
}

// tryMerge merges other into r if they share the same destination,
// reporting whether the merge happened.
func (r *VehicleRoute) tryMerge(other VehicleRoute) bool {
	if r.Destination != other.Destination {
		return false
	}
	r.Work.merge(other.Work)
	return true
}

// Plan is a scheduler's proposed per-vehicle ordered list of routes.
type Plan map[VehicleId][]VehicleRoute

// ClonePlan returns a deep copy of a plan (routes and their Work item
// slices copied), so callers may freely mutate it without aliasing the
// scheduler's own data.
func ClonePlan(p Plan) Plan {
	out := make(Plan, len(p))
	for v, routes := range p {
		cp := make([]VehicleRoute, len(routes))
		for i, r := range routes {
			cp[i] = VehicleRoute{
				Destination: r.Destination,
				Work: Work{
					LoadItems:   append([]OrderItemId(nil), r.Work.LoadItems...),
					UnloadItems: append([]OrderItemId(nil), r.Work.UnloadItems...),
					LoadTime:    r.Work.LoadTime,
					UnloadTime:  r.Work.UnloadTime,
				},
			}
		}
		out[v] = cp
	}
	return out
}

// Deduplicate canonicalizes a plan in place: within each vehicle's route
// list, adjacent routes sharing the same destination are coalesced by
// merging their Work. This is a scheduler convenience the kernel applies
// before validation; applying it twice is idempotent.
func Deduplicate(p Plan) {
	for v, routes := range p {
		merged := make([]VehicleRoute, 0, len(routes))
		for _, r := range routes {
			if n := len(merged); n > 0 && merged[n-1].tryMerge(r) {
				continue
			}
			merged = append(merged, r)
		}
		p[v] = merged
	}
}
