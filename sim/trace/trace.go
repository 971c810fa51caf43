// Package trace provides observers that record and persist a simulation's
// dispatch cycle: what the scheduler was shown, and what it returned.
package trace

import (
	"time"

	"github.com/dpdp-sim/dpdp-sim/sim"
)

// DispatchInputRecord is the JSON-serializable projection of a
// sim.SchedulerArgs snapshot. The embedded fork (StaticSimulator) is
// intentionally omitted: it is a live look-ahead handle, not a value worth
// persisting.
type DispatchInputRecord struct {
	Time             time.Time                         `json:"time"`
	ElapsedDistance  float64                            `json:"elapsed_distance"`
	Items            map[sim.OrderItemId]*sim.OrderItem `json:"items"`
	ItemStates       map[sim.OrderItemId]ItemStateRecord `json:"item_states"`
	VehicleStacks    map[sim.VehicleId][]sim.OrderItemId `json:"vehicle_stacks"`
	VehiclePositions map[sim.VehicleId]PositionRecord    `json:"vehicle_positions"`
}

// ItemStateRecord is the JSON projection of an OrderItemState.
type ItemStateRecord struct {
	Kind        string    `json:"kind"`
	Deadline    time.Time `json:"deadline,omitempty"`
	DeliverTime time.Time `json:"deliver_time,omitempty"`
}

// PositionRecord is the JSON projection of a VehiclePosition.
type PositionRecord struct {
	Kind string       `json:"kind"`
	At   sim.FactoryId `json:"at,omitempty"`
	From sim.FactoryId `json:"from,omitempty"`
	To   sim.FactoryId `json:"to,omitempty"`
}

func newDispatchInputRecord(args sim.SchedulerArgs) DispatchInputRecord {
	states := make(map[sim.OrderItemId]ItemStateRecord, len(args.ItemStates))
	for id, st := range args.ItemStates {
		states[id] = ItemStateRecord{Kind: st.Kind.String(), Deadline: st.Deadline, DeliverTime: st.DeliverTime}
	}
	positions := make(map[sim.VehicleId]PositionRecord, len(args.VehiclePositions))
	for id, pos := range args.VehiclePositions {
		positions[id] = positionRecord(pos)
	}
	return DispatchInputRecord{
		Time:             args.Time,
		ElapsedDistance:  args.ElapsedDistance,
		Items:            args.Items,
		ItemStates:       states,
		VehicleStacks:    args.VehicleStacks,
		VehiclePositions: positions,
	}
}

func positionRecord(pos sim.VehiclePosition) PositionRecord {
	switch pos.Kind {
	case sim.PositionIdle:
		return PositionRecord{Kind: "Idle", At: pos.At}
	case sim.PositionDoingWork:
		return PositionRecord{Kind: "DoingWork", At: pos.At}
	case sim.PositionTransporting:
		return PositionRecord{Kind: "Transporting", From: pos.From, To: pos.To}
	default:
		return PositionRecord{Kind: "Unknown"}
	}
}

// DispatchOutputRecord is the JSON projection of a proposed plan.
type DispatchOutputRecord struct {
	Plan map[sim.VehicleId][]RouteRecord `json:"plan"`
}

// RouteRecord is the JSON projection of a VehicleRoute.
type RouteRecord struct {
	Destination sim.FactoryId     `json:"destination"`
	LoadItems   []sim.OrderItemId `json:"load_items"`
	UnloadItems []sim.OrderItemId `json:"unload_items"`
	LoadTime    time.Duration     `json:"load_time"`
	UnloadTime  time.Duration     `json:"unload_time"`
}

func newDispatchOutputRecord(plan sim.Plan) DispatchOutputRecord {
	out := make(map[sim.VehicleId][]RouteRecord, len(plan))
	for v, routes := range plan {
		rs := make([]RouteRecord, 0, len(routes))
		for _, r := range routes {
			rs = append(rs, RouteRecord{
				Destination: r.Destination,
				LoadItems:   r.Work.LoadItems,
				UnloadItems: r.Work.UnloadItems,
				LoadTime:    r.Work.LoadTime,
				UnloadTime:  r.Work.UnloadTime,
			})
		}
		out[v] = rs
	}
	return DispatchOutputRecord{Plan: out}
}
