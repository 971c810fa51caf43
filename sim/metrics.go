package sim

import (
	"sort"
	"time"
)

// OrderSummary is one order's completion outcome: whether every item
// delivered on time, and by how much the latest item missed its deadline
// (zero or negative if it was on time).
type OrderSummary struct {
	OrderID  OrderId
	Lateness time.Duration
	TimedOut bool
}

// Summary is the end-of-run report emitted once every item has reached
// Delivered and no further UpdateTimestep is scheduled.
type Summary struct {
	Orders        []OrderSummary
	TotalLateness time.Duration
	TimeoutCount  int
	TotalDistance float64
	EndClock      time.Time
}

// emitSummary computes the per-order timeout/lateness report and total
// distance, then logs it. Called exactly once, by the first scheduler tick
// that finds every item delivered.
func (s *Simulator) emitSummary() {
	byOrder := make(map[OrderId]time.Time)
	for id, st := range s.items {
		if st.DeliverTime.After(byOrder[id.Order]) {
			byOrder[id.Order] = st.DeliverTime
		}
	}

	deadlines := make(map[OrderId]time.Time)
	for id, st := range s.items {
		deadlines[id.Order] = st.Deadline
	}

	summary := Summary{TotalDistance: s.TotalDistance, EndClock: s.Clock}
	orderIDs := make([]OrderId, 0, len(byOrder))
	for id := range byOrder {
		orderIDs = append(orderIDs, id)
	}
	sort.Slice(orderIDs, func(i, j int) bool { return orderIDs[i] < orderIDs[j] })

	for _, id := range orderIDs {
		lateness := byOrder[id].Sub(deadlines[id])
		entry := OrderSummary{OrderID: id, Lateness: lateness, TimedOut: lateness > 0}
		if entry.TimedOut {
			summary.TimeoutCount++
			summary.TotalLateness += lateness
		}
		summary.Orders = append(summary.Orders, entry)
	}

	s.Logger.WithFields(map[string]any{
		"orders":         len(summary.Orders),
		"timeouts":       summary.TimeoutCount,
		"total_lateness": summary.TotalLateness,
		"total_distance": summary.TotalDistance,
		"end_clock":      summary.EndClock,
	}).Info("simulation complete")

	s.LastSummary = &summary
}
