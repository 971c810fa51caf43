package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Order is the static description of one customer order: how many items of
// each class it carries, when it arrives, its committed completion
// time-of-day, its own (informational) load/unload service times, and its
// pickup and delivery factories.
//
// LoadTime/UnloadTime are carried through from the CSV but are NOT what the
// kernel uses to time a vehicle's Work: that is always demand*1min/box (see
// sim.Work). These fields exist for schedulers that want to reason about
// per-order service cost independent of what else shares the trip.
type Order struct {
	ID                  OrderId
	QStandard           int
	QSmall              int
	QBox                int
	CreationTime        time.Duration // offset from midnight
	CommittedCompletion time.Duration // offset from midnight
	LoadTime            time.Duration
	UnloadTime          time.Duration
	PickupID            FactoryId
	DeliveryID          FactoryId
}

// Demand returns the total box-unit demand of the order.
func (o *Order) Demand() int {
	return o.QStandard*ClassStandard.Demand() + o.QSmall*ClassSmall.Demand() + o.QBox*ClassBox.Demand()
}

// CommittedCompletionAt anchors the order's committed completion time-of-day
// to initialDate. If the completion time-of-day is earlier than the
// creation time-of-day, the deadline is interpreted as falling on
// initialDate+1 (the order is due "the next day").
func (o *Order) CommittedCompletionAt(initialDate time.Time) time.Time {
	day := initialDate
	if o.CommittedCompletion < o.CreationTime {
		day = day.AddDate(0, 0, 1)
	}
	return day.Truncate(24 * time.Hour).Add(o.CommittedCompletion)
}

// CreationAt anchors the order's creation time-of-day to initialDate.
func (o *Order) CreationAt(initialDate time.Time) time.Time {
	return initialDate.Truncate(24 * time.Hour).Add(o.CreationTime)
}

// OrderItem is the atomic delivery unit expanded from an Order. It inherits
// all temporal fields and pickup/delivery factories from its order.
type OrderItem struct {
	ID                  OrderItemId
	Demand              int
	CreationTime        time.Duration
	CommittedCompletion time.Duration
	LoadTime            time.Duration
	UnloadTime          time.Duration
	PickupID            FactoryId
	DeliveryID          FactoryId
}

// CommittedCompletionAt anchors the item's committed completion time-of-day
// to initialDate, applying the same next-day rollover rule as Order.
func (i *OrderItem) CommittedCompletionAt(initialDate time.Time) time.Time {
	day := initialDate
	if i.CommittedCompletion < i.CreationTime {
		day = day.AddDate(0, 0, 1)
	}
	return day.Truncate(24 * time.Hour).Add(i.CommittedCompletion)
}

func (o *Order) newItem(class ItemClass, index int) *OrderItem {
	return &OrderItem{
		ID:                  OrderItemId{Order: o.ID, Class: class, Index: index},
		Demand:              class.Demand(),
		CreationTime:        o.CreationTime,
		CommittedCompletion: o.CommittedCompletion,
		LoadTime:            o.LoadTime,
		UnloadTime:          o.UnloadTime,
		PickupID:            o.PickupID,
		DeliveryID:          o.DeliveryID,
	}
}

// Items expands the order into its constituent OrderItems, in
// Standard, Small, Box order, matching the CSV column order.
func (o *Order) Items() []*OrderItem {
	items := make([]*OrderItem, 0, o.QStandard+o.QSmall+o.QBox)
	for i := 0; i < o.QStandard; i++ {
		items = append(items, o.newItem(ClassStandard, i))
	}
	for i := 0; i < o.QSmall; i++ {
		items = append(items, o.newItem(ClassSmall, i))
	}
	for i := 0; i < o.QBox; i++ {
		items = append(items, o.newItem(ClassBox, i))
	}
	return items
}

func parseTimeOfDay(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

// LoadOrders parses orders.csv: order_id, q_standard, q_small, q_box, demand,
// creation_time (HH:MM:SS), committed_completion_time (HH:MM:SS),
// load_time (seconds), unload_time (seconds), pickup_id, delivery_id.
func LoadOrders(path string) (map[OrderId]*Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseOrders(f, path)
}

func parseOrders(r io.Reader, source string) (map[OrderId]*Order, error) {
	reader := csv.NewReader(r)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	out := make(map[OrderId]*Order)
	row := 1
	for {
		row++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", source, row, err)
		}
		if len(rec) < 11 {
			return nil, fmt.Errorf("%s: row %d: expected 11 columns, got %d", source, row, len(rec))
		}

		qStd, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: q_standard: %w", source, row, err)
		}
		qSmall, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: q_small: %w", source, row, err)
		}
		qBox, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: q_box: %w", source, row, err)
		}
		creation, err := parseTimeOfDay(rec[5])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: creation_time: %w", source, row, err)
		}
		completion, err := parseTimeOfDay(rec[6])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: committed_completion_time: %w", source, row, err)
		}
		loadSecs, err := strconv.Atoi(rec[7])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: load_time: %w", source, row, err)
		}
		unloadSecs, err := strconv.Atoi(rec[8])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: unload_time: %w", source, row, err)
		}

		order := &Order{
			ID:                  OrderId(rec[0]),
			QStandard:           qStd,
			QSmall:              qSmall,
			QBox:                qBox,
			CreationTime:        creation,
			CommittedCompletion: completion,
			LoadTime:            time.Duration(loadSecs) * time.Second,
			UnloadTime:          time.Duration(unloadSecs) * time.Second,
			PickupID:            FactoryId(rec[9]),
			DeliveryID:          FactoryId(rec[10]),
		}
		if _, exists := out[order.ID]; exists {
			return nil, fmt.Errorf("%s: row %d: duplicate order id %q", source, row, order.ID)
		}
		out[order.ID] = order
	}
	return out, nil
}
