package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

type routeKey struct {
	From FactoryId
	To   FactoryId
}

type singleRoute struct {
	code     string
	distance float64
	time     int64 // seconds
}

// RouteMap is a read-only routing table keyed by (from, to). Same-factory
// queries always return zero; a missing cross-factory pair returns +Inf for
// distance and time, which callers must treat as an illegal transit.
type RouteMap struct {
	routes map[routeKey]singleRoute
}

// Time returns the transit time in seconds between two factories.
func (m *RouteMap) Time(from, to FactoryId) float64 {
	if from == to {
		return 0
	}
	if r, ok := m.routes[routeKey{from, to}]; ok {
		return float64(r.time)
	}
	return math.Inf(1)
}

// Distance returns the transit distance in meters between two factories.
func (m *RouteMap) Distance(from, to FactoryId) float64 {
	if from == to {
		return 0
	}
	if r, ok := m.routes[routeKey{from, to}]; ok {
		return r.distance
	}
	return math.Inf(1)
}

// RouteEntry is a single (from, to) routing fact, used to build a RouteMap
// without going through CSV (e.g. in tests or synthetic instances).
type RouteEntry struct {
	From     FactoryId
	To       FactoryId
	Distance float64
	Time     int64 // seconds
}

// NewRouteMap builds a RouteMap from explicit entries.
func NewRouteMap(entries []RouteEntry) *RouteMap {
	m := &RouteMap{routes: make(map[routeKey]singleRoute, len(entries))}
	for _, e := range entries {
		m.routes[routeKey{e.From, e.To}] = singleRoute{distance: e.Distance, time: e.Time}
	}
	return m
}

// LoadRoutes parses route_info.csv: route_code, start_factory_id, end_factory_id, distance, time.
func LoadRoutes(path string) (*RouteMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseRoutes(f, path)
}

func parseRoutes(r io.Reader, source string) (*RouteMap, error) {
	reader := csv.NewReader(r)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	m := &RouteMap{routes: make(map[routeKey]singleRoute)}
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
		if len(rec) < 5 {
			return nil, fmt.Errorf("%s: row %d: expected 5 columns, got %d", source, row, len(rec))
		}

		dist, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: distance: %w", source, row, err)
		}
		t, err := strconv.ParseInt(rec[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: time: %w", source, row, err)
		}

		key := routeKey{From: FactoryId(rec[1]), To: FactoryId(rec[2])}
		m.routes[key] = singleRoute{code: rec[0], distance: dist, time: t}
	}
	return m, nil
}
