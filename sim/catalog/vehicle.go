package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// VehicleInfo is the immutable description of a vehicle. Capacity is stored
// in normalized box-units (4x the declared pallet capacity); the declared
// pallet value is never used directly in accounting.
type VehicleInfo struct {
	ID            VehicleId `validate:"required"`
	CapacityBoxes int       `validate:"gte=1"`
	OperationTime int
	GPSId         string
}

// LoadVehicles parses vehicle_info.csv: car_num, capacity, operation_time, gps_id.
// capacity is given in pallets; it is normalized to box-units here (x4), per
// the invariant documented in sim/catalog.
func LoadVehicles(path string) (map[VehicleId]*VehicleInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseVehicles(f, path)
}

func parseVehicles(r io.Reader, source string) (map[VehicleId]*VehicleInfo, error) {
	reader := csv.NewReader(r)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	out := make(map[VehicleId]*VehicleInfo)
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
		if len(rec) < 4 {
			return nil, fmt.Errorf("%s: row %d: expected 4 columns, got %d", source, row, len(rec))
		}

		pallets, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: capacity: %w", source, row, err)
		}
		opTime, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: operation_time: %w", source, row, err)
		}

		info := &VehicleInfo{
			ID:            VehicleId(rec[0]),
			CapacityBoxes: pallets * 4,
			OperationTime: opTime,
			GPSId:         rec[3],
		}
		if err := structValidator.Struct(info); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", source, row, err)
		}
		if _, exists := out[info.ID]; exists {
			return nil, fmt.Errorf("%s: row %d: duplicate vehicle id %q", source, row, info.ID)
		}
		out[info.ID] = info
	}
	return out, nil
}
