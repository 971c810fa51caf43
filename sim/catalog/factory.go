package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// FactoryInfo is the immutable description of a factory: its location and
// the number of parallel docks it offers.
type FactoryInfo struct {
	ID        FactoryId `validate:"required"`
	Longitude float64
	Latitude  float64
	PortNum   int `validate:"gte=1"`
}

var structValidator = validator.New()

// LoadFactories parses factory_info.csv: factory_id, longitude, latitude, port_num.
func LoadFactories(path string) (map[FactoryId]*FactoryInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return parseFactories(f, path)
}

func parseFactories(r io.Reader, source string) (map[FactoryId]*FactoryInfo, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("%s: expected 4 columns, got %d", source, len(header))
	}

	out := make(map[FactoryId]*FactoryInfo)
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

		lon, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: longitude: %w", source, row, err)
		}
		lat, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: latitude: %w", source, row, err)
		}
		portNum, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: port_num: %w", source, row, err)
		}

		info := &FactoryInfo{ID: FactoryId(rec[0]), Longitude: lon, Latitude: lat, PortNum: portNum}
		if err := structValidator.Struct(info); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", source, row, err)
		}
		if _, exists := out[info.ID]; exists {
			return nil, fmt.Errorf("%s: row %d: duplicate factory id %q", source, row, info.ID)
		}
		out[info.ID] = info
	}
	return out, nil
}
