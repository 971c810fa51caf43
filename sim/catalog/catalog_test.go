package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestParseFactoriesRejectsDuplicateIDs(t *testing.T) {
	csv := "factory_id,longitude,latitude,port_num\nF1,1.0,2.0,3\nF1,1.1,2.1,2\n"
	_, err := parseFactories(strings.NewReader(csv), "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseFactoriesValidatesPortNum(t *testing.T) {
	csv := "factory_id,longitude,latitude,port_num\nF1,1.0,2.0,0\n"
	_, err := parseFactories(strings.NewReader(csv), "test")
	require.Error(t, err)
}

func TestParseVehiclesNormalizesCapacityToBoxUnits(t *testing.T) {
	csv := "car_num,capacity,operation_time,gps_id\nV1,8,3600,gps-1\n"
	vehicles, err := parseVehicles(strings.NewReader(csv), "test")
	require.NoError(t, err)
	require.Contains(t, vehicles, VehicleId("V1"))
	assert.Equal(t, 32, vehicles["V1"].CapacityBoxes)
}

func TestParseRoutesQueryDefaults(t *testing.T) {
	csv := "route_code,start_factory_id,end_factory_id,distance,time\nR1,A,B,3600.5,1800\n"
	routes, err := parseRoutes(strings.NewReader(csv), "test")
	require.NoError(t, err)

	assert.Equal(t, 0.0, routes.Time("A", "A"))
	assert.Equal(t, 0.0, routes.Distance("A", "A"))
	assert.Equal(t, 1800.0, routes.Time("A", "B"))
	assert.Equal(t, 3600.5, routes.Distance("A", "B"))
	assert.True(t, routes.Time("B", "A") > 1e300, "missing reverse route must be +Inf")
}

func TestParseOrdersCommittedCompletionRollover(t *testing.T) {
	csv := "order_id,q_standard,q_small,q_box,demand,creation_time,committed_completion_time,load_time,unload_time,pickup_id,delivery_id\n" +
		"O1,1,0,0,4,23:00:00,01:00:00,60,60,A,B\n"
	orders, err := parseOrders(strings.NewReader(csv), "test")
	require.NoError(t, err)

	order := orders["O1"]
	require.NotNil(t, order)
	assert.Equal(t, 4, order.Demand())

	initialDate := mustDate(t, "2026-07-31")
	completion := order.CommittedCompletionAt(initialDate)
	wantCompletion := initialDate.AddDate(0, 0, 1).Add(1 * time.Hour)
	assert.True(t, completion.Equal(wantCompletion))
	assert.True(t, completion.After(order.CreationAt(initialDate)))
}

func TestOrderItemsExpandInStandardSmallBoxOrder(t *testing.T) {
	order := &Order{ID: "O1", QStandard: 2, QSmall: 1, QBox: 3, PickupID: "A", DeliveryID: "B"}
	items := order.Items()
	require.Len(t, items, 6)
	assert.Equal(t, ClassStandard, items[0].ID.Class)
	assert.Equal(t, ClassStandard, items[1].ID.Class)
	assert.Equal(t, ClassSmall, items[2].ID.Class)
	assert.Equal(t, ClassBox, items[3].ID.Class)
	assert.Equal(t, "O1_standard_0", items[0].ID.String())
}
