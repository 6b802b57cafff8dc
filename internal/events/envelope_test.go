package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiamF-2261667/fruckr-sub001/internal/order"
)

func TestOrderPlacedEnvelopeWireFormat(t *testing.T) {
	o := &order.Order{
		ID:          "order-1",
		FoodtruckID: "ft-7",
		ClientUID:   "client-1",
		CreatedAt:   time.Now().UTC(),
		Items: []order.Item{
			{Name: "Taco", Quantity: 2, Price: 3.50},
		},
	}

	payload := OrderPlacedPayload{
		OrderID:     o.ID,
		FoodtruckID: o.FoodtruckID,
		ClientUID:   o.ClientUID,
		TotalAmount: o.TotalAmount(),
		Items:       []OrderLine{{Name: "Taco", Quantity: 2, Price: 3.50}},
		Timestamp:   o.CreatedAt,
	}
	env := newEnvelope(EventTypeOrderPlaced, orderPlacedSchema, o.FoodtruckID, defaultProducer, payload)

	body, err := json.Marshal(env)
	require.NoError(t, err)

	var asMap map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &asMap))

	for _, field := range []string{"eventName", "eventVersion", "eventId", "producer", "partitionKey", "occurredAt", "schema", "payload"} {
		assert.Contains(t, asMap, field)
	}
	assert.Equal(t, "OrderPlaced", asMap["eventName"])
	assert.Equal(t, "fruckr.order.placed.v1", asMap["schema"])
	assert.Equal(t, "ft-7", asMap["partitionKey"])

	payloadMap, ok := asMap["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "order-1", payloadMap["orderId"])
	assert.Equal(t, 7.0, payloadMap["totalAmount"])
}

func TestEnvelopeValidate(t *testing.T) {
	env := newEnvelope(EventTypeOrderReady, orderReadySchema, "ft-7", defaultProducer, OrderReadyPayload{})

	require.NoError(t, env.Validate(EventTypeOrderReady, 1))
	assert.Error(t, env.Validate("WrongEvent", 1))
	assert.Error(t, env.Validate(EventTypeOrderReady, 2))

	env.PartitionKey = ""
	assert.Error(t, env.Validate(EventTypeOrderReady, 1))
}
