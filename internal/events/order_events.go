package events

import "time"

const (
	EventTypeOrderPlaced    = "OrderPlaced"
	EventTypeOrderReady     = "OrderReady"
	EventTypeOrderCollected = "OrderCollected"

	orderPlacedSchema    = "fruckr.order.placed.v1"
	orderReadySchema     = "fruckr.order.ready.v1"
	orderCollectedSchema = "fruckr.order.collected.v1"
)

// OrderLine mirrors the immutable order item snapshot on the wire.
type OrderLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID     string      `json:"orderId"`
	FoodtruckID string      `json:"foodtruckId"`
	ClientUID   string      `json:"clientUid"`
	TotalAmount float64     `json:"totalAmount"`
	Items       []OrderLine `json:"items"`
	Timestamp   time.Time   `json:"timestamp"`
}

type OrderReadyPayload struct {
	OrderID     string    `json:"orderId"`
	FoodtruckID string    `json:"foodtruckId"`
	ReadyByUID  string    `json:"readyByUid"`
	Timestamp   time.Time `json:"timestamp"`
}

type OrderCollectedPayload struct {
	OrderID        string    `json:"orderId"`
	FoodtruckID    string    `json:"foodtruckId"`
	CollectedByUID string    `json:"collectedByUid"`
	Timestamp      time.Time `json:"timestamp"`
}
