package order

import "time"

// Item is an immutable snapshot line: name and unit price are captured at
// order time, so later menu changes never alter historical orders.
type Item struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Postal  string `json:"postal"`
	HouseNr string `json:"houseNr"`
	Bus     string `json:"bus,omitempty"`
}

func (a Address) Valid() bool {
	return a.City != "" && a.Street != "" && a.Postal != "" && a.HouseNr != ""
}

type Order struct {
	ID          string  `json:"orderId"`
	FoodtruckID string  `json:"foodtruckId"`
	ClientUID   string  `json:"clientUid"`
	Address     Address `json:"deliveryAddress"`
	Items       []Item  `json:"items"`
	Status      Status  `json:"status"`

	ReadyByUID     string     `json:"readyByUid,omitempty"`
	CollectedByUID string     `json:"collectedByUid,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReadyAt        *time.Time `json:"readyAt,omitempty"`
	CollectedAt    *time.Time `json:"collectedAt,omitempty"`
}

func (o *Order) TotalAmount() float64 {
	total := 0.0
	for _, it := range o.Items {
		total += float64(it.Quantity) * it.Price
	}
	return total
}
