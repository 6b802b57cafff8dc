package foodtruck

import "time"

type Foodtruck struct {
	ID        string    `json:"foodtruckId"`
	OwnerUID  string    `json:"ownerUid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type MenuItem struct {
	ID          string  `json:"menuItemId"`
	FoodtruckID string  `json:"foodtruckId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
}

// Worker is a staff membership on a foodtruck. The owner is not stored
// here; owner membership is implicit via Foodtruck.OwnerUID.
type Worker struct {
	UID         string    `json:"uid"`
	FoodtruckID string    `json:"foodtruckId"`
	Email       string    `json:"email"`
	AddedAt     time.Time `json:"addedAt"`
}
