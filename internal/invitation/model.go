package invitation

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Invitation is a single-use offer of worker membership on a foodtruck.
// Once accepted or declined it is terminal.
type Invitation struct {
	ID           string    `json:"invitationId"`
	FoodtruckID  string    `json:"foodtruckId"`
	InvitedEmail string    `json:"invitedEmail"`
	Status       Status    `json:"status"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
