package events

import "time"

const (
	EventTypeInvitationCreated = "InvitationCreated"

	invitationCreatedSchema = "fruckr.invitation.created.v1"
)

type InvitationCreatedPayload struct {
	InvitationID string    `json:"invitationId"`
	FoodtruckID  string    `json:"foodtruckId"`
	InvitedEmail string    `json:"invitedEmail"`
	Timestamp    time.Time `json:"timestamp"`
}
