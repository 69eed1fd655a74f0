package models

import "time"

// Notification is a delivery record for a member. The websocket stream
// pushes the same DTO; the row is the durable source of truth.
type Notification struct {
	ID        string     `json:"id"`
	MemberID  string     `json:"member_id"`
	Kind      string     `json:"kind"`
	Subject   string     `json:"subject"`
	Body      *string    `json:"body"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"-"`
}

type NotificationDTO struct {
	ID        string  `json:"id"`
	MemberID  string  `json:"member_id"`
	Kind      string  `json:"kind"`
	Subject   string  `json:"subject"`
	Body      *string `json:"body"`
	ReadAt    *string `json:"read_at"`
	CreatedAt string  `json:"created_at"`
}

func (n *Notification) DTO() NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		MemberID:  n.MemberID,
		Kind:      n.Kind,
		Subject:   n.Subject,
		Body:      n.Body,
		ReadAt:    ISOTimePtr(n.ReadAt),
		CreatedAt: ISOTime(n.CreatedAt),
	}
}
