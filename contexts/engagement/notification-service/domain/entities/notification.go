package entities

import (
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationTypeMilestone NotificationType = "milestone"
	NotificationTypeDonation  NotificationType = "donation"
	NotificationTypeSystem    NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeMilestone, NotificationTypeDonation, NotificationTypeSystem:
		return true
	default:
		return false
	}
}

// Notification is an in-app message for a single recipient.
type Notification struct {
	NotificationID string
	RecipientID    string
	Type           NotificationType
	Message        string
	Read           bool
	CampaignID     string
	MilestoneIndex *int
	Timestamp      time.Time
}

func (n Notification) ValidateBasics() bool {
	return strings.TrimSpace(n.RecipientID) != "" &&
		strings.TrimSpace(n.Message) != "" &&
		n.Type.Valid()
}
