package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NotificationDTO struct {
	NotificationID string `json:"notification_id"`
	RecipientID    string `json:"recipient_id"`
	Type           string `json:"type"`
	Message        string `json:"message"`
	Read           bool   `json:"read"`
	CampaignID     string `json:"campaign_id,omitempty"`
	MilestoneIndex *int   `json:"milestone_index,omitempty"`
	Timestamp      string `json:"timestamp"`
}

type ListNotificationsResponse struct {
	Items []NotificationDTO `json:"items"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
