package errors

import "errors"

var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrInvalidNotificationInput = errors.New("invalid notification input")
	ErrRecipientRequired        = errors.New("recipient id is required")
)
