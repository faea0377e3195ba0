package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"chainimpact/contexts/engagement/notification-service/domain/entities"
	domainerrors "chainimpact/contexts/engagement/notification-service/domain/errors"
	"chainimpact/contexts/engagement/notification-service/ports"

	"github.com/google/uuid"
)

// Store backs the notification ports in memory for tests and local runs.
type Store struct {
	mu            sync.RWMutex
	notifications map[string]entities.Notification
}

func NewStore(seed []entities.Notification) *Store {
	notifications := make(map[string]entities.Notification, len(seed))
	for _, item := range seed {
		notifications[item.NotificationID] = item
	}
	return &Store{notifications: notifications}
}

func (s *Store) AppendNotification(_ context.Context, notification entities.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications[notification.NotificationID] = notification
	return nil
}

func (s *Store) GetNotification(_ context.Context, notificationID string) (entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists {
		return entities.Notification{}, domainerrors.ErrNotificationNotFound
	}
	return item, nil
}

func (s *Store) ListNotifications(_ context.Context, query ports.ListQuery) ([]entities.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]entities.Notification, 0)
	for _, item := range s.notifications {
		if item.RecipientID != query.RecipientID {
			continue
		}
		if query.UnreadOnly && item.Read {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if query.Limit > 0 && len(result) > query.Limit {
		result = result[:query.Limit]
	}
	return result, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.notifications[strings.TrimSpace(notificationID)]
	if !exists {
		return domainerrors.ErrNotificationNotFound
	}
	item.Read = true
	s.notifications[item.NotificationID] = item
	return nil
}

func (s *Store) MarkAllRead(_ context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for id, item := range s.notifications {
		if item.RecipientID != recipientID || item.Read {
			continue
		}
		item.Read = true
		s.notifications[id] = item
		updated++
	}
	return updated, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
