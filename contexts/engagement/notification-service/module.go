package notificationservice

import (
	"log/slog"

	httpadapter "chainimpact/contexts/engagement/notification-service/adapters/http"
	"chainimpact/contexts/engagement/notification-service/adapters/memory"
	"chainimpact/contexts/engagement/notification-service/application/commands"
	"chainimpact/contexts/engagement/notification-service/application/queries"
	"chainimpact/contexts/engagement/notification-service/application/workers"
	"chainimpact/contexts/engagement/notification-service/domain/entities"
	"chainimpact/contexts/engagement/notification-service/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Append   commands.AppendNotificationUseCase
	Consumer workers.EventConsumer
	Store    *memory.Store
}

type Dependencies struct {
	Notifications ports.NotificationRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	appendNotification := commands.AppendNotificationUseCase{
		Notifications: deps.Notifications,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}
	markRead := commands.MarkReadUseCase{
		Notifications: deps.Notifications,
		Logger:        deps.Logger,
	}
	markAllRead := commands.MarkAllReadUseCase{
		Notifications: deps.Notifications,
		Logger:        deps.Logger,
	}
	listNotifications := queries.ListNotificationsUseCase{
		Notifications: deps.Notifications,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			ListNotifications: listNotifications,
			MarkRead:          markRead,
			MarkAllRead:       markAllRead,
			Logger:            deps.Logger,
		},
		Append: appendNotification,
		Consumer: workers.EventConsumer{
			Append: appendNotification,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Notification, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Notifications: store,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	return module
}
