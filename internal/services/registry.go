package services

import (
	"storehub_backend/internal/pkg/email"
	"storehub_backend/internal/repositories"
)

// ServiceContainer bundles every service behind one constructor so the
// app wiring stays in one place.
type ServiceContainer struct {
	Auth         AuthService
	User         UserService
	Notification NotificationService
	Product      ProductService
	StockAlert   StockAlertService
}

func NewServiceContainer(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	notificationRepo repositories.NotificationRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	sender email.Sender,
) *ServiceContainer {
	stockAlert := NewStockAlertService(userRepo, notificationRepo, sender)

	return &ServiceContainer{
		Auth:         NewAuthService(userRepo, tokenRepo),
		User:         NewUserService(userRepo, orderRepo),
		Notification: NewNotificationService(notificationRepo, userRepo),
		Product:      NewProductService(productRepo, stockAlert),
		StockAlert:   stockAlert,
	}
}
