package services

import (
	"fmt"

	"storehub_backend/internal/config"
	"storehub_backend/internal/logger"
	"storehub_backend/internal/models"
	"storehub_backend/internal/pkg/email"
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services/dto"
	"storehub_backend/pkg/apperrors"
)

type StockAlertService interface {
	// CheckAndAlert notifies every admin when the product is at or below
	// its threshold. Returns a report of what was delivered.
	CheckAndAlert(product *models.Product) (*dto.StockAlertReport, error)
}

type stockAlertService struct {
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
	sender           email.Sender
}

func NewStockAlertService(
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	sender email.Sender,
) StockAlertService {
	return &stockAlertService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		sender:           sender,
	}
}

func (s *stockAlertService) CheckAndAlert(product *models.Product) (*dto.StockAlertReport, error) {
	report := &dto.StockAlertReport{}

	if !product.LowStock() {
		return report, nil
	}
	report.Triggered = true

	admins, err := s.userRepo.FindAllByRole(models.UserRoleAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	report.AdminCount = len(admins)

	if len(admins) == 0 {
		logger.Warn("low stock alert has no admin recipients", "product_id", product.ID)
		return report, nil
	}

	s.createInAppAlerts(admins, product)

	data := email.LowStockData{
		ProductName: product.Name,
		SKU:         product.SKU,
		Quantity:    product.StockQuantity,
		Threshold:   product.MinStock,
		ListingURL:  s.listingURL(),
	}

	// One failed mailbox must not stop the rest of the fan-out.
	for _, admin := range admins {
		if err := s.sender.SendLowStockAlert(admin.Email, admin.Name, data); err != nil {
			logger.MailLog(admin.Email, "Low stock: "+product.Name, err)
			report.EmailFailures = append(report.EmailFailures, dto.StockAlertFailure{
				Email:  admin.Email,
				Reason: err.Error(),
			})
			continue
		}
		logger.MailLog(admin.Email, "Low stock: "+product.Name, nil)
		report.EmailsSent++
	}

	return report, nil
}

// createInAppAlerts writes a low_stock notification for each admin.
// Failures are logged but never fail the alert itself.
func (s *stockAlertService) createInAppAlerts(admins []models.User, product *models.Product) {
	notifications := make([]*models.Notification, 0, len(admins))
	for _, admin := range admins {
		notification, err := s.notificationRepo.CreateLowStockNotification(admin.ID, product)
		if err != nil {
			logger.WithError(err).Warn("failed to build low stock notification", "admin_id", admin.ID)
			continue
		}
		notifications = append(notifications, notification)
	}

	if err := s.notificationRepo.CreateBulkNotifications(notifications); err != nil {
		logger.WithError(err).Warn("failed to store low stock notifications", "product_id", product.ID)
	}
}

func (s *stockAlertService) listingURL() string {
	cfg := config.GetConfig()
	if cfg == nil || cfg.Store.BaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/admin/products?low_stock=true", cfg.Store.BaseURL)
}
