package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storehub_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound    = errors.New("notification not found")
	ErrInvalidNotificationData = errors.New("invalid notification data")
)

// Notification type constants
const (
	NotificationTypeAdminBroadcast = "admin_broadcast"
	NotificationTypeOrderStatus    = "order_status"
	NotificationTypePointsEarned   = "points_earned"
	NotificationTypeLowStock       = "low_stock"
)

type NotificationRepository interface {
	// Notification operations
	CreateNotification(notification *models.Notification) error
	CreateBulkNotifications(notifications []*models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(notificationID string) error
	MarkAllAsRead(userID string) (int64, error)
	CleanOldNotifications(days int) (int64, error)

	// Notification stats
	GetUnreadCount(userID string) (int64, error)

	// Admin operations
	FindAllNotifications(criteria AdminNotificationCriteria) ([]models.Notification, int64, error)

	// Factory methods for common notification types
	CreateBroadcastNotification(userID, title, message string) *models.Notification
	CreateLowStockNotification(adminID string, product *models.Product) (*models.Notification, error)
	CreateOrderStatusNotification(userID, orderID string, status models.OrderStatus) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// Search criteria for a user's notifications
type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page" binding:"min=1"`
	PageSize   int    `form:"page_size" binding:"min=1,max=100"`
}

// Admin search criteria
type AdminNotificationCriteria struct {
	UserID     string `form:"user_id"`
	Type       string `form:"type"`
	UnreadOnly bool   `form:"unread_only"`
	Page       int    `form:"page" binding:"min=1"`
	PageSize   int    `form:"page_size" binding:"min=1,max=100"`
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// Notification operations

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if err := r.validateNotification(notification); err != nil {
		return err
	}

	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBulkNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	for _, notification := range notifications {
		if err := r.validateNotification(notification); err != nil {
			return err
		}
	}

	return r.db.CreateInBatches(notifications, 100).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	var total int64
	if err := query.Model(&models.Notification{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	// Newest first; id is the stable tie-break for equal timestamps.
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND is_read = ?", notificationID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Either missing or already read; the caller distinguishes via
		// FindNotificationByID so that re-marking stays a no-op success.
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})

	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days)
	result := r.db.Where("is_read = ? AND created_at < ?", true, cutoffDate).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

// Notification stats

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// Admin operations

func (r *NotificationRepositoryImpl) FindAllNotifications(criteria AdminNotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Model(&models.Notification{})

	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}

	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

// Factory methods for common notification types

func (r *NotificationRepositoryImpl) CreateBroadcastNotification(userID, title, message string) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Type:    NotificationTypeAdminBroadcast,
		Title:   title,
		Message: message,
	}
}

func (r *NotificationRepositoryImpl) CreateLowStockNotification(adminID string, product *models.Product) (*models.Notification, error) {
	data := map[string]interface{}{
		"product_id": product.ID,
		"quantity":   product.StockQuantity,
		"min_stock":  product.MinStock,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &models.Notification{
		UserID:  adminID,
		Type:    NotificationTypeLowStock,
		Title:   "Low stock alert",
		Message: fmt.Sprintf("Product %q is down to %d units (threshold %d)", product.Name, product.StockQuantity, product.MinStock),
		Data:    datatypes.JSON(jsonData),
	}, nil
}

func (r *NotificationRepositoryImpl) CreateOrderStatusNotification(userID, orderID string, status models.OrderStatus) error {
	data := map[string]interface{}{
		"order_id": orderID,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    NotificationTypeOrderStatus,
		Title:   "Order update",
		Message: fmt.Sprintf("Your order is now %s", status),
		Data:    datatypes.JSON(jsonData),
	}

	return r.CreateNotification(notification)
}

// Helper methods

func (r *NotificationRepositoryImpl) validateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}

	if notification.Type == "" {
		return errors.New("notification type is required")
	}

	if notification.Title == "" {
		return errors.New("notification title is required")
	}

	validTypes := map[string]bool{
		NotificationTypeAdminBroadcast: true,
		NotificationTypeOrderStatus:    true,
		NotificationTypePointsEarned:   true,
		NotificationTypeLowStock:       true,
	}

	if !validTypes[notification.Type] {
		return fmt.Errorf("invalid notification type: %s", notification.Type)
	}

	if len(notification.Data) > 0 {
		if !json.Valid(notification.Data) {
			return ErrInvalidNotificationData
		}
	}

	return nil
}
