package services

import (
	"storehub_backend/internal/models"
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services/dto"
	"storehub_backend/pkg/apperrors"
)

type NotificationService interface {
	// Notification operations
	GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	MarkAsRead(userID, notificationID string) (*dto.NotificationResponse, error)
	MarkAllAsRead(userID string) (*dto.MarkAllReadResponse, error)
	GetUnreadCount(userID string) (*dto.UnreadCountResponse, error)

	// Admin operations
	BroadcastToClients(req *dto.BroadcastRequest) (*dto.BroadcastReport, error)
	GetAllNotifications(criteria repositories.AdminNotificationCriteria) (*dto.NotificationListResponse, error)
	CleanOldNotifications(days int) (*dto.CleanupResponse, error)

	// Factory operations used by other services
	NotifyOrderStatus(userID, orderID string, status models.OrderStatus) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// ---------------- Notification operations ----------------

func (s *notificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	normalizeNotificationCriteria(&criteria)

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildNotificationListResponse(notifications, total, criteria.Page, criteria.PageSize), nil
}

// MarkAsRead marks one of the user's notifications as read. Marking an
// already-read notification succeeds without touching ReadAt. A
// notification that does not exist, or belongs to another user, reports
// not found either way so ownership is not leaked.
func (s *notificationService) MarkAsRead(userID, notificationID string) (*dto.NotificationResponse, error) {
	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if notification.UserID != userID {
		return nil, apperrors.ErrNotFound(repositories.ErrNotificationNotFound)
	}

	if notification.IsRead {
		return s.buildNotificationResponse(notification), nil
	}

	if err := s.notificationRepo.MarkAsRead(notificationID); err != nil {
		// A concurrent mark between Find and Update also lands here;
		// re-read to report the current state.
		refreshed, findErr := s.notificationRepo.FindNotificationByID(notificationID)
		if findErr == nil && refreshed.IsRead {
			return s.buildNotificationResponse(refreshed), nil
		}
		return nil, apperrors.InternalError(err)
	}

	refreshed, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildNotificationResponse(refreshed), nil
}

func (s *notificationService) MarkAllAsRead(userID string) (*dto.MarkAllReadResponse, error) {
	marked, err := s.notificationRepo.MarkAllAsRead(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MarkAllReadResponse{MarkedCount: marked}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.notificationRepo.GetUnreadCount(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UnreadCountResponse{UnreadCount: count}, nil
}

// ---------------- Admin operations ----------------

// BroadcastToClients fans one announcement out to every active client.
// Recipients that cannot be written are collected in the report rather
// than aborting the whole broadcast.
func (s *notificationService) BroadcastToClients(req *dto.BroadcastRequest) (*dto.BroadcastReport, error) {
	if req.Message == "" {
		return nil, apperrors.ErrEmptyBroadcast
	}

	title := req.Title
	if title == "" {
		title = "Announcement"
	}

	clients, err := s.userRepo.FindAllByRole(models.UserRoleClient)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	report := &dto.BroadcastReport{Recipients: len(clients)}
	if len(clients) == 0 {
		return report, nil
	}

	notifications := make([]*models.Notification, 0, len(clients))
	for _, client := range clients {
		notification := s.notificationRepo.CreateBroadcastNotification(client.ID, title, req.Message)
		notification.Data = req.Data
		notifications = append(notifications, notification)
	}

	if err := s.notificationRepo.CreateBulkNotifications(notifications); err == nil {
		report.Delivered = len(notifications)
		return report, nil
	}

	// Batch insert failed; retry per recipient so one bad row cannot
	// sink the rest.
	for _, notification := range notifications {
		if err := s.notificationRepo.CreateNotification(notification); err != nil {
			report.Failed = append(report.Failed, dto.BroadcastFailure{
				UserID: notification.UserID,
				Reason: err.Error(),
			})
			continue
		}
		report.Delivered++
	}

	return report, nil
}

func (s *notificationService) GetAllNotifications(criteria repositories.AdminNotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}
	if criteria.PageSize > 100 {
		criteria.PageSize = 100
	}

	notifications, total, err := s.notificationRepo.FindAllNotifications(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildNotificationListResponse(notifications, total, criteria.Page, criteria.PageSize), nil
}

func (s *notificationService) CleanOldNotifications(days int) (*dto.CleanupResponse, error) {
	if days < 1 {
		return nil, apperrors.NewBadRequestError("days must be a positive integer")
	}

	deleted, err := s.notificationRepo.CleanOldNotifications(days)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.CleanupResponse{DeletedCount: deleted}, nil
}

// ---------------- Factory operations ----------------

func (s *notificationService) NotifyOrderStatus(userID, orderID string, status models.OrderStatus) error {
	return s.notificationRepo.CreateOrderStatusNotification(userID, orderID, status)
}

// ---------------- Helpers ----------------

func normalizeNotificationCriteria(criteria *repositories.NotificationCriteria) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 {
		criteria.PageSize = 20
	}
	if criteria.PageSize > 100 {
		criteria.PageSize = 100
	}
}

func (s *notificationService) buildNotificationResponse(notification *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Type:      notification.Type,
		Title:     notification.Title,
		Message:   notification.Message,
		Data:      notification.Data,
		IsRead:    notification.IsRead,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
}

func (s *notificationService) buildNotificationListResponse(notifications []models.Notification, total int64, page, pageSize int) *dto.NotificationListResponse {
	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, *s.buildNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    calculateTotalPages(total, pageSize),
	}
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}
