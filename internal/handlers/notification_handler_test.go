package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"storehub_backend/internal/auth"
	"storehub_backend/internal/config"
	"storehub_backend/internal/models"
	"storehub_backend/internal/repositories"
	"storehub_backend/internal/services/dto"
	"storehub_backend/internal/validator"
	"storehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// stubNotificationService records calls and returns canned results.
type stubNotificationService struct {
	lastCriteria repositories.NotificationCriteria
	lastUserID   string

	markAsReadErr error
	broadcast     *dto.BroadcastReport
}

func (s *stubNotificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	s.lastUserID = userID
	s.lastCriteria = criteria
	return &dto.NotificationListResponse{
		Notifications: []dto.NotificationResponse{},
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *stubNotificationService) MarkAsRead(userID, notificationID string) (*dto.NotificationResponse, error) {
	s.lastUserID = userID
	if s.markAsReadErr != nil {
		return nil, s.markAsReadErr
	}
	return &dto.NotificationResponse{ID: notificationID, UserID: userID, IsRead: true}, nil
}

func (s *stubNotificationService) MarkAllAsRead(userID string) (*dto.MarkAllReadResponse, error) {
	return &dto.MarkAllReadResponse{MarkedCount: 2}, nil
}

func (s *stubNotificationService) GetUnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	return &dto.UnreadCountResponse{UnreadCount: 4}, nil
}

func (s *stubNotificationService) BroadcastToClients(req *dto.BroadcastRequest) (*dto.BroadcastReport, error) {
	if s.broadcast != nil {
		return s.broadcast, nil
	}
	return &dto.BroadcastReport{}, nil
}

func (s *stubNotificationService) GetAllNotifications(criteria repositories.AdminNotificationCriteria) (*dto.NotificationListResponse, error) {
	return &dto.NotificationListResponse{}, nil
}

func (s *stubNotificationService) CleanOldNotifications(days int) (*dto.CleanupResponse, error) {
	return &dto.CleanupResponse{DeletedCount: int64(days)}, nil
}

func (s *stubNotificationService) NotifyOrderStatus(userID, orderID string, status models.OrderStatus) error {
	return nil
}

func setupNotificationRouter(stub *stubNotificationService) *gin.Engine {
	router := gin.New()
	base := NewBaseHandler(validator.New())
	handler := NewNotificationHandler(base, stub)

	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestGetNotifications_RequiresAuth(t *testing.T) {
	router := setupNotificationRouter(&stubNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetNotifications_PassesPaginationToService(t *testing.T) {
	stub := &stubNotificationService{}
	router := setupNotificationRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications?page=3&page_size=250&unread_only=true", nil)
	req.Header.Set("Authorization", bearer(t, "user-001", "client"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-001", stub.lastUserID)
	assert.Equal(t, 3, stub.lastCriteria.Page)
	assert.Equal(t, 100, stub.lastCriteria.PageSize)
	assert.True(t, stub.lastCriteria.UnreadOnly)
}

func TestMarkAsRead_NotFoundEnvelope(t *testing.T) {
	stub := &stubNotificationService{
		markAsReadErr: apperrors.ErrNotFound(repositories.ErrNotificationNotFound),
	}
	router := setupNotificationRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/notifications/missing/read", nil)
	req.Header.Set("Authorization", bearer(t, "user-001", "client"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestBroadcast_ClientForbidden(t *testing.T) {
	router := setupNotificationRouter(&stubNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/broadcast", strings.NewReader(`{"message":"Flash sale!"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "user-001", "client"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBroadcast_AdminGetsReport(t *testing.T) {
	stub := &stubNotificationService{
		broadcast: &dto.BroadcastReport{Recipients: 3, Delivered: 3},
	}
	router := setupNotificationRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/broadcast", strings.NewReader(`{"message":"Flash sale!"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "admin-001", "admin"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"recipients":3`)
	assert.Contains(t, w.Body.String(), `"delivered":3`)
}

func TestBroadcast_MissingMessageFailsValidation(t *testing.T) {
	router := setupNotificationRouter(&stubNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/notifications/broadcast", strings.NewReader(`{"title":"No body"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "admin-001", "admin"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestCleanup_RejectsMissingDays(t *testing.T) {
	router := setupNotificationRouter(&stubNotificationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/notifications/cleanup", nil)
	req.Header.Set("Authorization", bearer(t, "admin-001", "admin"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
