package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"testing"
	"time"

	"storehub_backend/internal/config"
	"storehub_backend/internal/models"
	"storehub_backend/internal/pkg/email"
	"storehub_backend/internal/repositories"

	"gorm.io/datatypes"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Store.BaseURL = "http://localhost:3000"
	cfg.Store.DefaultMinStock = 5
	config.AppConfig = cfg

	os.Exit(m.Run())
}

// In-memory repository fakes shared by the service tests.

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
	nextID        int

	failCreateFor map[string]bool
	failBulk      bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: make(map[string]*models.Notification),
		failCreateFor: make(map[string]bool),
	}
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	if r.failCreateFor[n.UserID] {
		return fmt.Errorf("insert failed for user %s", n.UserID)
	}
	r.nextID++
	if n.ID == "" {
		n.ID = fmt.Sprintf("notification-%03d", r.nextID)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	stored := *n
	r.notifications[n.ID] = &stored
	return nil
}

func (r *fakeNotificationRepo) CreateBulkNotifications(notifications []*models.Notification) error {
	if r.failBulk {
		return fmt.Errorf("bulk insert failed")
	}
	for _, n := range notifications {
		if err := r.CreateNotification(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindNotificationByID(id string) (*models.Notification, error) {
	n, ok := r.notifications[id]
	if !ok {
		return nil, repositories.ErrNotificationNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeNotificationRepo) FindUserNotifications(userID string, criteria repositories.NotificationCriteria) ([]models.Notification, int64, error) {
	matched := r.filter(func(n *models.Notification) bool {
		if n.UserID != userID {
			return false
		}
		if criteria.UnreadOnly && n.IsRead {
			return false
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			return false
		}
		return true
	})

	total := int64(len(matched))
	return paginate(matched, criteria.Page, criteria.PageSize), total, nil
}

func (r *fakeNotificationRepo) MarkAsRead(notificationID string) error {
	n, ok := r.notifications[notificationID]
	if !ok || n.IsRead {
		return repositories.ErrNotificationNotFound
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(userID string) (int64, error) {
	var marked int64
	now := time.Now()
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
			marked++
		}
	}
	return marked, nil
}

func (r *fakeNotificationRepo) CleanOldNotifications(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var deleted int64
	for id, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			delete(r.notifications, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(userID string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) FindAllNotifications(criteria repositories.AdminNotificationCriteria) ([]models.Notification, int64, error) {
	matched := r.filter(func(n *models.Notification) bool {
		if criteria.UserID != "" && n.UserID != criteria.UserID {
			return false
		}
		if criteria.Type != "" && n.Type != criteria.Type {
			return false
		}
		if criteria.UnreadOnly && n.IsRead {
			return false
		}
		return true
	})

	total := int64(len(matched))
	return paginate(matched, criteria.Page, criteria.PageSize), total, nil
}

func (r *fakeNotificationRepo) CreateBroadcastNotification(userID, title, message string) *models.Notification {
	return &models.Notification{
		UserID:  userID,
		Type:    repositories.NotificationTypeAdminBroadcast,
		Title:   title,
		Message: message,
	}
}

func (r *fakeNotificationRepo) CreateLowStockNotification(adminID string, product *models.Product) (*models.Notification, error) {
	data, err := json.Marshal(map[string]interface{}{
		"product_id": product.ID,
		"quantity":   product.StockQuantity,
		"min_stock":  product.MinStock,
	})
	if err != nil {
		return nil, err
	}

	return &models.Notification{
		UserID:  adminID,
		Type:    repositories.NotificationTypeLowStock,
		Title:   "Low stock alert",
		Message: fmt.Sprintf("Product %q is down to %d units (threshold %d)", product.Name, product.StockQuantity, product.MinStock),
		Data:    datatypes.JSON(data),
	}, nil
}

func (r *fakeNotificationRepo) CreateOrderStatusNotification(userID, orderID string, status models.OrderStatus) error {
	return r.CreateNotification(&models.Notification{
		UserID:  userID,
		Type:    repositories.NotificationTypeOrderStatus,
		Title:   "Order update",
		Message: fmt.Sprintf("Your order is now %s", status),
	})
}

func (r *fakeNotificationRepo) filter(keep func(*models.Notification) bool) []models.Notification {
	var matched []models.Notification
	for _, n := range r.notifications {
		if keep(n) {
			matched = append(matched, *n)
		}
	}
	// Newest first, id breaks ties, mirroring the query ordering.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return matched
}

func paginate(items []models.Notification, page, pageSize int) []models.Notification {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%03d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(userID string, status models.UserStatus) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindByRole(role models.UserRole, limit, offset int) ([]models.User, error) {
	all, err := r.FindAllByRole(role)
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) FindAllByRole(role models.UserRole) ([]models.User, error) {
	var matched []models.User
	for _, u := range r.users {
		if u.Role == role && u.Status == models.UserStatusActive {
			matched = append(matched, *u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (r *fakeUserRepo) CountByRole(role models.UserRole) (int64, error) {
	users, err := r.FindAllByRole(role)
	return int64(len(users)), err
}

type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(token *models.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeTokenRepo) FindByToken(tokenString string) (*models.RefreshToken, error) {
	t, ok := r.tokens[tokenString]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (r *fakeTokenRepo) DeleteByToken(tokenString string) error {
	delete(r.tokens, tokenString)
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(userID string) error {
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanExpired() error {
	now := time.Now()
	for k, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return repositories.ErrProductAlreadyExists
		}
	}
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%03d", len(r.products)+1)
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(id string) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repositories.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) FindAll(criteria repositories.ProductCriteria) ([]models.Product, int64, error) {
	var matched []models.Product
	for _, p := range r.products {
		if criteria.ActiveOnly && !p.Active {
			continue
		}
		matched = append(matched, *p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *fakeProductRepo) FindLowStock() ([]models.Product, error) {
	var matched []models.Product
	for _, p := range r.products {
		if p.Active && p.LowStock() {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].StockQuantity < matched[j].StockQuantity })
	return matched, nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, quantity int) error {
	p, ok := r.products[productID]
	if !ok {
		return repositories.ErrProductNotFound
	}
	p.StockQuantity = quantity
	return nil
}

type fakeOrderRepo struct {
	orders []models.Order
}

func (r *fakeOrderRepo) FindByID(id string) (*models.Order, error) {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return &r.orders[i], nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindUserOrders(userID string, page, pageSize int) ([]models.Order, int64, error) {
	var matched []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeOrderRepo) CountByUser(userID string) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}

// fakeEmailSender records delivered mail and can fail per recipient.
type fakeEmailSender struct {
	sent    []sentMail
	failFor map[string]bool
}

type sentMail struct {
	to       string
	subject  string
	template string
	data     email.LowStockData
}

func newFakeEmailSender() *fakeEmailSender {
	return &fakeEmailSender{failFor: make(map[string]bool)}
}

func (s *fakeEmailSender) Send(e *email.Email) error { return nil }

func (s *fakeEmailSender) SendTemplate(to []string, subject, templateName string, data interface{}) error {
	return nil
}

func (s *fakeEmailSender) SendNotification(to, subject, message string) error { return nil }

func (s *fakeEmailSender) SendLowStockAlert(to, adminName string, data email.LowStockData) error {
	if s.failFor[to] {
		return fmt.Errorf("smtp: mailbox unavailable")
	}
	s.sent = append(s.sent, sentMail{
		to:       to,
		subject:  "Low stock: " + data.ProductName,
		template: "low_stock",
		data:     data,
	})
	return nil
}
