package dto

import (
	"time"

	"gorm.io/datatypes"
)

type BroadcastRequest struct {
	Title   string         `json:"title" validate:"omitempty,max=200"`
	Message string         `json:"message" validate:"required,max=2000"`
	Data    datatypes.JSON `json:"data,omitempty"`
}

// BroadcastFailure records one recipient the broadcast could not reach.
type BroadcastFailure struct {
	UserID string `json:"user_id"`
	Reason string `json:"reason"`
}

// BroadcastReport summarizes a broadcast fan-out.
type BroadcastReport struct {
	Recipients int                `json:"recipients"`
	Delivered  int                `json:"delivered"`
	Failed     []BroadcastFailure `json:"failed,omitempty"`
}

type NotificationResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      datatypes.JSON `json:"data,omitempty"`
	IsRead    bool           `json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int64                  `json:"total"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
	TotalPages    int                    `json:"total_pages"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}

type CleanupResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}
