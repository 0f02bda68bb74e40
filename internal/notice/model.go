package notice

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("notice not found")
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("body is required")
	ErrInvalidWindow = errors.New("starts_at must be before ends_at")
)

// Notice is an admin-published announcement, e.g. a maintenance closure.
// RoomID is set when the notice concerns a specific room; nil means
// site-wide. The display window [StartsAt, EndsAt) bounds when the notice
// is considered active; EndsAt nil means open-ended.
type Notice struct {
	ID        string
	Title     string
	Body      string
	RoomID    *string
	StartsAt  time.Time
	EndsAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing notices.
type Filter struct {
	RoomID   string
	ActiveAt *time.Time
	Page     int
	PageSize int
}
