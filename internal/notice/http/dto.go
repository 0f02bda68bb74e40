package http

import (
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/notice"
	"github.com/roomdesk/conference-booking-backend/internal/pkg/request"
)

// ListNoticesRequest defines query parameters for listing notices.
type ListNoticesRequest struct {
	request.ListParams
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	ActiveOnly bool   `form:"active_only"`
}

type NoticeResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	RoomID    *string    `json:"room_id"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func NewNoticeResponse(n *notice.Notice) NoticeResponse {
	return NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		RoomID:    n.RoomID,
		StartsAt:  n.StartsAt,
		EndsAt:    n.EndsAt,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type CreateNoticeBody struct {
	Title    string     `json:"title" binding:"required"`
	Body     string     `json:"body" binding:"required"`
	RoomID   *string    `json:"room_id" binding:"omitempty,uuid"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

type UpdateNoticeBody struct {
	Title    *string    `json:"title"`
	Body     *string    `json:"body"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}
