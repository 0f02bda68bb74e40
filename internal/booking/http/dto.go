package http

import (
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/booking"
	"github.com/roomdesk/conference-booking-backend/internal/pkg/request"
)

// CreateBookingBody defines the payload for requesting a booking.
type CreateBookingBody struct {
	RoomID         string    `json:"room_id" binding:"required,uuid"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	Purpose        string    `json:"purpose"`
	AttendeesCount int       `json:"attendees_count" binding:"omitempty,min=0"`
}

// UpdateStatusBody defines the payload for an admin status change.
type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// ListBookingsRequest defines query parameters for the admin listing.
type ListBookingsRequest struct {
	request.ListParams
	RoomID        string     `form:"room_id" binding:"omitempty,uuid"`
	UserID        string     `form:"user_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
}

// BookingResponse is the view of a booking joined with room and user info.
type BookingResponse struct {
	ID             string    `json:"id"`
	RoomID         string    `json:"room_id"`
	RoomName       string    `json:"room_name"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Purpose        string    `json:"purpose"`
	AttendeesCount int       `json:"attendees_count"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		RoomID:         b.RoomID,
		RoomName:       b.RoomName,
		UserName:       b.UserName,
		UserEmail:      b.UserEmail,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Purpose:        b.Purpose,
		AttendeesCount: b.AttendeesCount,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// StatsResponse holds aggregate booking counts.
type StatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}
