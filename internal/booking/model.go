package booking

import (
	"net/http"
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, "room not found")
	ErrCapacityExceeded = apperror.New(http.StatusBadRequest, "attendees count exceeds room capacity")
	ErrSlotConflict     = apperror.New(http.StatusConflict, "room is already booked for this time slot")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
)

// Status is the booking lifecycle state. Bookings start pending; admins
// move them to approved or rejected, and may set any status from any prior
// one (rejections can be reopened).
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Booking represents a reservation request for a room time slot.
// The interval is half-open: [StartTime, EndTime). RoomName, UserName and
// UserEmail are joined at read time and never stored on the booking row.
type Booking struct {
	ID             string // UUID, assigned on insert
	RoomID         string
	RoomName       string
	UserID         string
	UserName       string
	UserEmail      string
	StartTime      time.Time
	EndTime        time.Time
	Purpose        string
	AttendeesCount int
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines parameters for the admin booking listing.
type Filter struct {
	RoomID        string
	UserID        string
	Status        string
	StartTimeFrom *time.Time
	StartTimeTo   *time.Time
	Page          int
	PageSize      int
}

// Stats holds aggregate booking counts by status.
// Total always equals Pending + Approved + Rejected since the status enum
// is closed.
type Stats struct {
	Total    int64
	Pending  int64
	Approved int64
	Rejected int64
}
