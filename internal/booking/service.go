package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/pkg/apperror"
	"github.com/roomdesk/conference-booking-backend/internal/room"
	"github.com/roomdesk/conference-booking-backend/internal/user"
)

// UserDirectory resolves a caller identity to a user record.
// user.Service satisfies this.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RoomDirectory resolves a room ID to a room record. room.Service satisfies
// this.
type RoomDirectory interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// CreateRequest carries a booking request. UserID is the caller identity,
// always passed in explicitly by the transport layer.
type CreateRequest struct {
	UserID         string
	RoomID         string
	StartTime      time.Time
	EndTime        time.Time
	Purpose        string
	AttendeesCount int
}

type Service interface {
	// Create admits a booking request. Validation runs in a fixed order,
	// each step with its own error: identity, room, capacity, slot
	// conflict. On success the booking is persisted as pending.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListByUser returns the given user's bookings in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)

	// List returns bookings matching the filter, for the admin listing.
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus sets a booking's status. Any status may be set from any
	// prior status; an approval is re-validated against the other approved
	// bookings for the room first.
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)

	// Stats aggregates booking counts by status.
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	rooms RoomDirectory

	// Admission for a room (overlap check + write) is serialized with a
	// per-room mutex so two concurrent requests cannot both pass the check.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository, users UserDirectory, rooms RoomDirectory) Service {
	return &service{
		repo:  repo,
		users: users,
		rooms: rooms,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *service) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[roomID] = l
	}
	return l
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidTimeRange
	}

	// 1. Caller identity must resolve to a known user.
	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. The room must exist.
	r, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	// 3. Attendees must fit the room.
	if req.AttendeesCount > r.Capacity {
		return nil, apperror.Wrap(ErrCapacityExceeded, ErrCapacityExceeded.Code,
			fmt.Sprintf("attendees count exceeds room capacity, maximum: %d", r.Capacity))
	}

	// 4. The slot must be free of approved bookings. Pending and rejected
	// bookings never block a request.
	lock := s.roomLock(req.RoomID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := s.repo.HasApprovedOverlap(ctx, req.RoomID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	b := &Booking{
		RoomID:         req.RoomID,
		UserID:         req.UserID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Purpose:        req.Purpose,
		AttendeesCount: req.AttendeesCount,
		Status:         StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	b.RoomName = r.Name
	b.UserName = u.Username
	b.UserEmail = u.Email
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == StatusApproved {
		// Approving must not produce two overlapping approved bookings, so
		// the slot is re-checked against the other approved bookings under
		// the room lock before committing.
		lock := s.roomLock(b.RoomID)
		lock.Lock()
		defer lock.Unlock()

		conflict, err := s.repo.HasApprovedOverlap(ctx, b.RoomID, b.StartTime, b.EndTime, b.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrSlotConflict
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.CountByStatus(ctx)
}
