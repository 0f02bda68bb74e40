package notice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/room"
)

// RoomDirectory resolves a room ID. room.Service satisfies this.
type RoomDirectory interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

var ErrRoomNotFound = errors.New("room not found")

type CreateRequest struct {
	Title    string
	Body     string
	RoomID   *string
	StartsAt *time.Time
	EndsAt   *time.Time
}

type UpdateRequest struct {
	Title    *string
	Body     *string
	StartsAt *time.Time
	EndsAt   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notice, error)
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	rooms RoomDirectory
}

func NewService(repo Repository, rooms RoomDirectory) Service {
	return &service{repo: repo, rooms: rooms}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Notice, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}

	startsAt := time.Now().UTC()
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}
	if req.EndsAt != nil && !startsAt.Before(*req.EndsAt) {
		return nil, ErrInvalidWindow
	}

	if req.RoomID != nil {
		if _, err := s.rooms.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, room.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
	}

	n := &Notice{
		Title:    req.Title,
		Body:     req.Body,
		RoomID:   req.RoomID,
		StartsAt: startsAt,
		EndsAt:   req.EndsAt,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Notice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		n.Title = *req.Title
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		n.Body = *req.Body
	}
	if req.StartsAt != nil {
		n.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		n.EndsAt = req.EndsAt
	}
	if n.EndsAt != nil && !n.StartsAt.Before(*n.EndsAt) {
		return nil, ErrInvalidWindow
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
