package room

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/roomdesk/conference-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name      string
	Capacity  int
	Location  string
	Amenities string
	Available bool
}

type UpdateRequest struct {
	Name      *string
	Capacity  *int
	Location  *string
	Amenities *string
	Available *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	Delete(ctx context.Context, id string) error

	// UploadPhoto replaces the room's photo with the uploaded image.
	UploadPhoto(ctx context.Context, id string, header *multipart.FileHeader) (*Room, error)
	// OpenPhoto opens the room's photo (or its thumbnail) for reading.
	OpenPhoto(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	room := &Room{
		Name:      strings.TrimSpace(req.Name),
		Capacity:  req.Capacity,
		Location:  req.Location,
		Amenities: req.Amenities,
		Available: req.Available,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		room.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = *req.Location
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}
	if req.Available != nil {
		room.Available = *req.Available
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort cleanup of orphaned photo files.
	if room.PhotoPath != nil {
		s.storage.Delete(ctx, *room.PhotoPath)
		s.storage.Delete(ctx, thumbPath(*room.PhotoPath))
	}
	return nil
}

func (s *service) UploadPhoto(ctx context.Context, id string, header *multipart.FileHeader) (*Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Photos are small; buffer for the two encode passes.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	normalized, err := s.imgProc.Normalize(bytes.NewReader(fileBytes), 1600, 1600)
	if err != nil {
		return nil, ErrNotAnImage
	}

	photoID := uuid.New().String()
	// Sharding path: rooms/ab/UUID.jpg
	path := fmt.Sprintf("rooms/%s/%s.jpg", photoID[:2], photoID)

	if err := s.storage.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	if thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 200, 200); err == nil {
		// Thumbnail is optional; on failure the full photo endpoint still works.
		_ = s.storage.Save(ctx, thumbPath(path), thumb)
	}

	old := room.PhotoPath
	if err := s.repo.SetPhotoPath(ctx, id, &path); err != nil {
		return nil, err
	}
	room.PhotoPath = &path

	if old != nil {
		s.storage.Delete(ctx, *old)
		s.storage.Delete(ctx, thumbPath(*old))
	}

	return room, nil
}

func (s *service) OpenPhoto(ctx context.Context, id string, thumbnail bool) (io.ReadCloser, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room.PhotoPath == nil {
		return nil, ErrNoPhoto
	}

	path := *room.PhotoPath
	if thumbnail {
		path = thumbPath(path)
	}

	rc, err := s.storage.Get(ctx, path)
	if err != nil {
		return nil, ErrNoPhoto
	}
	return rc, nil
}

func thumbPath(photoPath string) string {
	return strings.TrimSuffix(photoPath, ".jpg") + "_thumb.jpg"
}
