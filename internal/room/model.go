package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("room not found")
	ErrNameTaken       = errors.New("room name is already taken")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
	ErrInUse           = errors.New("room has bookings and cannot be deleted")
	ErrNoPhoto         = errors.New("room has no photo")
	ErrNotAnImage      = errors.New("uploaded file is not an image")
)

// Room represents a bookable conference room.
type Room struct {
	ID        string // UUID
	Name      string
	Capacity  int
	Location  string
	Amenities string
	Available bool
	PhotoPath *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	Available   *bool
	MinCapacity int
	Page        int
	PageSize    int
}
