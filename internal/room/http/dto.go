package http

import (
	"time"

	"github.com/roomdesk/conference-booking-backend/internal/pkg/request"
	"github.com/roomdesk/conference-booking-backend/internal/room"
)

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	Available   *bool `form:"available"`
	MinCapacity int   `form:"min_capacity" binding:"omitempty,min=1"`
}

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	Amenities string    `json:"amenities"`
	Available bool      `json:"available"`
	HasPhoto  bool      `json:"has_photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		Location:  r.Location,
		Amenities: r.Amenities,
		Available: r.Available,
		HasPhoto:  r.PhotoPath != nil,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type CreateRoomBody struct {
	Name      string `json:"name" binding:"required"`
	Capacity  int    `json:"capacity" binding:"required,min=1"`
	Location  string `json:"location"`
	Amenities string `json:"amenities"`
	Available *bool  `json:"available"`
}

type UpdateRoomBody struct {
	Name      *string `json:"name"`
	Capacity  *int    `json:"capacity" binding:"omitempty,min=1"`
	Location  *string `json:"location"`
	Amenities *string `json:"amenities"`
	Available *bool   `json:"available"`
}
