package notice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/conference-booking-backend/internal/room"
)

type fakeNoticeRepository struct {
	nextID  int
	notices map[string]*Notice
}

func newFakeNoticeRepository() *fakeNoticeRepository {
	return &fakeNoticeRepository{notices: make(map[string]*Notice)}
}

func (f *fakeNoticeRepository) Create(_ context.Context, n *Notice) error {
	f.nextID++
	n.ID = fmt.Sprintf("notice-%d", f.nextID)
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	cp := *n
	f.notices[n.ID] = &cp
	return nil
}

func (f *fakeNoticeRepository) GetByID(_ context.Context, id string) (*Notice, error) {
	n, ok := f.notices[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoticeRepository) List(_ context.Context, filter Filter) ([]*Notice, int, error) {
	var out []*Notice
	for i := 1; i <= f.nextID; i++ {
		n, ok := f.notices[fmt.Sprintf("notice-%d", i)]
		if !ok {
			continue
		}
		if filter.RoomID != "" && (n.RoomID == nil || *n.RoomID != filter.RoomID) {
			continue
		}
		if filter.ActiveAt != nil {
			at := *filter.ActiveAt
			if n.StartsAt.After(at) {
				continue
			}
			if n.EndsAt != nil && !at.Before(*n.EndsAt) {
				continue
			}
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeNoticeRepository) Update(_ context.Context, n *Notice) error {
	if _, ok := f.notices[n.ID]; !ok {
		return ErrNotFound
	}
	cp := *n
	f.notices[n.ID] = &cp
	return nil
}

func (f *fakeNoticeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.notices[id]; !ok {
		return ErrNotFound
	}
	delete(f.notices, id)
	return nil
}

type fakeRoomDirectory struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomDirectory) GetByID(_ context.Context, id string) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return r, nil
}

func newTestNoticeService() (Service, *fakeNoticeRepository) {
	repo := newFakeNoticeRepository()
	rooms := &fakeRoomDirectory{rooms: map[string]*room.Room{
		"room-1": {ID: "room-1", Name: "Boardroom", Capacity: 10},
	}}
	return NewService(repo, rooms), repo
}

func TestCreateNotice(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	before := time.Now().UTC()
	n, err := svc.Create(ctx, CreateRequest{Title: "Maintenance", Body: "HVAC work on 3F"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Nil(t, n.RoomID)
	assert.Nil(t, n.EndsAt)
	assert.False(t, n.StartsAt.Before(before), "starts_at defaults to now")
}

func TestCreateNoticeValidation(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Title: " ", Body: "text"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, CreateRequest{Title: "t", Body: "  "})
	assert.ErrorIs(t, err, ErrBodyRequired)

	start := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = svc.Create(ctx, CreateRequest{Title: "t", Body: "b", StartsAt: &start, EndsAt: &end})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestCreateNoticeRoomScoped(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	roomID := "room-1"
	n, err := svc.Create(ctx, CreateRequest{Title: "Closed", Body: "painting", RoomID: &roomID})
	require.NoError(t, err)
	require.NotNil(t, n.RoomID)
	assert.Equal(t, "room-1", *n.RoomID)

	missing := "room-404"
	_, err = svc.Create(ctx, CreateRequest{Title: "Closed", Body: "painting", RoomID: &missing})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestUpdateNotice(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	n, err := svc.Create(ctx, CreateRequest{Title: "Maintenance", Body: "HVAC"})
	require.NoError(t, err)

	title := "Maintenance extended"
	updated, err := svc.Update(ctx, n.ID, UpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "HVAC", updated.Body)

	bad := n.StartsAt.Add(-time.Hour)
	_, err = svc.Update(ctx, n.ID, UpdateRequest{EndsAt: &bad})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNotice(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	n, err := svc.Create(ctx, CreateRequest{Title: "Maintenance", Body: "HVAC"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.ID))
	_, err = svc.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
}

func TestListNoticesActiveWindow(t *testing.T) {
	svc, _ := newTestNoticeService()
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	_, err := svc.Create(ctx, CreateRequest{Title: "Day one", Body: "b", StartsAt: &start, EndsAt: &end})
	require.NoError(t, err)

	later := end.Add(time.Hour)
	_, err = svc.Create(ctx, CreateRequest{Title: "Later", Body: "b", StartsAt: &later})
	require.NoError(t, err)

	at := start.Add(time.Hour)
	active, total, err := svc.List(ctx, Filter{ActiveAt: &at})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "Day one", active[0].Title)

	at = end // the window is half-open, so the end instant is inactive
	active, _, err = svc.List(ctx, Filter{ActiveAt: &at})
	require.NoError(t, err)
	for _, n := range active {
		assert.NotEqual(t, "Day one", n.Title)
	}
}
