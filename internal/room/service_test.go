package room

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomRepository struct {
	nextID int
	rooms  map[string]*Room
}

func newFakeRoomRepository() *fakeRoomRepository {
	return &fakeRoomRepository{rooms: make(map[string]*Room)}
}

func (f *fakeRoomRepository) Create(_ context.Context, room *Room) error {
	for _, existing := range f.rooms {
		if existing.Name == room.Name {
			return ErrNameTaken
		}
	}
	f.nextID++
	room.ID = fmt.Sprintf("room-%d", f.nextID)
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepository) GetByID(_ context.Context, id string) (*Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoomRepository) List(_ context.Context, filter Filter) ([]*Room, int, error) {
	var out []*Room
	for i := 1; i <= f.nextID; i++ {
		r, ok := f.rooms[fmt.Sprintf("room-%d", i)]
		if !ok {
			continue
		}
		if filter.Available != nil && r.Available != *filter.Available {
			continue
		}
		if filter.MinCapacity > 0 && r.Capacity < filter.MinCapacity {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRoomRepository) Update(_ context.Context, room *Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	cp := *room
	f.rooms[room.ID] = &cp
	return nil
}

func (f *fakeRoomRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepository) SetPhotoPath(_ context.Context, id string, path *string) error {
	r, ok := f.rooms[id]
	if !ok {
		return ErrNotFound
	}
	r.PhotoPath = path
	return nil
}

// fakeStorage keeps blobs in memory.
type fakeStorage struct {
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(_ context.Context, path string, content io.Reader) error {
	b, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	f.files[path] = b
	return nil
}

func (f *fakeStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	b, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	delete(f.files, path)
	return nil
}

func newTestRoomService() (Service, *fakeRoomRepository, *fakeStorage) {
	repo := newFakeRoomRepository()
	store := newFakeStorage()
	return NewService(repo, store), repo, store
}

func TestCreateRoom(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{
		Name:      "  Boardroom  ",
		Capacity:  12,
		Location:  "3F west wing",
		Amenities: "projector,whiteboard",
		Available: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Boardroom", r.Name, "name is trimmed")
	assert.Equal(t, 12, r.Capacity)
	assert.True(t, r.Available)
}

func TestCreateRoomValidation(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "   ", Capacity: 5})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.Create(ctx, CreateRequest{Name: "Huddle", Capacity: 0})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = svc.Create(ctx, CreateRequest{Name: "Huddle", Capacity: -3})
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestCreateRoomDuplicateName(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 4})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestUpdateRoom(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 12, Available: true})
	require.NoError(t, err)

	newName := "Big Boardroom"
	newCapacity := 20
	unavailable := false
	updated, err := svc.Update(ctx, r.ID, UpdateRequest{
		Name:      &newName,
		Capacity:  &newCapacity,
		Available: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "Big Boardroom", updated.Name)
	assert.Equal(t, 20, updated.Capacity)
	assert.False(t, updated.Available)

	// Partial update keeps the other fields.
	loc := "4F"
	updated, err = svc.Update(ctx, r.ID, UpdateRequest{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Big Boardroom", updated.Name)
	assert.Equal(t, "4F", updated.Location)
}

func TestUpdateRoomValidation(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(ctx, r.ID, UpdateRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrEmptyName)

	zero := 0
	_, err = svc.Update(ctx, r.ID, UpdateRequest{Capacity: &zero})
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRoom(t *testing.T) {
	svc, repo, store := newTestRoomService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	// Simulate a stored photo so delete cleans it up.
	path := "rooms/ab/abc.jpg"
	store.files[path] = []byte("jpeg")
	store.files[thumbPath(path)] = []byte("jpeg")
	require.NoError(t, repo.SetPhotoPath(ctx, r.ID, &path))

	require.NoError(t, svc.Delete(ctx, r.ID))

	_, err = svc.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.files)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
}

func TestListRooms(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Name: "Small", Capacity: 2, Available: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Big", Capacity: 20, Available: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Closed", Capacity: 8, Available: false})
	require.NoError(t, err)

	all, total, err := svc.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	avail := true
	open, total, err := svc.List(ctx, Filter{Available: &avail})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, r := range open {
		assert.True(t, r.Available)
	}

	big, total, err := svc.List(ctx, Filter{MinCapacity: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Big", big[0].Name)
}

func TestOpenPhotoWithoutPhoto(t *testing.T) {
	svc, _, _ := newTestRoomService()
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRequest{Name: "Boardroom", Capacity: 12})
	require.NoError(t, err)

	_, err = svc.OpenPhoto(ctx, r.ID, false)
	assert.ErrorIs(t, err, ErrNoPhoto)

	_, err = svc.OpenPhoto(ctx, "missing", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThumbPath(t *testing.T) {
	assert.Equal(t, "rooms/ab/x_thumb.jpg", thumbPath("rooms/ab/x.jpg"))
}
