package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomdesk/conference-booking-backend/internal/booking"
	"github.com/roomdesk/conference-booking-backend/internal/user"
)

const (
	testRoomID    = "5f6c9a3e-1b2d-4c5e-8f7a-9b0c1d2e3f40"
	testBookingID = "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9"
)

// fakeService returns canned results for handler tests.
type fakeService struct {
	createErr error
	booking   *booking.Booking
	bookings  []*booking.Booking
	stats     *booking.Stats
	updateErr error
}

func (f *fakeService) Create(_ context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b := *f.booking
	b.UserID = req.UserID
	b.RoomID = req.RoomID
	return &b, nil
}

func (f *fakeService) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, booking.ErrNotFound
	}
	return f.booking, nil
}

func (f *fakeService) ListByUser(_ context.Context, _ string) ([]*booking.Booking, error) {
	return f.bookings, nil
}

func (f *fakeService) List(_ context.Context, _ booking.Filter) ([]*booking.Booking, int, error) {
	return f.bookings, len(f.bookings), nil
}

func (f *fakeService) UpdateStatus(_ context.Context, _ string, status booking.Status) (*booking.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	b := *f.booking
	b.Status = status
	return &b, nil
}

func (f *fakeService) Stats(_ context.Context) (*booking.Stats, error) {
	return f.stats, nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// identityFrom reads the caller identity from a test header so tests can
// act as different users without real tokens.
func identityFrom(c *gin.Context) {
	if id := c.GetHeader("X-Test-User"); id != "" {
		c.Set("userID", id)
	}
	c.Next()
}

func passThrough(c *gin.Context) { c.Next() }

func testBooking() *booking.Booking {
	return &booking.Booking{
		ID:             testBookingID,
		RoomID:         testRoomID,
		RoomName:       "Boardroom",
		UserID:         "user-1",
		UserName:       "alice",
		UserEmail:      "alice@example.com",
		StartTime:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		Purpose:        "planning",
		AttendeesCount: 5,
		Status:         booking.StatusPending,
	}
}

func newTestRouter(svc booking.Service, users booking.UserDirectory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, users)
	v1 := r.Group("/v1")
	RegisterRoutes(v1, h, identityFrom, passThrough)
	return r
}

func doJSON(r *gin.Engine, method, path, asUser string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if asUser != "" {
		req.Header.Set("X-Test-User", asUser)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &fakeService{booking: testBooking()}
	r := newTestRouter(svc, &fakeUsers{})

	w := doJSON(r, http.MethodPost, "/v1/bookings", "user-1", gin.H{
		"room_id":         testRoomID,
		"start_time":      "2026-09-01T10:00:00Z",
		"end_time":        "2026-09-01T12:00:00Z",
		"purpose":         "planning",
		"attendees_count": 5,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testRoomID, resp.RoomID)
	assert.Equal(t, "Boardroom", resp.RoomName)
	assert.Equal(t, "alice", resp.UserName)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateBookingHandlerBadBody(t *testing.T) {
	r := newTestRouter(&fakeService{booking: testBooking()}, &fakeUsers{})

	// room_id must be a UUID.
	w := doJSON(r, http.MethodPost, "/v1/bookings", "user-1", gin.H{
		"room_id":    "not-a-uuid",
		"start_time": "2026-09-01T10:00:00Z",
		"end_time":   "2026-09-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandlerEngineErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"room not found", booking.ErrRoomNotFound, http.StatusNotFound},
		{"capacity exceeded", booking.ErrCapacityExceeded, http.StatusBadRequest},
		{"slot conflict", booking.ErrSlotConflict, http.StatusConflict},
		{"bad time range", booking.ErrInvalidTimeRange, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeService{createErr: tc.err}, &fakeUsers{})
			w := doJSON(r, http.MethodPost, "/v1/bookings", "user-1", gin.H{
				"room_id":    testRoomID,
				"start_time": "2026-09-01T10:00:00Z",
				"end_time":   "2026-09-01T12:00:00Z",
			})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestMyBookingsHandler(t *testing.T) {
	svc := &fakeService{bookings: []*booking.Booking{testBooking()}}
	r := newTestRouter(svc, &fakeUsers{})

	w := doJSON(r, http.MethodGet, "/v1/bookings/my", "user-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, testBookingID, items[0].ID)
}

func TestGetBookingHandlerOwnership(t *testing.T) {
	svc := &fakeService{booking: testBooking()}
	users := &fakeUsers{users: map[string]*user.User{
		"user-1": {ID: "user-1"},
		"user-2": {ID: "user-2"},
		"admin":  {ID: "admin", IsAdmin: true},
	}}
	r := newTestRouter(svc, users)

	// Owner reads their booking.
	w := doJSON(r, http.MethodGet, "/v1/bookings/"+testBookingID, "user-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another user is refused.
	w = doJSON(r, http.MethodGet, "/v1/bookings/"+testBookingID, "user-2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin may read any booking.
	w = doJSON(r, http.MethodGet, "/v1/bookings/"+testBookingID, "admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Malformed ID.
	w = doJSON(r, http.MethodGet, "/v1/bookings/not-a-uuid", "user-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	svc := &fakeService{booking: testBooking()}
	r := newTestRouter(svc, &fakeUsers{})

	w := doJSON(r, http.MethodPut, "/v1/bookings/"+testBookingID+"/status", "admin",
		gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Status)

	// Statuses outside the enum are rejected at binding.
	w = doJSON(r, http.MethodPut, "/v1/bookings/"+testBookingID+"/status", "admin",
		gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusHandlerConflict(t *testing.T) {
	svc := &fakeService{booking: testBooking(), updateErr: booking.ErrSlotConflict}
	r := newTestRouter(svc, &fakeUsers{})

	w := doJSON(r, http.MethodPut, "/v1/bookings/"+testBookingID+"/status", "admin",
		gin.H{"status": "approved"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStatsHandler(t *testing.T) {
	svc := &fakeService{stats: &booking.Stats{Total: 4, Pending: 2, Approved: 1, Rejected: 1}}
	r := newTestRouter(svc, &fakeUsers{})

	w := doJSON(r, http.MethodGet, "/v1/bookings/stats", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, resp.Total, resp.Pending+resp.Approved+resp.Rejected)
}
