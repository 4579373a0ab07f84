package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elrefaeey/padell/internal/live"
	"github.com/elrefaeey/padell/internal/models"
	"github.com/elrefaeey/padell/internal/notifications"
	"github.com/elrefaeey/padell/internal/validation"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items     []models.Booking
	deleted   []string
	lastLimit int64
}

func (f *fakeRepo) Create(ctx context.Context, item models.Booking) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int64) ([]models.Booking, error) {
	f.lastLimit = limit
	if limit > 0 && int64(len(f.items)) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCourts struct {
	courts map[string]models.Court
}

func (f *fakeCourts) Get(ctx context.Context, id string) (models.Court, error) {
	if c, ok := f.courts[id]; ok {
		return c, nil
	}
	return models.Court{}, mongo.ErrNoDocuments
}

func newTestHandler(repo *fakeRepo, courts *fakeCourts) (*Handler, *live.Hub) {
	hub := live.NewHub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, courts)
	return NewHandler(svc, validation.New(), logger, notifications.NewWhatsApp("201557060450"), hub), hub
}

func postBooking(t *testing.T, h *Handler, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateBooking(t *testing.T) {
	repo := &fakeRepo{}
	courts := &fakeCourts{courts: map[string]models.Court{"c1": {ID: "c1", Name: "Court 1"}}}
	h, hub := newTestHandler(repo, courts)

	sub := hub.Subscribe(Topic)
	defer sub.Cancel()

	rec := postBooking(t, h, map[string]string{
		"courtId": "c1",
		"name":    "Omar",
		"phone":   "01001234567",
		"date":    "2026-09-05",
		"time":    "19:00",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CreateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Court 1", resp.Booking.Court)
	assert.Equal(t, models.BookingStatusPending, resp.Booking.Status)
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Contains(t, resp.WhatsAppURL, "https://wa.me/201557060450?text=")
	assert.Contains(t, resp.WhatsAppURL, "Court%3A+Court+1")

	require.Len(t, repo.items, 1)

	select {
	case <-sub.C:
	default:
		t.Fatal("expected a change signal on the bookings topic")
	}
}

func TestCreateBookingMissingFieldRejected(t *testing.T) {
	repo := &fakeRepo{}
	courts := &fakeCourts{courts: map[string]models.Court{"c1": {ID: "c1", Name: "Court 1"}}}
	h, _ := newTestHandler(repo, courts)

	rec := postBooking(t, h, map[string]string{
		"courtId": "c1",
		"name":    "Omar",
		"phone":   "01001234567",
		"date":    "2026-09-05",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, repo.items, "nothing should be written on validation failure")
}

func TestCreateBookingUnknownCourt(t *testing.T) {
	repo := &fakeRepo{}
	h, _ := newTestHandler(repo, &fakeCourts{})

	rec := postBooking(t, h, map[string]string{
		"courtId": "missing",
		"name":    "Omar",
		"phone":   "01001234567",
		"date":    "2026-09-05",
		"time":    "19:00",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, repo.items)
}

func TestCreateBookingAllowsDuplicateSlots(t *testing.T) {
	repo := &fakeRepo{}
	courts := &fakeCourts{courts: map[string]models.Court{"c1": {ID: "c1", Name: "Court 1"}}}
	h, _ := newTestHandler(repo, courts)

	payload := map[string]string{
		"courtId": "c1",
		"name":    "Omar",
		"phone":   "01001234567",
		"date":    "2026-09-05",
		"time":    "19:00",
	}
	require.Equal(t, http.StatusCreated, postBooking(t, h, payload).Code)
	require.Equal(t, http.StatusCreated, postBooking(t, h, payload).Code)
	assert.Len(t, repo.items, 2)
}

func TestAdminList(t *testing.T) {
	repo := &fakeRepo{items: []models.Booking{{ID: "b1", Court: "Court 1"}, {ID: "b2", Court: "Court 2"}}}
	courts := &fakeCourts{}
	h, _ := newTestHandler(repo, courts)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings?limit=10", nil)
	rec := httptest.NewRecorder()
	h.AdminList(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items  []models.Booking `json:"items"`
		Limit  int64            `json:"limit"`
		Offset int64            `json:"offset"`
		Total  int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(10), resp.Limit)
	assert.Equal(t, int64(2), resp.Total)
}

func TestSnapshotIsWholeCollection(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 250; i++ {
		repo.items = append(repo.items, models.Booking{ID: "b" + string(rune('0'+i%10)), Court: "Court 1"})
	}
	h, _ := newTestHandler(repo, &fakeCourts{})

	payload, err := h.snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), repo.lastLimit, "snapshot must not page the list")

	snap, ok := payload.(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, snap["items"], 250)
	assert.Equal(t, int64(250), snap["total"])
}

func TestAdminDeleteIsIdempotent(t *testing.T) {
	repo := &fakeRepo{}
	h, _ := newTestHandler(repo, &fakeCourts{})

	r := chi.NewRouter()
	r.Delete("/api/admin/bookings/{id}", h.AdminDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/bookings/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"missing"}, repo.deleted)
}
