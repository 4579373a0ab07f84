package bookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/elrefaeey/padell/internal/httpx"
	"github.com/elrefaeey/padell/internal/live"
	"github.com/elrefaeey/padell/internal/middleware"
	"github.com/elrefaeey/padell/internal/models"
	"github.com/elrefaeey/padell/internal/notifications"
	"github.com/elrefaeey/padell/internal/transport"
	"github.com/elrefaeey/padell/internal/validation"
	"github.com/go-chi/chi/v5"
)

// Topic is admin-gated: only the dashboard watches the bookings list.
const Topic = "bookings"

// CreateResponse carries the stored record plus the pre-filled operator chat
// link the client opens. The link is only produced after a successful write.
type CreateResponse struct {
	Booking     models.Booking `json:"booking"`
	WhatsAppURL string         `json:"whatsappUrl"`
}

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	whatsapp *notifications.WhatsApp
	hub      *live.Hub
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, whatsapp *notifications.WhatsApp, hub *live.Hub) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		whatsapp: whatsapp,
		hub:      hub,
	}
}

func (h *Handler) RegisterLive(sockets *live.Handler) {
	sockets.Register(Topic, h.snapshot)
}

// snapshot pushes the whole collection, unpaged, like every other topic.
func (h *Handler) snapshot(ctx context.Context) (interface{}, error) {
	items, total, err := h.service.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"items": items, "total": total}, nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("bookings create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("bookings create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrCourtNotFound) {
			log.Warn("bookings create: court not found", slog.String("court_id", req.CourtID))
			transport.WriteError(w, http.StatusNotFound, "court not found", nil)
			return
		}
		log.Error("bookings create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.hub.Publish(Topic)
	log.Info("bookings create: ok",
		slog.String("booking_id", item.ID),
		slog.String("court", item.Court),
		slog.String("date", item.Date),
		slog.String("time", item.Time),
	)
	transport.WriteJSON(w, http.StatusCreated, CreateResponse{
		Booking:     item,
		WhatsAppURL: h.whatsapp.BookingLink(item),
	})
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("bookings list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.List(ctx, limit, offset)
	if err != nil {
		log.Error("bookings list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("bookings list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("bookings delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		log.Error("bookings delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.hub.Publish(Topic)
	log.Info("bookings delete: ok", slog.String("booking_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
