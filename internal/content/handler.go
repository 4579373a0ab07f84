package content

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/elrefaeey/padell/internal/cache"
	"github.com/elrefaeey/padell/internal/httpx"
	"github.com/elrefaeey/padell/internal/live"
	"github.com/elrefaeey/padell/internal/middleware"
	"github.com/elrefaeey/padell/internal/notifications"
	"github.com/elrefaeey/padell/internal/transport"
	"github.com/elrefaeey/padell/internal/validation"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	TopicHome    = "home"
	TopicContact = "contact"

	homeCacheKey    = "content:home"
	contactCacheKey = "content:contact"
)

type Handler struct {
	service  *Service
	val      *validation.Validator
	log      *slog.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	hub      *live.Hub
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, c cache.Cache, cacheTTL time.Duration, hub *live.Hub) *Handler {
	return &Handler{
		service:  service,
		val:      val,
		log:      log,
		cache:    c,
		cacheTTL: cacheTTL,
		hub:      hub,
	}
}

// RegisterLive binds the two singleton topics to their snapshot loaders.
func (h *Handler) RegisterLive(sockets *live.Handler) {
	sockets.Register(TopicHome, func(ctx context.Context) (interface{}, error) {
		return h.service.Home(ctx)
	})
	sockets.Register(TopicContact, func(ctx context.Context) (interface{}, error) {
		return h.service.Contact(ctx)
	})
}

func (h *Handler) PublicHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if payload, ok := h.cached(r.Context(), homeCacheKey); ok {
		log.Info("content home: cache hit")
		writeRaw(w, payload)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := h.service.Home(ctx)
	if err != nil {
		log.Error("content home: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.store(r.Context(), homeCacheKey, doc)
	log.Info("content home: ok")
	transport.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) PublicContact(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	if payload, ok := h.cached(r.Context(), contactCacheKey); ok {
		log.Info("content contact: cache hit")
		writeRaw(w, payload)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := h.service.Contact(ctx)
	if err != nil {
		log.Error("content contact: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.store(r.Context(), contactCacheKey, doc)
	log.Info("content contact: ok")
	transport.WriteJSON(w, http.StatusOK, doc)
}

// WhatsAppQR renders the contact card's chat deep link as a PNG QR code.
func (h *Handler) WhatsAppQR(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doc, err := h.service.Contact(ctx)
	if err != nil {
		log.Error("content qr: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	png, err := qrcode.Encode(notifications.ChatLink(doc.WhatsApp), qrcode.Medium, 256)
	if err != nil {
		log.Error("content qr: encode error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "qr error", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) AdminSaveHome(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req HomeSaveRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("content home save: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	doc, err := h.service.SaveHome(ctx, req)
	if err != nil {
		log.Error("content home save: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), homeCacheKey, TopicHome)
	log.Info("content home save: ok")
	transport.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) AdminSaveContact(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req ContactSaveRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("content contact save: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("content contact save: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	doc, err := h.service.SaveContact(ctx, req)
	if err != nil {
		log.Error("content contact save: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	h.invalidate(r.Context(), contactCacheKey, TopicContact)
	log.Info("content contact save: ok")
	transport.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) cached(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	payload, ok, err := h.cache.Get(ctx, key)
	return payload, err == nil && ok
}

func (h *Handler) store(ctx context.Context, key string, doc interface{}) {
	if h.cache == nil {
		return
	}
	if payload, err := json.Marshal(doc); err == nil {
		_ = h.cache.Set(ctx, key, payload, h.cacheTTL)
	}
}

func (h *Handler) invalidate(ctx context.Context, key, topic string) {
	if h.cache != nil {
		_ = h.cache.Delete(ctx, key)
	}
	h.hub.Publish(topic)
}

func writeRaw(w http.ResponseWriter, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
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
