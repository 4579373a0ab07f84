package handlers

import (
	"log/slog"
	"net/http"

	"github.com/elrefaeey/padell/internal/auth"
	"github.com/elrefaeey/padell/internal/config"
	"github.com/elrefaeey/padell/internal/db"
	"github.com/elrefaeey/padell/internal/filestore"
	"github.com/elrefaeey/padell/internal/middleware"
	"github.com/elrefaeey/padell/internal/validation"
)

type Server struct {
	Cfg   *config.Config
	Cols  *db.Collections
	Val   *validation.Validator
	Log   *slog.Logger
	Auth  *auth.Manager
	Files *filestore.Store
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
