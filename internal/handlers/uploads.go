package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/elrefaeey/padell/internal/filestore"
	"github.com/elrefaeey/padell/internal/transport"
)

var folderPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

type UploadResponse struct {
	URL string `json:"url"`
}

type DeleteUploadRequest struct {
	URL string `json:"url" validate:"required"`
}

// AdminUpload stores one image from a multipart form. The form field is
// "file" and an optional "folder" field picks the subdirectory.
func (s *Server) AdminUpload(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	if err := r.ParseMultipartForm(s.Cfg.MaxUploadBytes); err != nil {
		log.Warn("upload: invalid multipart form", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Warn("upload: missing file field")
		transport.WriteError(w, http.StatusBadRequest, "missing file field", nil)
		return
	}
	defer file.Close()

	folder := strings.TrimSpace(r.FormValue("folder"))
	if folder == "" {
		folder = "site"
	}
	if !folderPattern.MatchString(folder) {
		log.Warn("upload: invalid folder", slog.String("folder", folder))
		transport.WriteError(w, http.StatusBadRequest, "invalid folder", nil)
		return
	}

	url, err := s.Files.SaveImage(file, header.Filename, folder)
	if err != nil {
		switch {
		case errors.Is(err, filestore.ErrInvalidExtension),
			errors.Is(err, filestore.ErrInvalidMIME):
			log.Warn("upload: rejected file type", slog.String("filename", header.Filename))
			transport.WriteError(w, http.StatusBadRequest, "unsupported image type", nil)
		case errors.Is(err, filestore.ErrFileTooLarge):
			log.Warn("upload: file too large", slog.String("filename", header.Filename))
			transport.WriteError(w, http.StatusBadRequest, "file too large", nil)
		default:
			log.Error("upload: failed", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "upload failed", nil)
		}
		return
	}

	log.Info("upload: ok", slog.String("url", url), slog.String("folder", folder))
	transport.WriteJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// AdminDeleteUpload removes a previously uploaded file. Nothing checks
// whether a document still references the URL, and deleting an unknown
// URL reports ok.
func (s *Server) AdminDeleteUpload(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	var req DeleteUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("upload delete: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("upload delete: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", validationDetails(s.Val.ValidationErrors(err)))
		return
	}

	s.Files.Delete(req.URL)
	log.Info("upload delete: ok", slog.String("url", req.URL))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
