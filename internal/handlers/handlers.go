package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pep299/template-blog-publisher/internal/archive"
	"github.com/pep299/template-blog-publisher/internal/schema"
	"github.com/pep299/template-blog-publisher/internal/wordpress"
)

const (
	defaultDraftLimit = 20
	maxDraftLimit     = 100
)

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, Response{
		Status: "ok",
		Data: map[string]interface{}{
			"timestamp": time.Now().Unix(),
			"version":   version,
		},
	})
}

func (s *Server) kindsHandler(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "", schema.Kinds())
}

func (s *Server) schemaHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := schema.ParseKind(mux.Vars(r)["kind"])
	if !ok {
		WriteError(w, http.StatusNotFound, "unknown kind")
		return
	}
	WriteSuccess(w, "", map[string]interface{}{
		"kind":   kind,
		"fields": schema.Fields(kind),
		"schema": schema.JSONSchema(kind),
	})
}

type renderRequest struct {
	Kind     string          `json:"kind"`
	Category string          `json:"category"`
	Document json.RawMessage `json:"document"`
}

// renderHandler previews the markup for a document without generating images.
func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Document) == 0 {
		WriteError(w, http.StatusBadRequest, "document is required")
		return
	}

	post, err := s.preview.RenderRaw(r.Context(), req.Document, req.Kind, req.Category)
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	WriteSuccess(w, "rendered", post)
}

func (s *Server) publishHandler(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		WriteError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}
	res, err := s.publisher.Run(r.Context())
	if err != nil {
		s.logger.Error("publish failed", "error", err)
		s.writeRunError(w, err)
		return
	}
	WriteSuccess(w, "published", res)
}

func (s *Server) listDraftsHandler(w http.ResponseWriter, r *http.Request) {
	if s.drafts == nil {
		WriteError(w, http.StatusServiceUnavailable, "draft archive is not configured")
		return
	}
	limit := defaultDraftLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxDraftLimit)
	}

	entries, err := s.drafts.List(r.Context(), limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteSuccess(w, "", entries)
}

func (s *Server) getDraftHandler(w http.ResponseWriter, r *http.Request) {
	if s.drafts == nil {
		WriteError(w, http.StatusServiceUnavailable, "draft archive is not configured")
		return
	}
	entry, err := s.drafts.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, archive.ErrNotFound) {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteSuccess(w, "", entry)
}

func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case schema.IsValidationError(err):
		WriteValidationError(w, err)
	case errors.Is(err, wordpress.ErrNoTerm), errors.Is(err, wordpress.ErrNoTemplate):
		WriteError(w, http.StatusConflict, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
