package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mapknit/mapknit/internal/export"
	"github.com/mapknit/mapknit/internal/importer"
	"github.com/mapknit/mapknit/internal/logging"
	"github.com/mapknit/mapknit/internal/store"
)

// setRequest is the body for set create/update calls.
type setRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// assignRequest is the body for assignment calls. An empty SetID reverts
// the country to the default set.
type assignRequest struct {
	SetID string `json:"setId"`
}

// importResponse summarizes an accepted import.
type importResponse struct {
	MapName  string   `json:"mapName,omitempty"`
	Sets     int      `json:"sets"`
	Assigned int      `json:"assigned"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(s.svg)
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.GetSets())
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	set, err := s.store.AddSet(req.Name, req.Color)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, store.ErrNameRequired) {
			status = http.StatusBadRequest
		}
		s.respondError(w, r, err, status)
		return
	}

	s.metrics.RecordMutation("add_set")
	s.metrics.SetSetCount(len(s.store.GetSets()))
	respondJSON(w, http.StatusCreated, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	set, ok := s.store.UpdateSet(id, req.Name, req.Color)
	if !ok {
		s.respondError(w, r, fmt.Errorf("set %q not found", id), http.StatusNotFound)
		return
	}

	s.metrics.RecordMutation("update_set")
	respondJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == store.DefaultSetID {
		s.respondError(w, r, errors.New("the default set cannot be removed"), http.StatusConflict)
		return
	}

	s.store.RemoveSet(id)
	s.metrics.RecordMutation("remove_set")
	s.metrics.SetSetCount(len(s.store.GetSets()))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignments(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.GetCountryAssignments())
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	countryID := chi.URLParam(r, "countryID")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	s.store.AssignCountryToSet(countryID, req.SetID)
	s.metrics.RecordMutation("assign")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.store.GetCountryColorsById())
}

func (s *Server) handleGetName(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"mapName": s.store.MapName()})
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MapName string `json:"mapName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}

	s.store.SetMapName(req.MapName)
	w.WriteHeader(http.StatusNoContent)
}

// handleImport reads a raw YAML document, validates it and replaces the
// whole session atomically. A rejected document changes nothing.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	limit := int64(s.cfg.Import.MaxDocumentBytes)
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit+1))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read import document: %w", err), http.StatusRequestEntityTooLarge)
		return
	}

	res, err := s.parser.Parse(raw)
	if err != nil {
		var pe *importer.ParseError
		if errors.As(err, &pe) {
			s.metrics.RecordRejection(pe.Code)
			s.respondError(w, r, err, http.StatusUnprocessableEntity)
			return
		}
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.store.ReplaceAll(res.Sets, res.Assignments)
	s.store.SetMapName(res.MapName)

	s.metrics.RecordImport(len(res.Warnings))
	s.metrics.RecordMutation("replace_all")
	s.metrics.SetSetCount(len(s.store.GetSets()))

	logging.FromContext(r.Context()).Info("import applied",
		"sets", len(res.Sets),
		"assigned", len(res.Assignments),
		"warnings", len(res.Warnings),
	)

	respondJSON(w, http.StatusOK, importResponse{
		MapName:  res.MapName,
		Sets:     len(s.store.GetSets()),
		Assigned: len(res.Assignments),
		Warnings: res.Warnings,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	out, err := export.Marshal(export.Build(s.store))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.metrics.ExportsTotal.Inc()

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="map.yaml"`)
	w.Write(out)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.store.Reset()
	s.metrics.RecordMutation("reset")
	s.metrics.SetSetCount(1)
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents bridges the store's synchronous change notifications to an
// SSE stream. The subscription callback only pokes a buffered channel, so
// it never blocks a mutating caller and never re-enters the store.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, r, errors.New("streaming not supported"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	changes := make(chan struct{}, 1)
	unsubscribe := s.store.Subscribe(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	fmt.Fprint(w, "event: hello\ndata: {}\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			fmt.Fprint(w, "event: change\ndata: {}\n\n")
			flusher.Flush()
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}
