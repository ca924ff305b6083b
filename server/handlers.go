package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/etnz/stockboard"
	"github.com/etnz/stockboard/renderer"
	"github.com/go-chi/chi/v5"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"widgets": len(s.board.Widgets.IDs()),
	})
}

// widgetID reads the {id} parameter and writes the error response if invalid.
func (s *Server) widgetID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid widget id"))
		return 0, false
	}
	return id, true
}

func (s *Server) handleListWidgets(w http.ResponseWriter, r *http.Request) {
	configs := []stockboard.WidgetConfig{}
	for _, id := range s.board.Widgets.IDs() {
		c, err := s.board.Widgets.Load(id)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err)
			return
		}
		configs = append(configs, c)
	}
	s.writeJSON(w, http.StatusOK, configs)
}

func (s *Server) handleWidgetConfig(w http.ResponseWriter, r *http.Request) {
	id, ok := s.widgetID(w, r)
	if !ok {
		return
	}
	c, err := s.board.Widgets.Load(id)
	if err != nil {
		s.writeError(w, statusOf(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleWidgetFrame(w http.ResponseWriter, r *http.Request) {
	s.refresh(w, r, stockboard.RegularRefresh)
}

func (s *Server) handleNextView(w http.ResponseWriter, r *http.Request) {
	s.refresh(w, r, stockboard.ViewChangeRequest)
}

// refresh writes the refreshed frame, as markdown when format=md.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request, trigger stockboard.Trigger) {
	id, ok := s.widgetID(w, r)
	if !ok {
		return
	}
	frame, err := s.board.Refresh(r.Context(), id, trigger)
	if err != nil {
		s.log.Error().Err(err).Int("widget", id).Msg("refresh failed")
		s.writeError(w, statusOf(err), err)
		return
	}
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(renderer.RenderFrame(&frame)))
		return
	}
	s.writeJSON(w, http.StatusOK, frame)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	store := s.board.Store
	s.writeJSON(w, http.StatusOK, store.RecordsFor(store.SortedSymbols()))
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	rec, ok := s.board.Store.RecordsFor([]string{symbol})[symbol]
	if !ok {
		s.writeError(w, http.StatusNotFound, errors.New("no record for "+symbol))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	var rec stockboard.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	rec.Symbol = symbol
	if err := rec.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.board.Store.Update(symbol, rec)
	if err := s.board.Store.Save(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// handleDeleteRecord blanks the record, an empty record is not persisted.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	s.board.Store.Update(symbol, stockboard.Record{})
	if err := s.board.Store.Save(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	holdings, err := s.board.Summary(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(renderer.RenderSummary(holdings)))
		return
	}
	s.writeJSON(w, http.StatusOK, holdings)
}

func (s *Server) handlePrune(w http.ResponseWriter, r *http.Request) {
	n, err := s.board.Prune()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int{"removed": n})
}

func statusOf(err error) int {
	if errors.Is(err, stockboard.ErrUnknownWidget) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
