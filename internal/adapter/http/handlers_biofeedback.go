package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"biofeedback/internal/app"
	"biofeedback/internal/domain"
)

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Date            string                   `json:"date"`
		Time            string                   `json:"time"`
		Metrics         map[string]domain.Metric `json:"metrics"`
		AdditionalNotes []string                 `json:"additional_notes"`
		Summary         string                   `json:"summary"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user := userFromContext(r)
	id, agg, err := s.bio.Submit(r.Context(), user.ID, app.EntryInput{
		Day:             body.Date,
		Time:            body.Time,
		Metrics:         body.Metrics,
		AdditionalNotes: body.AdditionalNotes,
		Summary:         body.Summary,
	})
	if errors.Is(err, app.ErrAggregationFailed) {
		// entry is durable, aggregate is stale until the next recompute
		writeJSON(w, http.StatusAccepted, map[string]any{"id": id, "aggregated": false})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "aggregated": true, "aggregation": agg})
}

func (s *Server) handleEntriesRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	limit := intQuery(r, "limit", 20)
	items, err := s.bio.ListRecentEntries(r.Context(), user.ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user := userFromContext(r)
	agg, err := s.bio.Aggregate(r.Context(), user.ID, body.Date)
	if errors.Is(err, app.ErrNoEntries) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"aggregation": agg})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	day := r.URL.Query().Get("date")
	if day == "" {
		day = localDayString(time.Now())
	}

	user := userFromContext(r)
	agg, err := s.bio.GetDay(r.Context(), user.ID, day)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": day, "aggregation": agg})
}

func (s *Server) handleAggregations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	items, err := s.bio.ListRange(r.Context(), user.ID, start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"start": start, "end": end, "items": items})
}
