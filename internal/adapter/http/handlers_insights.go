package adapthttp

import (
	"net/http"
)

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	user := userFromContext(r)
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	insights, err := s.insights.GetRange(r.Context(), user.ID, start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"start": start, "end": end, "items": insights})
}
