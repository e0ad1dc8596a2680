package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hrd-survey/internal/report"
)

const reportSuffix = "_검토리포트.json"

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":     "ok",
		"output_dir": s.config.OutputDir,
		"store":      s.store != nil,
	}
	writeJSON(w, http.StatusOK, health)
}

// reportSummary is one line of the report listing.
type reportSummary struct {
	Name      string `json:"name"`
	Matched   int    `json:"matched"`
	Unmatched int    `json:"unmatched"`
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	pattern := filepath.Join(s.config.OutputDir, "*"+reportSuffix)
	files, err := filepath.Glob(pattern)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]reportSummary, 0, len(files))
	for _, file := range files {
		rep, err := report.Load(file)
		if err != nil {
			continue // skip unreadable files, the listing is best-effort
		}
		summaries = append(summaries, reportSummary{
			Name:      strings.TrimSuffix(filepath.Base(file), reportSuffix),
			Matched:   rep.Matched,
			Unmatched: rep.Unmatched,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if strings.ContainsAny(name, "/\\") {
		writeError(w, http.StatusBadRequest, "invalid report name")
		return
	}

	path := filepath.Join(s.config.OutputDir, name+reportSuffix)
	rep, err := report.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, http.StatusNotFound, "report not found: "+name)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history store not configured")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	runs, err := s.store.ListRuns(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "run history store not configured")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	rep, err := s.store.RunReport(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
