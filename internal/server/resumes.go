package server

import (
	"fmt"
	"net/http"
	"time"
)

func (s *Service) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.resumes == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{
			Code: "PERSISTENCE_DISABLED", Message: "no persistence store configured",
		}})
		return
	}

	from, to, err := dateWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code: "INVALID_REQUEST", Message: err.Error(),
		}})
		return
	}

	rows, err := s.resumes.ListResumes(r.Context(), from, to)
	if err != nil {
		s.logger.Error("resumes.list.failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{
			Code: "INTERNAL", Message: "failed to list resumes",
		}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"resumes": rows, "count": len(rows)})
}

func (s *Service) handleExportResumes(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: errorDetail{
			Code: "PERSISTENCE_DISABLED", Message: "no persistence store configured",
		}})
		return
	}

	from, to, err := dateWindow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errorDetail{
			Code: "INVALID_REQUEST", Message: err.Error(),
		}})
		return
	}

	data, err := s.exporter.ExportResumesXLSX(r.Context(), from, to)
	if err != nil {
		s.logger.Error("resumes.export.failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: errorDetail{
			Code: "INTERNAL", Message: "failed to export resumes",
		}})
		return
	}

	filename := fmt.Sprintf("resumes-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// dateWindow parses optional ?from=YYYY-MM-DD and ?to=YYYY-MM-DD filters.
func dateWindow(r *http.Request) (from, to *time.Time, err error) {
	if v := r.URL.Query().Get("from"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, fmt.Errorf("invalid 'from' date %q, want YYYY-MM-DD", v)
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return nil, nil, fmt.Errorf("invalid 'to' date %q, want YYYY-MM-DD", v)
		}
		to = &t
	}
	return from, to, nil
}
