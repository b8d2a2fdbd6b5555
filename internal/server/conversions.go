package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/entity"
	"github.com/docmdio/docmd/internal/pipeline"
)

func (s *Server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	recs, err := s.conversions.List(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*entity.Conversion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"conversions": recs})
}

func (s *Server) handleGetConversion(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: id must be a UUID", common.ErrInvalidInput))
		return
	}

	rec, err := s.conversions.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleExportConversions(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)

	data, err := s.exporter.ExportConversionsXLSX(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	name := "conversions-" + time.Now().UTC().Format("20060102-150405") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.ModelInfo())
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func categoryNames(res pipeline.Result) []string {
	if len(res.Categories) == 0 {
		return nil
	}
	out := make([]string, len(res.Categories))
	for i, c := range res.Categories {
		out[i] = string(c.Category)
	}
	return out
}

func severityName(res pipeline.Result) string {
	if res.Severity == nil {
		return ""
	}
	return string(res.Severity.Severity)
}
