package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/docmdio/docmd/constants"
	"github.com/docmdio/docmd/internal/common"
	"github.com/docmdio/docmd/internal/entity"
	"github.com/docmdio/docmd/internal/extract"
)

// handleConvert accepts a multipart upload, runs the analysis pipeline, and
// stores the result in the conversion history.
//
// Form fields:
//
//	file     - the document (required)
//	features - feature names, repeated or comma separated (optional)
//	options  - JSON options object, schema-validated (optional)
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: parse multipart form: %v", common.ErrInvalidInput, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: missing file field", common.ErrInvalidInput))
		return
	}
	defer func() { _ = file.Close() }()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		s.writeError(w, r, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext))
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: read upload: %v", common.ErrInvalidInput, err))
		return
	}

	res, err := s.analyzer.Analyze(ctx, extract.Document{Filename: header.Filename, Data: data}, constants.ParseFeatures(opts.Features))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &entity.Conversion{
		Filename:         res.Filename,
		Format:           string(res.Format),
		FileSize:         int64(len(data)),
		UsedOCR:          res.UsedOCR,
		Pages:            res.Pages,
		PredictedTitle:   res.PredictedTitle,
		MarkdownContent:  res.MarkdownContent,
		Categories:       categoryNames(res),
		Keywords:         res.Keywords,
		Severity:         severityName(res),
		SummaryContent:   res.SummaryContent,
		CorrectedContent: res.CorrectedContent,
	}
	if opts.Save {
		if err := s.conversions.Save(ctx, rec); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Conversion: rec,
		Result:     &res,
	})
}

type convertResponse struct {
	Conversion *entity.Conversion `json:"conversion"`
	Result     any                `json:"result"`
}

// parseOptions merges the plain form fields with the optional JSON options
// part. The JSON part wins for fields it sets.
func parseOptions(r *http.Request) (convertOptions, error) {
	opts := defaultOptions()
	for _, v := range r.Form["features"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.Features = append(opts.Features, name)
			}
		}
	}
	if raw := r.FormValue("options"); raw != "" {
		parsed, err := parseOptionsJSON([]byte(raw))
		if err != nil {
			return opts, err
		}
		if parsed.Features != nil {
			opts.Features = parsed.Features
		}
		opts.Save = parsed.Save
	}
	return opts, nil
}
