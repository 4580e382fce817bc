package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/channel-dashboard/internal/session"
	"github.com/jonathan/channel-dashboard/internal/supply"
	"github.com/jonathan/channel-dashboard/internal/types"
)

// SupplyDemandResponse represents the response for /supply-demand
type SupplyDemandResponse struct {
	Series  []session.SupplyView `json:"series"`
	Missing []string             `json:"missing"`
	Points  int                  `json:"points"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUploadDataset replaces the dataset with an uploaded workbook. It accepts
// a multipart "file" field, or a raw body named by the filename query parameter.
func (s *Server) handleUploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	body, filename, err := uploadedFile(r, s.maxUploadBytes)
	if err != nil {
		s.failure(w, err)
		return
	}
	defer func() { _ = body.Close() }()

	ds, err := s.session.Load(body, filename)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, ds.Summary())
}

func uploadedFile(r *http.Request, maxBytes int64) (io.ReadCloser, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", &ErrValidation{Field: "file", Message: err.Error()}
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", &ErrValidation{Field: "file", Message: "multipart field \"file\" is required"}
		}
		return f, header.Filename, nil
	}

	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		return nil, "", &ErrValidation{Field: "filename", Message: "query parameter is required for raw uploads"}
	}
	return r.Body, filename, nil
}

// handleGetDataset describes the loaded dataset
func (s *Server) handleGetDataset(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.session.Summary())
}

// handleResetDataset drops the loaded dataset
func (s *Server) handleResetDataset(w http.ResponseWriter, _ *http.Request) {
	s.session.Reset()
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleOptions returns the cross-filtered option lists for a selection
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var sel types.Selection
	if !s.decode(w, r, &sel) {
		return
	}

	opts, err := s.session.Options(sel)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, opts)
}

// handleReport computes the channel report for a filter request
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req session.ReportRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.session.Report(req)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// handleSupplyDemand returns supply/demand series for ?category= values (repeated
// or comma-separated); no category returns every category.
func (s *Server) handleSupplyDemand(w http.ResponseWriter, r *http.Request) {
	var categories []string
	for _, v := range r.URL.Query()["category"] {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	views, missing, err := s.session.SupplyDemand(categories)
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SupplyDemandResponse{Series: views, Missing: missing, Points: supply.Points})
}

// decode reads a JSON body into v. An empty body leaves v zero-valued.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		s.failure(w, &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()})
		return false
	}
	return true
}
