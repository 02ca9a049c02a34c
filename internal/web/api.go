package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bisurvey/internal/stats"
	"github.com/mesh-intelligence/bisurvey/internal/views"
	"github.com/mesh-intelligence/bisurvey/pkg/types"
)

// maxBodyBytes bounds API request bodies.
const maxBodyBytes = 4 << 20

type apiError struct {
	Error string `json:"error"`
}

type overwriteResult struct {
	Rows int `json:"rows"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, apiError{Error: err.Error()})
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidValue),
		errors.Is(err, types.ErrSchemaMismatch),
		errors.Is(err, types.ErrRowOutOfRange),
		errors.Is(err, stats.ErrNotNumeric):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnknownField):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) apiListResponses(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ds == nil {
		ds = types.Dataset{}
	}
	s.writeJSON(w, http.StatusOK, ds)
}

func (s *Server) apiAppendResponse(w http.ResponseWriter, r *http.Request) {
	var resp types.Response
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&resp); err != nil {
		s.metrics.submissions.WithLabelValues(resultInvalid).Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := resp.Validate(); err != nil {
		s.metrics.submissions.WithLabelValues(resultInvalid).Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Append(resp); err != nil {
		s.metrics.submissions.WithLabelValues(resultFailed).Inc()
		s.logger.Error("append response", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.submissions.WithLabelValues(resultSaved).Inc()
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) apiOverwriteResponses(w http.ResponseWriter, r *http.Request) {
	var ds types.Dataset
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		s.metrics.saves.WithLabelValues(resultInvalid).Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := ds.Validate(); err != nil {
		s.metrics.saves.WithLabelValues(resultInvalid).Inc()
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Overwrite(ds); err != nil {
		s.metrics.saves.WithLabelValues(resultFailed).Inc()
		s.logger.Error("overwrite dataset", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.saves.WithLabelValues(resultSaved).Inc()
	s.metrics.rows.Set(float64(ds.Len()))
	s.writeJSON(w, http.StatusOK, overwriteResult{Rows: ds.Len()})
}

func (s *Server) apiRespuestas(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	v, err := views.BuildRespuestas(ds)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiQuestion(w http.ResponseWriter, r *http.Request) {
	f, err := types.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	ds, err := s.load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	q, err := views.BuildQuestion(ds, f)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, q)
}

func (s *Server) apiAnalisis(w http.ResponseWriter, r *http.Request) {
	ds, err := s.load()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	v, err := views.BuildAnalisis(ds)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}
