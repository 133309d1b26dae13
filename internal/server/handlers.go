package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/galois/internal/config"
	apperrors "github.com/agbru/galois/internal/errors"
	"github.com/agbru/galois/internal/logging"
	"github.com/agbru/galois/internal/service"
	"github.com/agbru/galois/internal/solver"
	"github.com/agbru/galois/pkg/models"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.HealthResponse{Status: "healthy", Timestamp: time.Now().Unix()})
}

// handleSolvers returns the registered closed-form solvers.
func (s *Server) handleSolvers(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewSolversResponse(s.service.Solvers()))
}

// handleSolve solves the equation given by the 'coeffs' query parameter.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	coeffs, err := parseCoefficientsParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	precision, err := s.parsePrecisionParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()
	res, err := s.service.Solve(ctx, coeffs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewSolveResponse(res, precision))
}

// handleRandom generates and solves a random equation of the requested
// degree. The seed is echoed in the response so the draw can be replayed.
func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	degree, err := parseIntParam(r, "degree", config.DefaultDegree)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.writeError(w, apperrors.NewValidationError("seed", "must be an integer", v))
			return
		}
	}
	precision, err := s.parsePrecisionParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()
	res, err := s.service.Random(ctx, degree, seed)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewSolveResponse(res, precision))
}

// handleActions lists the symmetry catalog of a degree.
func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	degree, err := parseIntParam(r, "degree", config.DefaultDegree)
	if err != nil {
		s.writeError(w, err)
		return
	}
	actions, err := s.service.Actions(degree)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewActionsResponse(degree, actions))
}

// handleApply solves an equation and permutes its roots with a catalog
// action.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	coeffs, err := parseCoefficientsParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	actionID := r.URL.Query().Get("action")
	if actionID == "" {
		s.writeError(w, apperrors.NewValidationError("action", "missing 'action' parameter", nil))
		return
	}
	precision, err := s.parsePrecisionParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()
	res, err := s.service.Apply(ctx, coeffs, actionID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewApplyResponse(res, precision))
}

// handleUnitRoots returns the n-th roots of unity.
func (s *Server) handleUnitRoots(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	if r.URL.Query().Get("n") == "" {
		s.writeError(w, apperrors.NewValidationError("n", "missing 'n' parameter", nil))
		return
	}
	n, err := parseIntParam(r, "n", 0)
	if err != nil {
		s.writeError(w, err)
		return
	}
	precision, err := s.parsePrecisionParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	roots, err := s.service.UnitRoots(n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, service.NewUnitRootsResponse(n, roots, precision))
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return false
	}
	return true
}

// parseCoefficientsParam reads the mandatory 'coeffs' parameter
// ("1,-5,6", highest power first).
func parseCoefficientsParam(r *http.Request) ([]float64, error) {
	raw := r.URL.Query().Get("coeffs")
	if raw == "" {
		return nil, apperrors.NewValidationError("coeffs", "missing 'coeffs' parameter", nil)
	}
	return solver.ParseCoefficients(raw)
}

// parseIntParam reads an optional integer parameter.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.NewValidationError(name, "must be an integer", v)
	}
	return n, nil
}

// parsePrecisionParam reads the optional 'precision' parameter, defaulting
// to the configured precision.
func (s *Server) parsePrecisionParam(r *http.Request) (int, error) {
	def := s.cfg.Precision
	if def <= 0 {
		def = config.DefaultPrecision
	}
	p, err := parseIntParam(r, "precision", def)
	if err != nil {
		return 0, err
	}
	if p < 0 || p > config.MaxPrecision {
		return 0, apperrors.NewValidationError("precision", "must be between 0 and "+strconv.Itoa(config.MaxPrecision), p)
	}
	return p, nil
}

// writeError maps an error to an HTTP status: 400 for validation failures,
// 504 when the request deadline expired, 500 otherwise.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		s.writeErrorResponse(w, http.StatusBadRequest, ve.Message, ve.Field)
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "request timed out", "")
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "request canceled", "")
	default:
		s.logger.Error("request failed", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error(), "")
	}
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
// The body is encoded before the status line is sent, so a value that cannot
// be encoded turns into a 500 error response instead of an empty body.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
		buf.Reset()
		statusCode = http.StatusInternalServerError
		fallback := models.ErrorResponse{
			Error:   http.StatusText(statusCode),
			Message: "response could not be encoded",
		}
		if err := json.NewEncoder(&buf).Encode(fallback); err != nil {
			http.Error(w, http.StatusText(statusCode), statusCode)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("writing JSON response", logging.String("error", err.Error()))
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
//   - field: The offending input, if any.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message, field string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Field:   field,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
