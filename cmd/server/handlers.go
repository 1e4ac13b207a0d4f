package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/model"
	"github.com/liamcoop/logicgraph/prover"
	"github.com/liamcoop/logicgraph/service"
	"github.com/liamcoop/logicgraph/store"
)

const maxBodyBytes = 1 << 20

// Health check handler
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "healthy",
		Store:    s.info.store,
		Cache:    s.info.cache,
		Prover:   s.info.prover,
		Counters: logger.Snapshot(),
	}

	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			resp.Status, resp.Error = "unhealthy", err.Error()
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req ArgumentRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.svc.Compile(r.Context(), req.Premises, req.Conclusion)
	if err != nil {
		respondServiceError(w, "failed to compile argument", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleLogicExamples(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, logic.Examples())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.svc.Generate(r.Context(), req.Model, req.CustomDomainName)
	if err != nil {
		respondServiceError(w, "failed to generate script", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	var req ArgumentRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Premises) == 0 {
		respondError(w, http.StatusBadRequest, "premises are required", nil)
		return
	}

	respondJSON(w, http.StatusOK, s.svc.RoundTrip(r.Context(), req.Premises, req.Conclusion))
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, ExampleNamesResponse{Examples: model.ExampleNames()})
}

func (s *Server) handleGetExample(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	m, err := s.svc.Example(name)
	if err != nil {
		respondServiceError(w, "example not found", err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req ArgumentRequest
	if !decode(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, s.svc.Check(r.Context(), req.Premises, req.Conclusion))
}

func (s *Server) handleProve(w http.ResponseWriter, r *http.Request) {
	var req ArgumentRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := s.svc.Prove(r.Context(), req.Premises, req.Conclusion)
	if err != nil {
		respondServiceError(w, "failed to prove theorem", err)
		return
	}

	status := http.StatusOK
	if res.Verdict == prover.VerdictError {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, res)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req service.GraphRequest
	if !decode(w, r, &req) {
		return
	}

	g, err := s.svc.Graph(r.Context(), req)
	if err != nil {
		respondServiceError(w, "failed to build graph", err)
		return
	}
	respondJSON(w, http.StatusOK, g)
}

func (s *Server) handleSaveRelations(w http.ResponseWriter, r *http.Request) {
	var req SaveRelationsRequest
	if !decode(w, r, &req) {
		return
	}

	rels := req.Relations
	if req.Expression != "" {
		rels = append(rels, service.RelationsFromExpression(req.Expression, req.RelationType)...)
	}
	if len(rels) == 0 {
		respondError(w, http.StatusBadRequest, "relations or expression are required", nil)
		return
	}

	report, err := s.svc.SaveRelations(r.Context(), rels)
	if err != nil {
		respondServiceError(w, "failed to save relations", err)
		return
	}

	status := http.StatusCreated
	if report.SuccessCount == 0 {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, report)
}

func (s *Server) handleFindRelations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}

	found, err := s.svc.FindRelations(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		respondServiceError(w, "failed to find relations", err)
		return
	}
	respondJSON(w, http.StatusOK, RelationsListResponse{Relations: found, Count: len(found)})
}

func (s *Server) handleGetRelation(w http.ResponseWriter, r *http.Request) {
	rel, err := s.svc.GetRelation(r.Context(), chi.URLParam(r, "relationId"))
	if err != nil {
		respondServiceError(w, "relation not found", err)
		return
	}
	respondJSON(w, http.StatusOK, rel)
}

func (s *Server) handleDeleteRelation(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRelation(r.Context(), chi.URLParam(r, "relationId")); err != nil {
		respondServiceError(w, "failed to delete relation", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// statusFor maps service errors onto HTTP statuses
func statusFor(err error) int {
	var (
		lintErr  *service.LintError
		modelErr *model.ValidationError
	)
	switch {
	case errors.As(err, &lintErr), errors.As(err, &modelErr),
		errors.Is(err, logic.ErrEmptyPremises), errors.Is(err, logic.ErrEmptyConclusion),
		errors.Is(err, service.ErrNotCompiled), errors.Is(err, service.ErrEmptyExpression),
		errors.Is(err, service.ErrEmptyQuery), errors.Is(err, store.ErrInvalidRelation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownExample), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, prover.ErrSolverUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNoProver):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)

	var lintErr *service.LintError
	if errors.As(err, &lintErr) {
		respondJSON(w, status, ErrorResponse{Error: "script failed lint", Issues: lintErr.Report.Issues})
		return
	}
	if status == http.StatusBadRequest {
		// validation messages are meant for the user as they are
		message = err.Error()
	}
	respondError(w, status, message, err)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := ErrorResponse{Error: message}
	if err != nil && err.Error() != message {
		response.Details = err.Error()
	}
	respondJSON(w, status, response)
}
