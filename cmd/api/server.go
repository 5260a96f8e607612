package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"reqflow/branch"
	"reqflow/notify"
	"reqflow/report"
)

// BranchService abstracts the branch operations the HTTP layer needs.
type BranchService interface {
	Create(ctx context.Context, name string) (branch.Branch, error)
	List(ctx context.Context) ([]branch.Branch, error)
}

// ReportService abstracts the report operations the HTTP layer needs.
type ReportService interface {
	Submit(ctx context.Context, params report.SubmitParams) (report.Report, error)
	List(ctx context.Context, filters report.Filters) (report.ListResult, error)
}

// Server bundles the services behind the HTTP handlers.
type Server struct {
	branchService BranchService
	reportService ReportService
	log           *logrus.Logger
}

func NewServer(branchService BranchService, reportService ReportService, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		branchService: branchService,
		reportService: reportService,
		log:           log,
	}
}

type branchResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type reportResponse struct {
	ID         int64   `json:"id"`
	CreatedAt  int64   `json:"createdAt"`
	Requester  string  `json:"requester"`
	Item       string  `json:"item"`
	Quantity   int     `json:"quantity"`
	Branch     string  `json:"branch"`
	Status     string  `json:"status"`
	ApprovedBy *string `json:"approvedBy,omitempty"`
}

func toBranchResponse(b branch.Branch) branchResponse {
	return branchResponse{ID: b.ID, Name: b.Name}
}

func toReportResponse(rep report.Report) reportResponse {
	return reportResponse{
		ID:         rep.ID,
		CreatedAt:  rep.CreatedAt,
		Requester:  rep.Requester,
		Item:       rep.Item,
		Quantity:   rep.Quantity,
		Branch:     rep.Branch,
		Status:     string(rep.Status),
		ApprovedBy: rep.ApprovedBy,
	}
}

// Handler assembles the route table with CORS and request logging applied.
// CORS stays permissive: the form frontend is served from arbitrary origins.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/branches", s.handleBranches)
	mux.HandleFunc("/api/reports", s.handleReports)
	mux.HandleFunc("/healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return s.withRequestLog(c.Handler(mux))
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Info("request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBranches(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListBranches(w, r)
	case http.MethodPost:
		s.handleCreateBranch(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := s.branchService.List(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	items := make([]branchResponse, 0, len(branches))
	for _, b := range branches {
		items = append(items, toBranchResponse(b))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := s.branchService.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, branch.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "missing branch name")
			return
		}
		s.serverError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBranchResponse(created))
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListReports(w, r)
	case http.MethodPost:
		s.handleSubmitReport(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type createReportRequest struct {
	Requester string           `json:"requester"`
	Branch    string           `json:"branch"`
	Item      string           `json:"item"`
	Quantity  *report.Quantity `json:"quantity"`
	Date      string           `json:"date"`
	Time      string           `json:"time"`
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	rep, err := s.reportService.Submit(r.Context(), report.SubmitParams{
		Requester: req.Requester,
		Branch:    req.Branch,
		Item:      req.Item,
		Quantity:  req.Quantity,
		Date:      req.Date,
		Time:      req.Time,
	})
	switch {
	case errors.Is(err, report.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, notify.ErrDispatch):
		// The report is persisted; only delivery failed.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":  "notification dispatch failed",
			"report": toReportResponse(rep),
		})
	case err != nil:
		s.serverError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"report": toReportResponse(rep)})
	}
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	result, err := s.reportService.List(r.Context(), report.Filters{
		Page:    page,
		PerPage: perPage,
		Query:   strings.TrimSpace(query.Get("q")),
		Status:  report.Status(query.Get("status")),
	})
	if err != nil {
		s.serverError(w, err)
		return
	}

	items := make([]reportResponse, 0, len(result.Items))
	for _, rep := range result.Items {
		items = append(items, toReportResponse(rep))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": result.Total})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("internal error")
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
