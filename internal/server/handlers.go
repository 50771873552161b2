package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/querygate/internal/gateway"
	"github.com/leapstack-labs/querygate/internal/search"
)

// runQueryRequest mirrors gateway.Request with an optional use_cache so
// the configured default applies when it is omitted.
type runQueryRequest struct {
	Query        string `json:"query"`
	UseCache     *bool  `json:"use_cache"`
	ForceRefresh bool   `json:"force_refresh"`
	ConfirmWrite bool   `json:"confirm_write"`
}

type searchRequest struct {
	SearchTerm    string `json:"search_term"`
	Table         string `json:"table"`
	Columns       string `json:"columns"`
	UseWildcard   *bool  `json:"use_wildcard"`
	Limit         int    `json:"limit"`
	CaseSensitive bool   `json:"case_sensitive"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": catalog})
}

func (s *Server) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	var req runQueryRequest
	if !s.decode(w, r, &req) {
		return
	}
	// An empty query classifies as a read and is left to the database.

	useCache := s.cacheByDefault
	if req.UseCache != nil {
		useCache = *req.UseCache
	}

	res := s.gateway.Execute(r.Context(), gateway.Request{
		Query:        req.Query,
		UseCache:     useCache,
		ForceRefresh: req.ForceRefresh,
		ConfirmWrite: req.ConfirmWrite,
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClearCache(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gateway.ClearCache())
}

func (s *Server) handleCacheInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gateway.CacheInfo())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.searcher == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "search_sql is not enabled"})
		return
	}

	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	sr := search.Request{
		Term:          req.SearchTerm,
		Table:         req.Table,
		Columns:       search.SplitColumns(req.Columns),
		UseWildcard:   true,
		Limit:         req.Limit,
		CaseSensitive: req.CaseSensitive,
	}
	if req.UseWildcard != nil {
		sr.UseWildcard = *req.UseWildcard
	}

	writeJSON(w, http.StatusOK, s.searcher.Search(r.Context(), sr))
}

// decode reads a JSON body into v. On failure it writes a 400 and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(body).Decode(v)
	if err == nil {
		return true
	}

	msg := fmt.Sprintf("invalid request body: %v", err)
	if errors.Is(err, io.EOF) {
		msg = "request body is required"
	}
	s.logger.Debug("rejected request",
		slog.String("request_id", RequestIDFrom(r.Context())),
		slog.String("error", err.Error()),
	)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
