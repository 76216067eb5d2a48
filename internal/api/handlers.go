package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/isg32/bookpiler/internal/order"
	"github.com/isg32/bookpiler/internal/pipeline"
)

// handleGroups scans the data directory and lists discovered book groups.
func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	res, err := s.assembler.Run(s.cfg.DataDir)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type groupInfo struct {
		ClassID  string   `json:"class"`
		Subject  string   `json:"subject"`
		Chapters int      `json:"chapters"`
		Titles   []string `json:"titles"`
	}
	groups := make([]groupInfo, 0, len(res.Groups))
	for _, g := range res.Groups {
		info := groupInfo{ClassID: g.Key.ClassID, Subject: g.Key.Subject, Chapters: len(g.Chapters)}
		for _, ch := range g.Chapters {
			info.Titles = append(info.Titles, ch.Title)
		}
		groups = append(groups, info)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"groups":      groups,
		"diagnostics": res.Diagnostics,
	})
}

type compileRequest struct {
	Class   string `json:"class,omitempty"`
	Subject string `json:"subject,omitempty"`
	Format  string `json:"format,omitempty"`
}

// handleCompile submits a compile job for all groups or a selection.
func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	var req compileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := req.Format
	if format == "" {
		format = s.cfg.Format
	}
	if format != "docx" && format != "pdf" {
		jsonError(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewID(),
		Selection: pipeline.Selection{ClassID: req.Class, Subject: req.Subject},
		Format:    format,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/compile/%s/status", job.ID),
	})
}

func (s *Server) handleCompileStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// handleBooks lists compiled books in the output directory.
func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if err != nil {
		if os.IsNotExist(err) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{"books": []string{}})
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var books []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".docx" || ext == ".pdf" {
			books = append(books, e.Name())
		}
	}
	sort.Slice(books, func(i, j int) bool {
		return order.NaturalLess(books[i], books[j])
	})
	if books == nil {
		books = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"books": books})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
