// Package server implements the kolam analysis service: image upload
// and analysis on /analyze, server-side SVG rendering on /export-svg.
//
// Analysis is simulated from a built-in pattern library (see
// pattern.Simulate); uploads and their records are persisted so the
// CLI can list and replay them.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/san-kum/kolam/internal/export"
	"github.com/san-kum/kolam/internal/pattern"
	"github.com/san-kum/kolam/internal/store"
)

// Uploads larger than this are rejected outright.
const maxUploadBytes = 16 << 20

type Server struct {
	store *store.Store
	log   *log.Logger
	now   func() time.Time
}

func New(st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, log: logger, now: time.Now}
}

// Handler returns the service's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/export-svg", s.handleExportSVG)
	return mux
}

// ListenAndServe runs the service until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Printf("kolam analysis service listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type response struct {
	Success bool            `json:"success"`
	Data    *pattern.Record `json:"data,omitempty"`
	SVG     string          `json:"svg,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (s *Server) reply(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Printf("encode response: %v", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.reply(w, status, response{Success: false, Error: msg})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.fail(w, http.StatusBadRequest, "No image file provided")
		return
	}

	file, hdr, err := r.FormFile("image")
	if err != nil {
		s.fail(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if hdr.Filename == "" {
		s.fail(w, http.StatusBadRequest, "No file selected")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	rec := pattern.Simulate(hdr.Filename, s.now())

	// Stored name is timestamped so repeated uploads never collide.
	storedName := fmt.Sprintf("%s_%s", s.now().Format("20060102_150405"), hdr.Filename)
	if s.store != nil {
		if _, err := s.store.Save(&rec, storedName, data); err != nil {
			s.log.Printf("persist upload %s: %v", storedName, err)
			s.fail(w, http.StatusInternalServerError, "failed to store upload")
			return
		}
	}

	s.log.Printf("analyzed %s (%d bytes) -> %s", hdr.Filename, len(data), rec.ID)
	s.reply(w, http.StatusOK, response{Success: true, Data: &rec})
}

type exportRequest struct {
	Paths    []pattern.Path  `json:"paths"`
	GridDots []pattern.Point `json:"grid_dots"`
}

func (s *Server) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.fail(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid export payload")
		return
	}

	svg := export.SVG(req.Paths, req.GridDots)
	s.reply(w, http.StatusOK, response{Success: true, SVG: svg})
}
