// Package httpapi exposes the catalog, the scenario list and scenario runs
// over HTTP for report dashboards.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog"

	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/input"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/application/port/output"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/catalog"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/dom"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"
	"github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/infrastructure/screenshot"
)

const (
	serviceName = "picker-harness"
	dateLayout  = "2006-01-02"
	runTimeout  = 60 * time.Second
)

type Server struct {
	catalog     *catalog.Catalog
	scenarios   output.ScenarioSource
	registry    output.PickerRegistry
	runner      input.ScenarioRunner
	browser     output.BrowserPort
	screenshots *screenshot.Store
	logger      output.LoggerPort

	corsOrigins []string

	// the page is shared, so runs and detections take turns
	pageMu sync.Mutex
}

type Deps struct {
	Catalog     *catalog.Catalog
	Scenarios   output.ScenarioSource
	Registry    output.PickerRegistry
	Runner      input.ScenarioRunner
	Browser     output.BrowserPort
	Screenshots *screenshot.Store
	Logger      output.LoggerPort
	// CORSOrigins enables cross-origin access for these origins.
	CORSOrigins []string
}

func New(d Deps) *Server {
	if d.Catalog == nil {
		d.Catalog = catalog.Default()
	}
	return &Server{
		catalog:     d.Catalog,
		scenarios:   d.Scenarios,
		registry:    d.Registry,
		runner:      d.Runner,
		browser:     d.Browser,
		screenshots: d.Screenshots,
		logger:      d.Logger,
		corsOrigins: d.CORSOrigins,
	}
}

// Handler builds the router with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(httplog.NewLogger(serviceName, httplog.Options{JSON: true, Concise: true})))
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/pickers", s.handleListPickers)
		r.Get("/pickers/{type}", s.handleGetPicker)
		r.Get("/scenarios", s.handleListScenarios)
		r.Post("/scenarios/{id}/run", s.handleRunScenario)
		r.Post("/detect", s.handleDetect)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"browser": s.browser != nil,
		"pickers": s.catalog.Len(),
	})
}

func (s *Server) handleListPickers(w http.ResponseWriter, r *http.Request) {
	entries := s.catalog.Entries()
	out := make([]pickerSummary, 0, len(entries))
	for _, cfg := range entries {
		out = append(out, summarize(cfg))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPicker(w http.ResponseWriter, r *http.Request) {
	pickerType := entity.PickerType(chi.URLParam(r, "type"))
	cfg, ok := s.catalog.StrategyFor(pickerType)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown picker type %q", pickerType))
		return
	}
	writeJSON(w, http.StatusOK, describe(cfg))
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	list := s.scenarios.List()
	if picker := r.URL.Query().Get("picker"); picker != "" {
		filtered := list[:0:0]
		for _, m := range list {
			if string(m.PickerType) == picker {
				filtered = append(filtered, m)
			}
		}
		list = filtered
	}
	writeJSON(w, http.StatusOK, list)
}

// pageRequest selects the page a run or detection works on. With neither URL
// nor HTML set the current page is used.
type pageRequest struct {
	URL  string `json:"url,omitempty"`
	HTML string `json:"html,omitempty"`
}

type runRequest struct {
	pageRequest
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type runResponse struct {
	entity.ExecutionResult
	screenshot.Artifacts
}

func (s *Server) handleRunScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.scenarios.Lookup(id); !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown scenario %q", id))
		return
	}

	var req runRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := req.options()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	doc, status, err := s.preparePage(ctx, req.pageRequest)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	opts.Scope = doc

	res := s.runner.Run(id, opts)
	resp := runResponse{ExecutionResult: res}
	if !res.Success {
		resp.Artifacts = s.screenshots.Capture(ctx, s.browser, res.RunID, s.logger)
	}
	writeJSON(w, http.StatusOK, resp)
}

type detectionView struct {
	PickerType entity.PickerType `json:"picker_type"`
	Confidence float64           `json:"confidence"`
	RootKind   string            `json:"root_kind"`
	RootID     string            `json:"root_id"`
	Trigger    string            `json:"trigger,omitempty"`
	HasPanel   bool              `json:"has_panel"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), runTimeout)
	defer cancel()

	s.pageMu.Lock()
	defer s.pageMu.Unlock()

	doc, status, err := s.preparePage(ctx, req)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	all := s.registry.DetectAll(doc)
	out := make([]detectionView, 0, len(all))
	for _, d := range all {
		out = append(out, viewDetection(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) preparePage(ctx context.Context, req pageRequest) (dom.Document, int, error) {
	if s.browser == nil {
		return nil, http.StatusServiceUnavailable, errors.New("no browser attached")
	}
	switch {
	case req.HTML != "":
		if err := s.browser.LoadHTML(ctx, req.HTML); err != nil {
			return nil, http.StatusBadGateway, fmt.Errorf("load html: %w", err)
		}
	case req.URL != "":
		if err := s.browser.Navigate(ctx, req.URL); err != nil {
			return nil, http.StatusBadGateway, fmt.Errorf("navigate: %w", err)
		}
	}
	doc, err := s.browser.Document(ctx)
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("document: %w", err)
	}
	return doc, http.StatusOK, nil
}

func (req runRequest) options() (input.RunOptions, error) {
	var opts input.RunOptions
	if req.Start != "" {
		t, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			return opts, fmt.Errorf("start: %w", err)
		}
		opts.Start = &t
	}
	if req.End != "" {
		t, err := time.Parse(dateLayout, req.End)
		if err != nil {
			return opts, fmt.Errorf("end: %w", err)
		}
		opts.End = &t
	}
	return opts, nil
}

// decodeOptional accepts an empty body.
func decodeOptional(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
