// Package server exposes rendered craft trees over HTTP.
//
// Routes:
//
//	GET /healthz                       liveness probe
//	GET /objects                       JSON list of all objects
//	GET /objects/{id}/graph.{format}   rendered craft tree (dot, json, svg, png, pdf)
//
// Rendered artifacts are cached by databank fingerprint, target object and
// view settings, so the graphviz pipeline only runs on cache misses.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/craftviz/craftviz/pkg/cache"
	"github.com/craftviz/craftviz/pkg/databank"
	"github.com/craftviz/craftviz/pkg/errors"
	"github.com/craftviz/craftviz/pkg/graph"
	"github.com/craftviz/craftviz/pkg/graph/view"
	"github.com/craftviz/craftviz/pkg/render"
)

// Config assembles the server dependencies.
type Config struct {
	Bank  *databank.Databank
	Graph *graph.Graph

	ViewOptions view.Options
	Scale       float64 // PNG scale factor

	Cache cache.Cache // nil disables caching
	Keyer cache.Keyer // nil uses the default keyer
	TTL   time.Duration

	Logger *log.Logger
}

// Server serves rendered craft trees for one loaded databank.
type Server struct {
	cfg      Config
	bankHash string
}

// New creates a server for an already built graph.
func New(cfg Config) *Server {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Scale == 0 {
		cfg.Scale = 2.0
	}
	return &Server{cfg: cfg, bankHash: cfg.Bank.Fingerprint()}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/objects", s.handleObjects)
	r.Get("/objects/{id}/graph.{format}", s.handleGraph)

	return r
}

// objectInfo is the JSON shape of one databank object.
type objectInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Natural    bool   `json:"natural"`
	Category   bool   `json:"category"`
	Complexity *int   `json:"complexity"` // null when unreachable
}

func (s *Server) handleObjects(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Graph

	infos := make([]objectInfo, 0, g.NodeCount())
	for i := 0; i < g.NodeCount(); i++ {
		n := g.Node(i)
		if !n.IsObject() {
			continue
		}
		info := objectInfo{
			ID:       n.Object.ID,
			Name:     n.Object.Name,
			Natural:  n.Object.Natural,
			Category: n.Object.Category,
		}
		if v, ok := n.Complexity.Value(); ok {
			c := v
			info.Complexity = &c
		}
		infos = append(infos, info)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(infos)
}

var contentTypes = map[string]string{
	"dot":  "text/vnd.graphviz",
	"json": "application/json",
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"pdf":  "application/pdf",
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	objID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, errors.New(errors.ErrCodeInvalidInput, "object id must be a number"))
		return
	}
	format := chi.URLParam(r, "format")
	contentType, ok := contentTypes[format]
	if !ok {
		httpError(w, errors.New(errors.ErrCodeInvalidInput,
			"unknown format %q (must be dot, json, svg, png or pdf)", format))
		return
	}

	opts := s.cfg.ViewOptions
	if raw := r.URL.Query().Get("max_distance"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			httpError(w, errors.New(errors.ErrCodeInvalidInput, "max_distance must be a number"))
			return
		}
		opts.MaxDistance = d
	}

	key := s.cfg.Keyer.ArtifactKey(s.bankHash, objID, cache.ArtifactKeyOpts{
		Format:      format,
		Scale:       s.cfg.Scale,
		MaxDistance: opts.MaxDistance,
		Natural:     fmt.Sprint(opts.Natural),
		Categories:  fmt.Sprint(opts.Categories),
		Default:     fmt.Sprint(opts.Default),
	})
	if data, hit, err := s.cfg.Cache.Get(r.Context(), key); err == nil && hit {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
		return
	}

	data, err := s.renderArtifact(r, objID, format, opts)
	if err != nil {
		httpError(w, err)
		return
	}

	if err := s.cfg.Cache.Set(r.Context(), key, data, s.cfg.TTL); err != nil {
		s.cfg.Logger.Warnf("cache artifact: %v", err)
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *Server) renderArtifact(r *http.Request, objID int, format string, opts view.Options) ([]byte, error) {
	v := view.New(s.cfg.Graph, opts)
	if err := v.LeadingTo(objID); err != nil {
		return nil, err
	}
	layout := v.Layout()
	if format == "json" {
		return render.ToJSON(layout)
	}
	dot := render.ToDOT(layout)

	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return render.RenderSVG(r.Context(), dot)
	case "png":
		return render.RenderPNG(r.Context(), dot, s.cfg.Scale)
	default:
		return render.RenderPDF(r.Context(), dot)
	}
}

// httpError maps error codes onto HTTP statuses and writes a JSON body.
func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeUnknownObject:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
