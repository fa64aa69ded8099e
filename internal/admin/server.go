// Package admin serves the visibility report over HTTP.
package admin

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"unitsight/internal/logging"
	"unitsight/internal/perception"
	"unitsight/internal/render"
	"unitsight/internal/unit"
	"unitsight/internal/visibility"
)

// Engine is the read access the server needs. *visibility.Engine satisfies it.
type Engine interface {
	Units() []unit.Unit
	Vision() perception.Vision
	VisibleIDs(id int) ([]int, error)
	Report(ctx context.Context) (visibility.Report, error)
}

type Server struct {
	engine Engine
	tpl    *template.Template
	router *mux.Router
	log    *slog.Logger
	report func() (visibility.Report, error)
}

//go:embed templates/index.html
var content embed.FS

// NewServer wires the routes. The report is computed on first use and
// reused afterwards.
func NewServer(engine Engine, log *slog.Logger) *Server {
	if log == nil {
		log = logging.New()
	}
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{engine: engine, tpl: tpl, router: mux.NewRouter(), log: log}
	s.report = sync.OnceValues(func() (visibility.Report, error) {
		return engine.Report(context.Background())
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	s.router.HandleFunc("/units/{id}", s.handleUnit).Methods(http.MethodGet)
	s.router.HandleFunc("/render.svg", s.handleSVG).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler exposes the router, mainly for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("admin server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("admin server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// focusParam reads ?focus=<id>; -1 when absent or invalid.
func focusParam(r *http.Request) int {
	id, err := strconv.Atoi(r.URL.Query().Get("focus"))
	if err != nil || id < 0 {
		return -1
	}
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	rep, err := s.report()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	v := s.engine.Vision()
	data := struct {
		Entries  []visibility.Entry
		AngleDeg float64
		Distance float64
		Focus    int
	}{rep.Entries, v.AngleDeg(), v.Distance, focusParam(r)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tpl.Execute(w, data); err != nil {
		s.log.Error("render index", "err", err)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.report()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type unitResponse struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	FacingX    float64 `json:"facing_x"`
	FacingY    float64 `json:"facing_y"`
	Visible    int     `json:"visible"`
	VisibleIDs []int   `json:"visible_ids"`
}

func (s *Server) handleUnit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ids, err := s.engine.VisibleIDs(id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, visibility.ErrInvalidArgument) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	u := s.engine.Units()[id]
	writeJSON(w, http.StatusOK, unitResponse{
		ID:         u.ID,
		Name:       u.Name,
		X:          u.Position.X,
		Y:          u.Position.Y,
		FacingX:    u.Facing.X,
		FacingY:    u.Facing.Y,
		Visible:    len(ids),
		VisibleIDs: ids,
	})
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	rep, err := s.report()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	opts := render.DefaultOptions()
	if focus := focusParam(r); focus >= 0 {
		ids, err := s.engine.VisibleIDs(focus)
		if err == nil {
			opts.Focus = focus
			opts.Visible = ids
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.SVG(w, s.engine.Units(), s.engine.Vision(), rep, opts); err != nil {
		s.log.Error("render svg", "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
