package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	errx "github.com/instant-idea-buddy/server/internal/core/error"
	"github.com/instant-idea-buddy/server/internal/idea/controller"
	"github.com/instant-idea-buddy/server/internal/idea/model"
	logx "github.com/instant-idea-buddy/server/pkg/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// maxInputBytes bounds a submitted request body.
const maxInputBytes = 16 * 1024

// IdeaController is the part of the controller the web surface drives.
type IdeaController interface {
	State() model.State
	Reset() model.State
	Submit(ctx context.Context, input string) <-chan controller.Result
}

// Server renders the single page and serves the JSON API.
type Server struct {
	ctrl         IdeaController
	history      model.HistoryRepository
	limiter      *RateLimiter
	historyLimit int
}

// NewServer wires the handlers. history may be nil when Redis is disabled.
func NewServer(ctrl IdeaController, history model.HistoryRepository, cfg Config) *Server {
	return &Server{
		ctrl:         ctrl,
		history:      history,
		limiter:      NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		historyLimit: cfg.HistoryLimit,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("POST /idea", s.limiter.Middleware(http.HandlerFunc(s.handleFormSubmit)))
	mux.HandleFunc("POST /reset", s.handleReset)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.Handle("POST /api/idea", s.limiter.Middleware(http.HandlerFunc(s.handleAPISubmit)))
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("DELETE /api/history", s.handleClearHistory)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

type pageView struct {
	State   model.State
	History []*model.IdeaRecord
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := pageView{State: s.ctrl.State()}
	if s.history != nil && s.historyLimit > 0 {
		records, err := s.history.Recent(r.Context(), s.historyLimit)
		if err != nil {
			logx.Warn().Err(err).Msg("failed to load idea history for page")
		} else {
			view.History = records
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		logx.Error().Err(err).Msg("failed to render page")
	}
}

// handleFormSubmit starts the submission and redirects straight away; the page
// refreshes itself while the state is loading.
func (s *Server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInputBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	s.ctrl.Submit(context.WithoutCancel(r.Context()), r.PostFormValue("input"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.State())
}

type ideaRequest struct {
	Input string `json:"input"`
}

type ideaResponse struct {
	State     model.State `json:"state"`
	ErrorKind errx.Kind   `json:"error_kind,omitempty"`
}

func (s *Server) handleAPISubmit(w http.ResponseWriter, r *http.Request) {
	var req ideaRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with an \"input\" field")
		return
	}

	// The call outlives the client; a disconnect only stops the wait.
	var res controller.Result
	select {
	case res = <-s.ctrl.Submit(context.WithoutCancel(r.Context()), req.Input):
	case <-r.Context().Done():
		logx.Debug().Err(r.Context().Err()).Msg("client left before idea resolved")
		return
	}

	switch {
	case res.Err == nil:
		writeJSON(w, http.StatusOK, ideaResponse{State: res.State})
	case errors.Is(res.Err, controller.ErrSuperseded):
		writeJSON(w, http.StatusConflict, ideaResponse{State: res.State})
	default:
		appErr := errx.Classify(res.Err)
		writeJSON(w, appErr.Status, ideaResponse{State: res.State, ErrorKind: appErr.Kind})
	}
}

type historyResponse struct {
	Enabled bool                `json:"enabled"`
	Total   int                 `json:"total"`
	Ideas   []*model.IdeaRecord `json:"ideas"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSON(w, http.StatusOK, historyResponse{Ideas: []*model.IdeaRecord{}})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if records == nil {
		records = []*model.IdeaRecord{}
	}
	total, err := s.history.Count(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Enabled: true, Total: total, Ideas: records})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "idea history is disabled")
		return
	}
	if err := s.history.Clear(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}
	logx.Info().Msg("idea history cleared")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAppError replies with the AppError's status and message, hiding
// anything else behind a generic 500.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *errx.AppError
	if errors.As(err, &appErr) {
		writeError(w, appErr.Status, appErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, errx.SystemErrorMessage)
}
