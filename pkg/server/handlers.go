package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mazewalk/pkg/buildinfo"
	"github.com/matzehuels/mazewalk/pkg/errors"
	"github.com/matzehuels/mazewalk/pkg/export"
	"github.com/matzehuels/mazewalk/pkg/game"
	"github.com/matzehuels/mazewalk/pkg/maze"
	"github.com/matzehuels/mazewalk/pkg/search"
)

// CreateRequest is the body of POST /v1/mazes. Zero dimensions fall back to
// the configured defaults; a nil seed means a clock seed.
type CreateRequest struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Seed   *int64 `json:"seed,omitempty"`
}

// MoveRequest is the body of POST /v1/mazes/{id}/move.
type MoveRequest struct {
	Direction string `json:"direction"`
}

// SearchRequest is the body of POST /v1/mazes/{id}/search.
type SearchRequest struct {
	Mode string `json:"mode"`
}

// Status is the compact session state returned by every command.
type Status struct {
	ID         string       `json:"id"`
	Generation int          `json:"generation"`
	Seed       int64        `json:"seed"`
	Player     maze.Coord   `json:"player"`
	Moves      int          `json:"moves"`
	Won        bool         `json:"won"`
	Moved      *bool        `json:"moved,omitempty"`
	State      search.State `json:"state"`
	Mode       search.Mode  `json:"mode"`
	Stats      search.Stats `json:"stats"`
	Path       []maze.Coord `json:"path,omitempty"`
	Frontier   []maze.Coord `json:"frontier,omitempty"`
}

// Snapshot is Status plus the full maze document.
type Snapshot struct {
	Status
	Maze export.Document `json:"maze"`
}

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func newStatus(sess *Session) Status {
	g := sess.game
	return Status{
		ID:         sess.ID(),
		Generation: g.Generation(),
		Seed:       g.Seed(),
		Player:     g.Player(),
		Moves:      g.Moves(),
		Won:        g.Won(),
		State:      g.State(),
		Mode:       g.Mode(),
		Stats:      g.Stats(),
		Path:       g.Path(),
		Frontier:   g.Frontier(),
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"sessions": s.store.Len(),
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Width == 0 {
		req.Width = s.cfg.Maze.Width
	}
	if req.Height == 0 {
		req.Height = s.cfg.Maze.Height
	}
	if err := errors.ValidateSize(req.Width, req.Height); err != nil {
		writeError(w, err)
		return
	}
	var opts []game.Option
	if req.Seed != nil {
		opts = append(opts, game.WithSeed(*req.Seed))
	}
	sess, err := s.store.Create(r.Context(), req.Width, req.Height, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	sess.mu.Lock()
	snap := Snapshot{Status: newStatus(sess), Maze: export.NewDocument(export.FromGame(sess.game))}
	sess.mu.Unlock()

	w.Header().Set("Location", "/v1/mazes/"+sess.ID())
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session) any {
		return Snapshot{Status: newStatus(sess), Maze: export.NewDocument(export.FromGame(sess.game))}
	})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatText)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts := export.DOTOptions{ShowVisited: r.URL.Query().Get("visited") == "true"}

	sess.mu.Lock()
	data, err := export.Render(r.Context(), export.FromGame(sess.game), format, opts)
	sess.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	d, err := maze.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	s.withSession(w, r, func(sess *Session) any {
		moved := sess.game.Move(d)
		st := newStatus(sess)
		st.Moved = &moved
		return st
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Mode == "" {
		req.Mode = s.cfg.Search.Mode
	}
	mode, err := search.ParseMode(req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}
	s.withSession(w, r, func(sess *Session) any {
		sess.game.StartSearch(mode)
		return newStatus(sess)
	})
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > MaxStepsPerRequest {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "n must be between 1 and %d, got %q", MaxStepsPerRequest, v))
			return
		}
		n = parsed
	}
	s.withSession(w, r, func(sess *Session) any {
		for i := 0; i < n; i++ {
			if sess.game.Tick().Done() {
				break
			}
		}
		return newStatus(sess)
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session) any {
		sess.game.ResetSearch()
		return newStatus(sess)
	})
}

func (s *Server) regenerate(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *Session) any {
		sess.game.Regenerate()
		return Snapshot{Status: newStatus(sess), Maze: export.NewDocument(export.FromGame(sess.game))}
	})
}

// withSession looks up the session named in the URL and runs fn while
// holding its lock.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*Session) any) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	body := func() any {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return fn(sess)
	}()
	writeJSON(w, http.StatusOK, body)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidMode:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
