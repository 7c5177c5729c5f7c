package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"twenty48/agent"
	"twenty48/communication"
	"twenty48/game"
)

const (
	maxRequestBytes = 1 << 16
	shutdownTimeout = 5 * time.Second
)

// Server answers move requests over HTTP. Every request gets its own agent,
// so requests never share state.
type Server struct {
	defaultAgent agent.Kind
}

func New(defaultAgent agent.Kind) *Server {
	return &Server{defaultAgent: defaultAgent}
}

// Advise picks a move in process.
func (s *Server) Advise(ctx context.Context, req communication.MoveRequest) (communication.MoveResponse, error) {
	kind := s.defaultAgent
	if req.Agent != "" {
		var err error
		kind, err = agent.ParseKind(req.Agent)
		if err != nil {
			return communication.MoveResponse{}, err
		}
	}
	seed := req.Seed
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64) + 1
	}
	a, err := agent.New(kind, agent.WithSeed(seed))
	if err != nil {
		return communication.MoveResponse{}, err
	}

	resp := communication.MoveResponse{
		Score: game.EvaluateScore(req.Board, req.FoursSpawned),
		Dead:  game.IsTerminal(req.Board),
	}
	if ea, ok := a.(*agent.ExpectimaxAgent); ok {
		d, scores := ea.NextMoveWithScores(req.Board)
		resp.Direction = d.String()
		resp.Scores = scores[:]
	} else {
		resp.Direction = a.NextMove(req.Board).String()
	}
	return resp, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /nextmove", s.handleNextMove)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", addr).Str("agent", s.defaultAgent.String()).Msg("move service listening")

	select {
	case err := <-errs:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("move service shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleNextMove(w http.ResponseWriter, r *http.Request) {
	var req communication.MoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	start := time.Now()
	resp, err := s.Advise(r.Context(), req)
	if errors.Is(err, agent.ErrUnknownKind) {
		writeJSON(w, http.StatusBadRequest, communication.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to advise")
		writeJSON(w, http.StatusInternalServerError, communication.ErrorResponse{Error: err.Error()})
		return
	}

	log.Debug().
		Uint64("board", uint64(req.Board)).
		Str("dir", resp.Direction).
		Dur("took", time.Since(start)).
		Msg("nextmove")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
