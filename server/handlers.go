package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"hex/communication"
	"hex/engine"
	"hex/game"
	"hex/gamemaster"
	"hex/searcher"
	"hex/store"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("invalid request")

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrInvalidDimension),
		errors.Is(err, game.ErrOutOfBounds),
		errors.Is(err, game.ErrInvalidPosition):
		return http.StatusBadRequest
	case errors.Is(err, gamemaster.ErrGameNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrCellOccupied),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoLegalMove):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}

// decode reads a JSON body into v. An empty body leaves v untouched when optional is set.
func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) checkPlayouts(playouts int) (int, error) {
	switch {
	case playouts < 0 || playouts > s.maxPlayouts:
		return 0, fmt.Errorf("%w: playouts must be between 1 and %d, got %d", errBadRequest, s.maxPlayouts, playouts)
	case playouts == 0:
		return s.playouts, nil
	default:
		return playouts, nil
	}
}

// checkBudget rejects evaluations that would run more than maxSims playouts in total.
func (s *Server) checkBudget(empty, playouts int) error {
	if empty*playouts > s.maxSims {
		return fmt.Errorf("%w: %d empty cells at %d playouts exceeds %d simulations", errBadRequest, empty, playouts, s.maxSims)
	}
	return nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req communication.CreateRequest
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	g, err := s.master.Create(req.Width, req.Height)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g.View())
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: limit %q", errBadRequest, raw))
			return
		}
		limit = parsed
	}
	records, err := s.master.Records(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	g, err := s.master.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	record, err := s.master.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req communication.MoveRequest
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.master.Play(r.Context(), chi.URLParam(r, "id"), req.X, req.Y)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAuto(w http.ResponseWriter, r *http.Request) {
	var req communication.AutoRequest
	if err := decode(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	playouts, err := s.checkPlayouts(req.Playouts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	g, err := s.master.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if current := g.View(); current.Status.State == engine.InProgress {
		if err := s.checkBudget(current.Width*current.Height-current.Turn, playouts); err != nil {
			writeError(w, r, err)
			return
		}
	}
	move, view, err := s.master.Auto(r.Context(), id, playouts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.AutoResponse{
		Move:  move,
		Score: view.Scores[move.X][move.Y],
		View:  view,
	})
}

// handleEvaluate scores a position without touching any live game.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req communication.EvaluateRequest
	if err := decode(w, r, &req, false); err != nil {
		writeError(w, r, err)
		return
	}
	playouts, err := s.checkPlayouts(req.Playouts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	board, err := game.NewBoardFromCells(req.Cells)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if winner := board.Winner(); winner != game.Empty {
		writeError(w, r, fmt.Errorf("%w: %s already connected", game.ErrGameOver, winner))
		return
	}
	if err := s.checkBudget(len(board.EmptyCells()), playouts); err != nil {
		writeError(w, r, err)
		return
	}

	options := []searcher.Option{searcher.WithPlayouts(playouts), searcher.WithMetrics()}
	if req.Seed != nil {
		options = append(options, searcher.WithSeed(*req.Seed))
	}
	result, metric, err := searcher.NewMonteCarlo(s.goroutines, options...).Evaluate(board)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.EvaluateResponse{
		Move:        result.Move,
		Score:       result.Score,
		Scores:      result.Scores,
		Simulations: metric.Simulations,
	})
}
