package communication

import (
	"context"

	"twenty48/game"
)

// MoveRequest asks for the next move on a board. Board travels as a decimal
// string so JavaScript clients keep all 64 bits.
type MoveRequest struct {
	Board        game.Board `json:"board,string"`
	FoursSpawned int        `json:"foursSpawned"`
	Agent        string     `json:"agent,omitempty"` // the server default when empty
	Seed         uint64     `json:"seed,omitempty"`  // random and greedy agents only
}

type MoveResponse struct {
	Direction string    `json:"direction"`
	Score     int       `json:"score"`
	Dead      bool      `json:"dead"`
	Scores    []float64 `json:"scores,omitempty"` // expectimax agents only, indexed by direction
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Advisor answers move requests, either in process or over HTTP.
type Advisor interface {
	Advise(ctx context.Context, req MoveRequest) (MoveResponse, error)
}
