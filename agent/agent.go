package agent

import (
	"errors"
	"fmt"
	"strings"

	"twenty48/experiments/metrics"
	"twenty48/game"
)

var ErrUnknownKind = errors.New("unknown agent kind")

// Agent picks the next move for a board.
type Agent interface {
	NextMove(b game.Board) game.Direction
}

// Instrumented agents also report the search behind each move.
type Instrumented interface {
	Agent
	NextMoveWithMetrics(b game.Board) (game.Direction, metrics.SearchMetric)
}

type Kind int

const (
	Random Kind = iota
	Greedy
	Expectimax
	ImprovedExpectimax
)

var Kinds = []Kind{Random, Greedy, Expectimax, ImprovedExpectimax}

var kindNames = [...]string{
	Random:             "random",
	Greedy:             "greedy",
	Expectimax:         "expectimax",
	ImprovedExpectimax: "improved",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// ParseKinds parses a list of agent names, rejecting the first unknown one.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// MarshalText lets kinds appear by name in config files and JSON.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
