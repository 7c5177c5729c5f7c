package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"twenty48/agent"
	"twenty48/communication/client"
	"twenty48/engine"
	"twenty48/game"
)

const remoteAgent = "remote"

var errUsage = errors.New("usage")

type ShellController struct {
	l   *readline.Instance
	out io.Writer

	engine       *engine.Engine
	defaultAgent agent.Kind
	remote       string // move service URL, empty when there is none
	nextSeed     uint64
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewShellController starts a game seeded with seed on an interactive prompt.
func NewShellController(defaultAgent agent.Kind, remote string, seed uint64) (*ShellController, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33m2048>\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), "twenty48.readline"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start readline: %w", err)
	}
	sc := newController(l.Stdout(), defaultAgent, remote, seed)
	sc.l = l
	return sc, nil
}

func newController(out io.Writer, defaultAgent agent.Kind, remote string, seed uint64) *ShellController {
	return &ShellController{
		out:          out,
		engine:       engine.NewLocal(nil, seed),
		defaultAgent: defaultAgent,
		remote:       remote,
		nextSeed:     seed + 1,
	}
}

func (sc *ShellController) showMessage(format string, args ...any) {
	fmt.Fprintf(sc.out, format, args...)
	io.WriteString(sc.out, "\n")
}

// Loop reads commands until exit, EOF or an interrupt on an empty line.
func (sc *ShellController) Loop() {
	defer sc.l.Close()

	sc.show()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		quit, err := sc.Execute(line)
		if err != nil {
			sc.showMessage("error: %v", err)
		}
		if quit {
			break
		}
	}
	log.Debug().Msg("exiting readline loop...")
}

// Execute runs one command line and reports whether the shell should exit.
func (sc *ShellController) Execute(line string) (bool, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return false, err
	}
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help", "?":
		sc.showMessage("%s", helpText)
	case "new":
		return false, sc.newGame(args)
	case "left", "right", "up", "down", "l", "r", "u", "d":
		return false, sc.move(cmd)
	case "hint":
		return false, sc.hint(args)
	case "auto":
		return false, sc.auto(args)
	case "show":
		sc.show()
	case "load":
		return false, sc.load(args)
	case "save":
		sc.save()
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, nil
}

func (sc *ShellController) show() {
	state := sc.engine.State
	sc.showMessage("%s", state.Board)
	sc.showMessage("score: %d  moves: %d  max tile: %d", state.Score(), sc.engine.Moves(), state.Board.MaxTile())
	if sc.engine.Dead() {
		sc.showMessage("game over")
	}
}

func (sc *ShellController) newGame(args []string) error {
	seed := sc.nextSeed
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: new [seed]", errUsage)
		}
		seed = parsed
	}
	sc.nextSeed = seed + 1
	sc.engine.Reset(seed)
	sc.showMessage("new game with seed %d", seed)
	sc.show()
	return nil
}

func (sc *ShellController) move(name string) error {
	d, err := game.ParseDirection(name)
	if err != nil {
		return err
	}
	moved, err := sc.engine.Play(d)
	if errors.Is(err, engine.ErrGameOver) {
		sc.showMessage("game over, start a new one with new")
		return nil
	}
	if err != nil {
		return err
	}
	if !moved {
		sc.showMessage("nothing moves %s", d)
		return nil
	}
	sc.show()
	return nil
}

func (sc *ShellController) makeAgent(args []string) (agent.Agent, string, error) {
	name := sc.defaultAgent.String()
	if len(args) > 0 {
		name = args[0]
	}
	if name == remoteAgent {
		if sc.remote == "" {
			return nil, "", fmt.Errorf("no move service configured, set --remote")
		}
		return client.New(sc.remote, client.WithAgent(sc.defaultAgent.String())), name, nil
	}
	kind, err := agent.ParseKind(name)
	if err != nil {
		return nil, "", err
	}
	a, err := agent.New(kind, agent.WithSeed(sc.engine.Seed()+uint64(sc.engine.Moves())))
	return a, name, err
}

func (sc *ShellController) hint(args []string) error {
	a, name, err := sc.makeAgent(args)
	if err != nil {
		return err
	}
	b := sc.engine.State.Board
	if ea, ok := a.(*agent.ExpectimaxAgent); ok {
		d, scores := ea.NextMoveWithScores(b)
		for _, dir := range game.Directions {
			sc.showMessage("  %-6s %.1f", dir, scores[dir])
		}
		sc.showMessage("%s suggests %s", name, d)
		return nil
	}
	sc.showMessage("%s suggests %s", name, a.NextMove(b))
	return nil
}

func (sc *ShellController) auto(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: auto <agent> [moves]", errUsage)
	}
	a, name, err := sc.makeAgent(args[:1])
	if err != nil {
		return err
	}
	limit := -1
	if len(args) > 1 {
		limit, err = strconv.Atoi(args[1])
		if err != nil || limit < 0 {
			return fmt.Errorf("%w: auto <agent> [moves]", errUsage)
		}
	}

	sc.engine.Agent = a
	defer func() { sc.engine.Agent = nil }()
	played := 0
	for limit < 0 || played < limit {
		if _, err := sc.engine.Step(); err != nil {
			if errors.Is(err, engine.ErrGameOver) {
				break
			}
			return err
		}
		played++
	}
	sc.showMessage("%s made %d decisions", name, played)
	sc.show()
	return nil
}

func (sc *ShellController) load(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: load <board> [fours]", errUsage)
	}
	raw, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("invalid board %q: %w", args[0], err)
	}
	state := game.State{Board: game.Board(raw)}
	if len(args) == 2 {
		state.FoursSpawned, err = strconv.Atoi(args[1])
		if err != nil || state.FoursSpawned < 0 {
			return fmt.Errorf("%w: load <board> [fours]", errUsage)
		}
	}
	sc.engine.Load(state)
	sc.show()
	return nil
}

func (sc *ShellController) save() {
	state := sc.engine.State
	sc.showMessage("load 0x%016x %d", uint64(state.Board), state.FoursSpawned)
}

const helpText = `commands:
  new [seed]          start a new game
  left, right, up, down (l, r, u, d)
                      move the tiles
  hint [agent]        ask an agent for a move
  auto <agent> [n]    let an agent play n moves, or until the game is over
  show                print the board
  load <board> [fours]
                      continue from a saved board (decimal or 0x hex)
  save                print the load command for the current game
  help                this text
  exit                leave
agents: random, greedy, expectimax, improved, remote`
