package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"twenty48/agent"
	"twenty48/meta"
)

const envPrefix = "T48"

var (
	ErrUnknownMode = errors.New("unknown mode")
	Modes          = []string{"bench", "shell", "serve"}
)

type Config struct {
	Mode      string
	Agents    []agent.Kind
	Games     int
	Seed      uint64
	MaxMoves  int
	Metrics   bool
	OutputDir string
	Name      string
	Addr      string
	Remote    string // move service used by the shell's remote agent
	LogLevel  string
	Pretty    bool
}

// Load reads flags, then T48_* environment variables, then the optional config
// file. The first positional argument is the mode.
func (c *Config) Load(args []string) error {
	fs := pflag.NewFlagSet("twenty48", pflag.ContinueOnError)
	fs.StringSlice("agents", []string{meta.Agent}, "agents to play: random, greedy, expectimax, improved")
	fs.Int("games", meta.NumGames, "benchmark games per agent")
	fs.Uint64("seed", meta.Seed, "seed of the first game")
	fs.Int("max-moves", meta.MaxMoves, "agent decisions before a game is abandoned")
	fs.Bool("metrics", false, "collect search metrics for every move")
	fs.String("output-dir", meta.OutputDir, "directory for benchmark results, empty for none")
	fs.String("name", "benchmark", "benchmark name")
	fs.String("addr", meta.Addr, "listen address of the move service")
	fs.String("remote", "", "URL of a move service for the shell's remote agent")
	fs.String("log-level", meta.LogLevel, "trace, debug, info, warn or error")
	fs.Bool("pretty", true, "human readable logs")
	fs.String("config", "", "config file (yaml, toml or json)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	c.Mode = "bench"
	if fs.NArg() > 0 {
		c.Mode = fs.Arg(0)
	}
	if !slices.Contains(Modes, c.Mode) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}

	kinds, err := agent.ParseKinds(splitList(v.GetStringSlice("agents")))
	if err != nil {
		return err
	}
	if len(kinds) == 0 {
		return fmt.Errorf("%w: no agents given", agent.ErrUnknownKind)
	}
	c.Agents = kinds
	c.Games = v.GetInt("games")
	c.Seed = v.GetUint64("seed")
	c.MaxMoves = v.GetInt("max-moves")
	c.Metrics = v.GetBool("metrics")
	c.OutputDir = v.GetString("output-dir")
	c.Name = v.GetString("name")
	c.Addr = v.GetString("addr")
	c.Remote = v.GetString("remote")
	c.LogLevel = v.GetString("log-level")
	c.Pretty = v.GetBool("pretty")
	return nil
}

// splitList accepts both repeated values and comma separated ones, as
// environment variables only carry a single string.
func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
