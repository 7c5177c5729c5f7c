package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"twenty48/agent"
	"twenty48/communication"
	"twenty48/game"
)

const defaultTimeout = 30 * time.Second

// Client asks a move service for moves. As an agent.Agent it falls back to a
// local agent whenever the service cannot answer.
type Client struct {
	serverURL string
	agent     string
	http      *http.Client
	fallback  agent.Agent
}

type Option func(c *Client)

// WithAgent names the agent the service should use.
func WithAgent(name string) Option {
	return func(c *Client) {
		c.agent = name
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func WithFallback(fallback agent.Agent) Option {
	return func(c *Client) {
		if fallback != nil {
			c.fallback = fallback
		}
	}
}

func New(serverURL string, options ...Option) *Client {
	c := &Client{ // Default values
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		fallback:  agent.NewGreedy(1),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Client) Advise(ctx context.Context, req communication.MoveRequest) (communication.MoveResponse, error) {
	if req.Agent == "" {
		req.Agent = c.agent
	}
	body, err := json.Marshal(req)
	if err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/nextmove", bytes.NewReader(body))
	if err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to reach move service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp communication.ErrorResponse
		out, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(out, &errResp) == nil && errResp.Error != "" {
			return communication.MoveResponse{}, fmt.Errorf("move service returned status %d: %s", resp.StatusCode, errResp.Error)
		}
		return communication.MoveResponse{}, fmt.Errorf("move service returned status %d: %s", resp.StatusCode, out)
	}

	var moveResp communication.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&moveResp); err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return moveResp, nil
}

func (c *Client) NextMove(b game.Board) game.Direction {
	resp, err := c.Advise(context.Background(), communication.MoveRequest{Board: b})
	if err == nil {
		var d game.Direction
		d, err = game.ParseDirection(resp.Direction)
		if err == nil {
			return d
		}
	}
	log.Warn().Err(err).Msg("move service failed, using the local agent")
	return c.fallback.NextMove(b)
}
