// Package headless runs a single chat turn without the TUI, printing
// fragments to stdout as they arrive. Useful for scripting and for
// checking the backend without a terminal UI.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vventirozos/GhostAgent-v2/pkg/chat"
	"github.com/vventirozos/GhostAgent-v2/pkg/config"
	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
	"github.com/vventirozos/GhostAgent-v2/pkg/stream"
)

// Streamer is the transport the runner consumes; satisfied by
// stream.Client.
type Streamer interface {
	Stream(ctx context.Context, req stream.Request) (<-chan stream.Event, error)
}

// Runner executes one prompt against the backend
type Runner struct {
	manager *chat.Manager
	client  Streamer
	out     io.Writer
}

// NewRunner builds a runner from the global configuration
func NewRunner(out io.Writer) *Runner {
	cfg := config.Get()
	return &Runner{
		manager: chat.NewManager(cfg.Model, cfg.Chat.SystemPrompt),
		client:  stream.NewClient(cfg.Server.ChatURL, time.Duration(cfg.Chat.TimeoutSecs)*time.Second),
		out:     out,
	}
}

// NewRunnerWithClient builds a runner with an injected transport
func NewRunnerWithClient(manager *chat.Manager, client Streamer, out io.Writer) *Runner {
	return &Runner{manager: manager, client: client, out: out}
}

// Run sends one prompt, streams the reply to the output writer, and
// returns the completed assistant message. Transport failures roll the
// turn back and surface as errors.
func (r *Runner) Run(ctx context.Context, prompt string) (chat.Message, error) {
	log := logger.WithComponent("headless")

	req := r.manager.BeginTurn(prompt)
	events, err := r.client.Stream(ctx, req)
	if err != nil {
		r.manager.FailTurn(err)
		return chat.Message{}, fmt.Errorf("chat request failed: %w", err)
	}

	for ev := range events {
		switch {
		case ev.Err != nil:
			r.manager.FailTurn(ev.Err)
			return chat.Message{}, fmt.Errorf("stream failed: %w", ev.Err)
		case ev.Done:
			msg := r.manager.CompleteTurn()
			fmt.Fprintln(r.out)
			log.Infof("turn complete: %d chars", len(msg.Content))
			return msg, nil
		default:
			r.manager.ApplyFragment(ev.Content)
			fmt.Fprint(r.out, ev.Content)
		}
	}

	// Channel closed without a terminal event; treat as completion
	msg := r.manager.CompleteTurn()
	fmt.Fprintln(r.out)
	return msg, nil
}
