package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vventirozos/GhostAgent-v2/pkg/anim"
	"github.com/vventirozos/GhostAgent-v2/pkg/chat"
	"github.com/vventirozos/GhostAgent-v2/pkg/config"
	"github.com/vventirozos/GhostAgent-v2/pkg/events"
	"github.com/vventirozos/GhostAgent-v2/pkg/logger"
	"github.com/vventirozos/GhostAgent-v2/pkg/stream"
)

// StartApp runs the interface until the user quits
func StartApp() error {
	cfg := config.Get()

	eng, err := anim.New(cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to create animation engine: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := events.NewListener(cfg.Server.EventsURL)
	go listener.Run(ctx)

	client := stream.NewClient(cfg.Server.ChatURL, time.Duration(cfg.Chat.TimeoutSecs)*time.Second)
	manager := chat.NewManager(cfg.Model, cfg.Chat.SystemPrompt)

	log := logger.WithComponent("tui")
	log.Infof("starting interface: engine=%s chat=%s events=%s", cfg.Engine, cfg.Server.ChatURL, cfg.Server.EventsURL)

	m := NewModel(ctx, cfg, eng, manager, client, listener)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface exited: %w", err)
	}
	return nil
}
