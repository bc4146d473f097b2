// Command taskbox runs the terminal task manager.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tbui/taskbox/internal/app"
	"github.com/tbui/taskbox/internal/model"
	"github.com/tbui/taskbox/internal/store"
	"github.com/tbui/taskbox/internal/tasks"
	"github.com/tbui/taskbox/internal/users"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskbox: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	kv, err := store.NewSQLiteKV(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	adapter := store.NewAdapter(kv)

	registry, err := users.NewRegistry(ctx, adapter)
	if err != nil {
		return err
	}
	current, err := registry.EnsureDefault(ctx)
	if err != nil {
		return err
	}

	repo, err := tasks.NewRepository(ctx, adapter, current.ID)
	if err != nil {
		return err
	}

	themeName, err := adapter.Theme(ctx)
	if err != nil {
		return err
	}
	if themeName == "" {
		themeName = cfg.Display.Theme
	}

	p := tea.NewProgram(
		app.New(adapter, registry, repo, themeName),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}
