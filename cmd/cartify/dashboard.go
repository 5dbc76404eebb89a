package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Nikhila-inturi/cartify/internal/config"
	"github.com/Nikhila-inturi/cartify/internal/store"
	"github.com/Nikhila-inturi/cartify/internal/support/logging"
	"github.com/Nikhila-inturi/cartify/internal/tui"
)

func init() {
	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive order dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Stderr only: the TUI owns stdout.
			log := logging.New(logging.Options{
				Level:     cfg.Log.SlogLevel(),
				Format:    cfg.Log.Format,
				AddSource: cfg.Log.AddSource,
			})

			gw := newGateway(cfg)
			st := store.New(gw)

			model := tui.NewModel(st, tui.Options{
				PageSize:        cfg.API.PageSize,
				RefreshInterval: cfg.Dashboard.RefreshInterval,
			})

			log.Info("starting dashboard", "base_url", cfg.API.BaseURL)
			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return nil
		},
	}
	rootCmd.AddCommand(dashboardCmd)
}
