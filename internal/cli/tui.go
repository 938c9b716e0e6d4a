package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Elpulgo/hcwatch/internal/app"
	"github.com/Elpulgo/hcwatch/internal/healthcheck"
)

func (r *runtime) runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := r.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog := r.setupLogging(cfg)
	defer closeLog()

	client, err := healthcheck.NewClient(cfg.Host, cfg.Port, r.token(logger))
	if err != nil {
		return fmt.Errorf("failed to create health check client: %w", err)
	}

	logger.Info("starting dashboard",
		"version", r.info.Version,
		"server", healthcheck.BaseURL(cfg.Host, cfg.Port),
		"widgets", len(cfg.Widgets),
	)

	model := app.NewModel(cfg, client, app.WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI application error: %w", err)
	}

	logger.Info("dashboard stopped")
	return nil
}
