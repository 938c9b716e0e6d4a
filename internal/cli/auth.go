package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Elpulgo/hcwatch/internal/config"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
	"github.com/Elpulgo/hcwatch/internal/ui/tokeninput"
)

func (r *runtime) newAuthCmd() *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Set, update or remove the API token",
		Long: `Store the health check server API token in the system keyring.
Requests carry it as a bearer token. Servers without authentication need no
token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remove {
				return r.removeToken(cmd)
			}
			return r.promptToken(cmd)
		},
	}

	cmd.Flags().BoolVar(&remove, "delete", false, "remove the stored token")
	return cmd
}

func (r *runtime) removeToken(cmd *cobra.Command) error {
	if err := r.tokens.DeleteToken(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "API token removed from system keyring.")
	return nil
}

func (r *runtime) promptToken(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	host := "the health check server"
	cfg, err := r.loadConfig()
	if err == nil {
		host = cfg.Host
	}

	theme := config.DefaultTheme
	if cfg != nil {
		theme = cfg.GetTheme()
	}

	_, err = r.tokens.GetToken()
	switch {
	case err == nil:
		fmt.Fprintln(out, "This will replace the API token stored in the system keyring.")
	case errors.Is(err, config.ErrNotFound):
		fmt.Fprintln(out, "This will store an API token in the system keyring.")
	default:
		return err
	}
	fmt.Fprintln(out)

	model := tokeninput.NewModel(styles.NewStyles(styles.GetThemeByNameWithFallback(theme)), host)
	final, err := tea.NewProgram(model, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(out)).Run()
	if err != nil {
		return fmt.Errorf("failed to run token input: %w", err)
	}

	m, ok := final.(tokeninput.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	if !m.Submitted() {
		return errors.New("token input cancelled")
	}

	if err := r.tokens.SetToken(m.Token()); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nAPI token saved to system keyring.")
	return nil
}
