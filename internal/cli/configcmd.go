package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Elpulgo/hcwatch/internal/config"
)

func (r *runtime) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(r.newConfigInitCmd(), r.newConfigPathCmd(), r.newConfigValidateCmd())
	return cmd
}

func (r *runtime) newConfigInitCmd() *cobra.Command {
	var (
		host  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := r.resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.WriteDefault(path, host, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "health check server host")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (r *runtime) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := r.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (r *runtime) newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Config is valid!")
			fmt.Fprintf(out, "  server:  %s:%d\n", cfg.Host, cfg.Port)
			fmt.Fprintf(out, "  theme:   %s\n", cfg.GetTheme())
			fmt.Fprintf(out, "  widgets: %d\n", len(cfg.Widgets))
			for _, pc := range cfg.PollerConfigs() {
				fmt.Fprintf(out, "    - %s (%s)\n", pc.Title, pc.ServerSet)
			}
			return nil
		},
	}
}
