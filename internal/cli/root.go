// Package cli is the hcwatch command tree.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Elpulgo/hcwatch/internal/config"
	"github.com/Elpulgo/hcwatch/internal/logging"
	"github.com/Elpulgo/hcwatch/internal/version"
)

// BuildInfo carries the build-time version variables.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// TokenStore holds the API token. *config.KeyringStore satisfies it.
type TokenStore interface {
	GetToken() (string, error)
	TokenOrEmpty() (string, error)
	SetToken(token string) error
	DeleteToken() error
}

// Option configures the command tree.
type Option func(*runtime)

// WithTokenStore replaces the system keyring.
func WithTokenStore(store TokenStore) Option {
	return func(r *runtime) {
		r.tokens = store
	}
}

// WithReleaseURL points version --check at another releases endpoint.
func WithReleaseURL(url string) Option {
	return func(r *runtime) {
		r.releaseURL = url
	}
}

// runtime is the state shared by all commands of one invocation.
type runtime struct {
	info       BuildInfo
	tokens     TokenStore
	releaseURL string

	configPath string
	logFile    string
	logLevel   string
}

// NewRootCmd builds the hcwatch command tree.
func NewRootCmd(info BuildInfo, opts ...Option) *cobra.Command {
	r := &runtime{info: info}
	for _, opt := range opts {
		opt(r)
	}
	if r.tokens == nil {
		r.tokens = config.NewKeyringStore()
	}

	root := &cobra.Command{
		Use:   "hcwatch",
		Short: "A terminal dashboard for health check servers",
		Long: `hcwatch keeps one panel per configured server set in sync with a
health check server. Polling pauses while the terminal is unfocused or
when you press p, and resumes when it is focused again.

Quick start:
  1. hcwatch config init --host health.internal
  2. hcwatch auth              (only if the server requires a token)
  3. hcwatch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.runTUI,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&r.configPath, "config", "c", "", "path to config file (default ~/.config/hcwatch/config.yaml)")
	flags.StringVar(&r.logFile, "log-file", "", "path to log file (default ~/.config/hcwatch/hcwatch.log)")
	flags.StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		r.newAuthCmd(),
		r.newCheckCmd(),
		r.newConfigCmd(),
		r.newVersionCmd(),
	)

	return root
}

// loadConfig reads --config, or the default path when unset.
func (r *runtime) loadConfig() (*config.Config, error) {
	if r.configPath != "" {
		return config.LoadFrom(r.configPath)
	}
	return config.Load()
}

// resolveConfigPath returns --config or the default path.
func (r *runtime) resolveConfigPath() (string, error) {
	if r.configPath != "" {
		return r.configPath, nil
	}
	return config.GetPath()
}

// setupLogging opens the log file. Flags win over the config file.
func (r *runtime) setupLogging(cfg *config.Config) (*slog.Logger, func() error) {
	path := r.logFile
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		var err error
		if path, err = config.DefaultLogPath(); err != nil {
			return logging.Discard(), func() error { return nil }
		}
	}

	level := r.logLevel
	if level == "" {
		level = cfg.LogLevel
	}

	// The TUI owns the terminal; a broken log file must not stop it, and
	// Setup then returns a discarding logger.
	logger, closeFn, _ := logging.Setup(path, cfg.LogFormat, level)
	return logger, closeFn
}

// token returns the stored token, or "" when none is stored or the keyring
// is unavailable.
func (r *runtime) token(logger *slog.Logger) string {
	token, err := r.tokens.TokenOrEmpty()
	if err != nil {
		logger.Warn("keyring unavailable, sending requests without a token", "err", err)
		return ""
	}
	return token
}

func (r *runtime) newVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hcwatch %s\n", r.info.Version)
			fmt.Fprintf(out, "  commit: %s\n", r.info.Commit)
			fmt.Fprintf(out, "  built:  %s\n", r.info.Date)

			if !check {
				return nil
			}
			if version.IsDev(r.info.Version) {
				fmt.Fprintln(out, "Development build, skipping update check.")
				return nil
			}

			var opts []version.Option
			if r.releaseURL != "" {
				opts = append(opts, version.WithURL(r.releaseURL))
			}
			rel, err := version.NewChecker(r.info.Version, opts...).Check(cmd.Context())
			if err != nil {
				return err
			}
			if rel.UpdateAvailable {
				fmt.Fprintf(out, "Update available: %s -> %s\n  %s\n", rel.Current, rel.Latest, rel.URL)
			} else {
				fmt.Fprintln(out, "You are running the latest release.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check for a newer release")
	return cmd
}
