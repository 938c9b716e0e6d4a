package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Elpulgo/hcwatch/internal/config"
	"github.com/Elpulgo/hcwatch/internal/healthcheck"
	"github.com/Elpulgo/hcwatch/internal/polling"
	"github.com/Elpulgo/hcwatch/internal/ui/styles"
)

// maxConcurrentChecks bounds the widgets fetched at once.
const maxConcurrentChecks = 4

// checkResult is the outcome of one widget.
type checkResult struct {
	widget config.Widget
	groups []healthcheck.ServerGroup
	err    error
}

func (r *runtime) newCheckCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every widget once and print the statuses",
		Long: `Fetch the topology and current status of every configured widget once,
print them, and exit. The exit code is non-zero when a widget cannot be
reached or a server is down, which makes check usable from scripts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runCheck(cmd, timeout)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	return cmd
}

func (r *runtime) runCheck(cmd *cobra.Command, timeout time.Duration) error {
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

	results := checkAll(cmd.Context(), client, cfg.Widgets, timeout)

	s := styles.NewStyles(styles.GetThemeByNameWithFallback(cfg.GetTheme()))
	unreachable, down := printResults(cmd.OutOrStdout(), s, results)

	switch {
	case unreachable > 0:
		return fmt.Errorf("%d of %d widget(s) unreachable", unreachable, len(results))
	case down > 0:
		return fmt.Errorf("%d server(s) down", down)
	}
	return nil
}

// checkAll fetches every widget concurrently. A failing widget does not
// cancel the others; results keep widget order.
func checkAll(ctx context.Context, fetcher polling.Fetcher, widgets []config.Widget, timeout time.Duration) []checkResult {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]checkResult, len(widgets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)

	for i, w := range widgets {
		g.Go(func() error {
			reqCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results[i] = checkWidget(reqCtx, fetcher, w)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func checkWidget(ctx context.Context, fetcher polling.Fetcher, w config.Widget) checkResult {
	res := checkResult{widget: w}

	groups, err := fetcher.FetchTopology(ctx, w.ServerSet)
	if err != nil {
		res.err = fmt.Errorf("topology: %w", err)
		return res
	}

	status, err := fetcher.RefreshStatus(ctx, w.ServerSet)
	if err != nil {
		res.err = fmt.Errorf("status: %w", err)
		res.groups = groups
		return res
	}

	res.groups = healthcheck.MergeStatuses(groups, status.Groups)
	return res
}

// printResults writes one block per widget and returns the number of
// unreachable widgets and down servers.
func printResults(out io.Writer, s *styles.Styles, results []checkResult) (unreachable, down int) {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}

		title := res.widget.Title
		if title == "" {
			title = res.widget.ServerSet
		}
		fmt.Fprintln(out, s.Title.Render(title))

		if res.err != nil {
			unreachable++
			fmt.Fprintln(out, "  "+s.Error.Render("✗ "+polling.Describe(res.err, res.err.Error())))
			continue
		}

		for _, g := range res.groups {
			fmt.Fprintln(out, "  "+s.GroupHeader.Render(g.Name))
			for _, srv := range g.Servers {
				status := srv.Status.Normalize()
				if status == healthcheck.StatusDown {
					down++
				}
				line := fmt.Sprintf("    %s %s %s",
					s.ForStatus(status).Render(styles.StatusSymbol(status)),
					srv.Name,
					s.ForStatus(status).Render(string(status)),
				)
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
		}
	}
	return unreachable, down
}
