package main

import (
	"context"
	"fmt"
	"io"
	"linkguard/internal/api/handler/v1handler"
	"linkguard/internal/config"
	"linkguard/internal/guard"
	"linkguard/pkg/domain"
	"text/tabwriter"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

// errBlocked makes the check command exit non-zero.
type errBlocked struct{ n, total int }

func (e errBlocked) Error() string { return fmt.Sprintf("%d of %d urls blocked", e.n, e.total) }

// runCheck evaluates urls and writes one decision per url to w. It returns
// errBlocked when any url is blocked.
func runCheck(ctx context.Context, w io.Writer, g guard.Guard, urls []string, asJSON bool) error {
	decisions := make([]domain.Decision, 0, len(urls))
	blocked := 0
	for _, u := range urls {
		d := g.Evaluate(ctx, u)
		if d.Blocked {
			blocked++
		}
		decisions = append(decisions, d)
	}

	if asJSON {
		var e jx.Encoder
		e.Arr(func(e *jx.Encoder) {
			for _, d := range decisions {
				v1handler.EncodeDecision(e, d)
			}
		})
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return fmt.Errorf("could not write decisions: %w", err)
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, d := range decisions {
			verdict := "ALLOW"
			if d.Blocked {
				verdict = "BLOCK"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", verdict, d.Rule, d.Candidate)
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("could not write decisions: %w", err)
		}
	}

	if blocked > 0 {
		return errBlocked{n: blocked, total: len(urls)}
	}

	return nil
}

func checkCommand(cfg *config.Config) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check URL...",
		Short: "Reports whether navigation to each URL would be blocked",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return runCheck(ctx, cmd.OutOrStdout(), getGuard(ctx, cfg, nil), args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print decisions as JSON")

	return cmd
}
