package main

import (
	"context"
	"fmt"
	"io"
	"linkguard/internal/api/handler/v1handler"
	"linkguard/internal/audit"
	"linkguard/internal/config"
	"linkguard/internal/guard"
	"os"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

// runAudit audits the document read from r and writes the JSON report to w.
func runAudit(ctx context.Context, w io.Writer, r io.Reader, g guard.Guard) error {
	report, err := audit.Audit(ctx, r, g)
	if err != nil {
		return err
	}

	var e jx.Encoder
	v1handler.EncodeReport(&e, report)
	if _, err := fmt.Fprintln(w, e.String()); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}

	if report.Blocked > 0 {
		return errBlocked{n: report.Blocked, total: report.Anchors}
	}

	return nil
}

func auditCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [FILE]",
		Short: "Reports the anchors of an HTML document that would be blocked",
		Long:  "Reads the document from FILE, or from standard input when FILE is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("could not open document: %w", err)
				}
				defer f.Close()
				in = f
			}

			return runAudit(ctx, cmd.OutOrStdout(), in, getGuard(ctx, cfg, nil))
		},
	}

	return cmd
}
