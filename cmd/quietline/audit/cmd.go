// Package auditcmd implements the `quietline audit` command group for
// working with the append-only redaction audit log.
package auditcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/audit"
)

// Command implements `quietline audit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the audit command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "audit",
		Short: "Inspect and export the redaction audit log",
	}
	c.cmd.AddCommand(c.exportCmd())
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) exportCmd() *cobra.Command {
	var source, dest string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert a JSON-Lines audit log to Parquet for analysis",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if source == "" {
				source = c.ctx.Config.Audit.LogPath
			}
			if dest == "" {
				dest = c.ctx.Config.Audit.ExportPath
			}
			if source == "" || dest == "" {
				return fmt.Errorf("audit export: both --source and --dest are required (or configure audit.log_path/audit.export_path)")
			}

			count, err := audit.ExportParquet(source, dest)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d entries to %s\n", count, dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Path to the JSON-Lines audit log (default: audit.log_path from config)")
	cmd.Flags().StringVar(&dest, "dest", "", "Path to write the Parquet output (default: audit.export_path from config)")
	return cmd
}
