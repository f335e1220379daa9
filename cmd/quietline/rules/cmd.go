// Package rulescmd implements the `quietline rules` command group for
// inspecting and validating rule documents.
package rulescmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/redact"
)

// Command implements `quietline rules`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the rules command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule documents",
	}
	c.cmd.AddCommand(c.listCmd(), c.validateCmd())
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every rule, active and inactive, with its description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.ctx.BuildRuleStatus()
			if err != nil {
				return fmt.Errorf("compose rules: %w", err)
			}

			type row struct {
				Name                   string `json:"name"`
				Description            string `json:"description,omitempty"`
				Active                 bool   `json:"active"`
				OptIn                  bool   `json:"opt_in"`
				ProgrammaticValidation bool   `json:"programmatic_validation"`
			}
			rows := make([]row, 0, len(statuses))
			for _, s := range statuses {
				rows = append(rows, row{
					Name:                   s.Rule.Name,
					Description:            s.Rule.Description,
					Active:                 s.Active,
					OptIn:                  s.Rule.OptIn,
					ProgrammaticValidation: s.Rule.ProgrammaticValidation,
				})
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
}

func (c *Command) validateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a user rule document without activating it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read rule document: %w", err)
			}
			rules, err := redact.LoadRules(doc, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d rules parsed successfully\n", len(rules))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Path to the rule document to validate")
	cmd.MarkFlagRequired("file")
	return cmd
}
