// Package mcpcmd implements the `quietline mcp` command.
package mcpcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/mcpserver"
	"github.com/quietline/sanitize/internal/redact"
)

const version = "0.1.0"

// Command implements `quietline mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the quietline MCP server (stdio transport)",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	ruleset, err := c.ctx.BuildRuleset()
	if err != nil {
		return fmt.Errorf("build ruleset: %w", err)
	}

	engine := redact.NewRegexEngine(nil)
	return mcpserver.Serve(cmd.Context(), engine, ruleset, version)
}
