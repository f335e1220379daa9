// Package servecmd implements the `quietline serve` command, exposing the
// live redaction-event dashboard.
package servecmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/monitor"
)

// Command implements `quietline serve`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the serve command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the live redaction-event dashboard",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	hub := monitor.NewHub(&monitor.HubConfig{
		BroadcastRedactions: true,
		BroadcastRunSummary: true,
		BroadcastConnections: true,
	}, c.ctx.Logger.Logger)
	go hub.Run()

	server := monitor.NewServer(hub, c.ctx.Logger.Logger)

	addr := fmt.Sprintf(":%d", c.ctx.Config.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  c.ctx.Config.Server.ReadTimeout,
		WriteTimeout: c.ctx.Config.Server.WriteTimeout,
		IdleTimeout:  c.ctx.Config.Server.IdleTimeout,
	}

	c.ctx.Logger.Info("dashboard listening", zap.Int("port", c.ctx.Config.Server.Port))
	return httpServer.ListenAndServe()
}
