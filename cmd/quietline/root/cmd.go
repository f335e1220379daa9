// Package rootcmd wires the root cobra.Command for the quietline CLI binary.
package rootcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	auditcmd "github.com/quietline/sanitize/cmd/quietline/audit"
	mcpcmd "github.com/quietline/sanitize/cmd/quietline/mcp"
	rulescmd "github.com/quietline/sanitize/cmd/quietline/rules"
	sanitizecmd "github.com/quietline/sanitize/cmd/quietline/sanitize"
	scancmd "github.com/quietline/sanitize/cmd/quietline/scan"
	servecmd "github.com/quietline/sanitize/cmd/quietline/serve"
	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/config"
	"github.com/quietline/sanitize/internal/logger"
)

// New creates and returns the root cobra.Command for the quietline CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "quietline",
		Short:         "Redact secrets and personal data from text",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initContext(ctx)
		},
	}

	root.PersistentFlags().StringVar(
		&ctx.ConfigPath, "config", "",
		"Path to configuration file",
	)

	root.AddCommand(
		sanitizecmd.New(ctx).Cmd(),
		scancmd.New(ctx).Cmd(),
		rulescmd.New(ctx).Cmd(),
		servecmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		auditcmd.New(ctx).Cmd(),
	)

	return root
}

func initContext(ctx *shared.Context) error {
	cfg, err := config.Load(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	ctx.Config = cfg

	loggerConfig := logger.Config{
		Level:         cfg.Logging.Level,
		Format:        cfg.Logging.Format,
		AllowDebugPII: cfg.Logging.AllowDebugPII,
	}
	if cfg.Logging.File.Enabled {
		loggerConfig.File = &logger.FileConfig{
			Enabled:  cfg.Logging.File.Enabled,
			Path:     cfg.Logging.File.Path,
			MaxSize:  cfg.Logging.File.MaxSize,
			MaxAge:   cfg.Logging.File.MaxAge,
			Compress: cfg.Logging.File.Compress,
		}
	}

	log, err := logger.New(loggerConfig)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	ctx.Logger = log

	return nil
}
