// Package sanitizecmd implements the `quietline sanitize` command.
package sanitizecmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/redact"
)

// Command implements `quietline sanitize`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	inputPath  string
	outputPath string
	summary    bool

	auditLogPath string
	monitorURL   string
}

// New creates the sanitize command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "sanitize",
		Short: "Redact a single block of text (file or stdin)",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.inputPath, "in", "i", "", "Input file path (default: stdin)")
	f.StringVarP(&c.outputPath, "out", "o", "", "Output file path (default: stdout)")
	f.BoolVar(&c.summary, "summary", false, "Print a JSON redaction summary to stderr")
	f.StringVar(&c.auditLogPath, "audit-log", "", "Append redaction events to this JSON-Lines audit log")
	f.StringVar(&c.monitorURL, "monitor-url", "", "Base URL of a running `quietline serve` dashboard to stream events to")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	shared.RecordRun(cmd.ErrOrStderr())

	input, err := c.readInput(cmd)
	if err != nil {
		return err
	}

	ruleset, err := c.ctx.BuildRuleset()
	if err != nil {
		return fmt.Errorf("build ruleset: %w", err)
	}

	telemetry, err := shared.NewTelemetry("sanitize", c.auditLogPath, c.monitorURL, c.ctx.Logger)
	if err != nil {
		return fmt.Errorf("open telemetry: %w", err)
	}
	defer telemetry.Close()

	start := time.Now()
	engine := redact.NewRegexEngine(nil)
	output, matches, err := engine.Sanitize(input, ruleset)
	if err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}
	for _, m := range matches {
		telemetry.RecordMatch(m)
	}
	telemetry.FinishRun(len(ruleset.Rules), len(matches), time.Since(start))

	if err := c.writeOutput(cmd, output); err != nil {
		return err
	}

	if c.summary {
		sum := redact.BuildSummary(matches, c.ctx.Config.Sampling.SampleCap)
		enc := json.NewEncoder(cmd.ErrOrStderr())
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaryToJSON(sum)); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
	}

	return nil
}

func (c *Command) readInput(cmd *cobra.Command) ([]byte, error) {
	if c.inputPath == "" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(c.inputPath)
}

func (c *Command) writeOutput(cmd *cobra.Command, output string) error {
	if c.outputPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	return os.WriteFile(c.outputPath, []byte(output), 0o644)
}

func summaryToJSON(sum redact.RedactionSummary) map[string]any {
	out := make(map[string]any, len(sum))
	for _, name := range sum.SortedRuleNames() {
		sample := sum[name]
		out[name] = map[string]any{
			"count":             sample.Count,
			"original_samples":  sample.OriginalSamples,
			"sanitized_samples": sample.SanitizedSamples,
		}
	}
	return out
}
