// Package scancmd implements the `quietline scan` command: a fail-over
// check suited to CI, exiting non-zero when too many matches are found.
package scancmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quietline/sanitize/cmd/quietline/shared"
	"github.com/quietline/sanitize/internal/cache"
	"github.com/quietline/sanitize/internal/entropy"
	"github.com/quietline/sanitize/internal/fingerprint"
	"github.com/quietline/sanitize/internal/redact"
)

// exitThresholdExceeded is returned by cobra's Execute path via os.Exit in
// main, not as a Go error — RunE signals it through the command's
// annotations so main can translate it to a process exit code.
const exitThresholdExceeded = 1

// Command implements `quietline scan`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	inputPath     string
	stream        bool
	threshold     int
	engineName    string
	fingerprintDB string
	rateLimit     float64
	rateBurst     int
	auditLogPath  string
	monitorURL    string
}

// New creates the scan command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan text for sensitive matches and exit non-zero over a threshold",
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVarP(&c.inputPath, "in", "i", "", "Input file path (default: stdin)")
	f.BoolVar(&c.stream, "stream", false, "Process input line-by-line instead of as one block")
	f.IntVar(&c.threshold, "threshold", 0, "Exit non-zero when the total retained match count exceeds this value")
	f.StringVar(&c.engineName, "engine", "regex", "Detection engine to use: regex or entropy")
	f.StringVar(&c.fingerprintDB, "fingerprint-db", "", "Path to a fingerprint store backing the entropy engine's cross-run lookup (requires --engine entropy)")
	f.Float64Var(&c.rateLimit, "rate-limit", 0, "Lines per second allowed through in --stream mode (0 disables throttling)")
	f.IntVar(&c.rateBurst, "rate-burst", 1, "Burst size for --rate-limit")
	f.StringVar(&c.auditLogPath, "audit-log", "", "Append redaction events to this JSON-Lines audit log")
	f.StringVar(&c.monitorURL, "monitor-url", "", "Base URL of a running `quietline serve` dashboard to stream events to")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	shared.RecordRun(cmd.ErrOrStderr())

	ruleset, err := c.ctx.BuildRuleset()
	if err != nil {
		return fmt.Errorf("build ruleset: %w", err)
	}

	engine, closeEngine, err := c.buildEngine()
	if err != nil {
		return err
	}
	defer closeEngine()

	if c.ctx.Config.Cache.Enabled {
		rc, err := c.openCache()
		if err != nil {
			return fmt.Errorf("open result cache: %w", err)
		}
		defer rc.Close()
		engine = &cachingEngine{
			engine:      engine,
			cache:       rc,
			fingerprint: ruleset.Fingerprint(),
			prefix:      c.ctx.Config.Cache.Address,
		}
	}

	telemetry, err := shared.NewTelemetry("scan", c.auditLogPath, c.monitorURL, c.ctx.Logger)
	if err != nil {
		return fmt.Errorf("open telemetry: %w", err)
	}
	defer telemetry.Close()

	in, err := c.openInput(cmd)
	if err != nil {
		return err
	}
	if closer, ok := in.(io.Closer); ok {
		defer closer.Close()
	}

	var limiter *redact.LineLimiter
	if c.stream && c.rateLimit > 0 {
		limiter = redact.NewLineLimiter(c.rateLimit, c.rateBurst)
	}

	start := time.Now()
	var matchCount int
	var summary redact.RedactionSummary

	if c.stream {
		matchCount, summary, err = c.scanStreaming(cmd.Context(), in, engine, ruleset, limiter, telemetry)
	} else {
		matchCount, summary, err = c.scanWhole(in, engine, ruleset, telemetry)
	}
	if err != nil {
		return err
	}
	telemetry.FinishRun(len(ruleset.Rules), matchCount, time.Since(start))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summaryToJSON(matchCount, summary)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	if c.threshold > 0 && matchCount > c.threshold {
		os.Exit(exitThresholdExceeded)
	}
	return nil
}

// buildEngine selects regex or entropy detection per --engine, wiring a
// fingerprint store into the entropy engine when --fingerprint-db is set.
// The returned close func releases the store, if one was opened, and is
// always safe to call.
func (c *Command) buildEngine() (redact.Engine, func(), error) {
	switch c.engineName {
	case "", "regex":
		return redact.NewRegexEngine(nil), func() {}, nil
	case "entropy":
		e := entropy.New(0, 0, "")
		if c.fingerprintDB != "" {
			store, err := fingerprint.Open(c.fingerprintDB)
			if err != nil {
				return nil, func() {}, fmt.Errorf("open fingerprint store: %w", err)
			}
			e.Store = store
			return e, func() { _ = store.Close() }, nil
		}
		return e, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown engine %q (want regex or entropy)", c.engineName)
	}
}

func (c *Command) openCache() (*cache.ResultCache, error) {
	cfg := &cache.Config{
		RedisURL:       fmt.Sprintf("redis://%s/%d", c.ctx.Config.Cache.Address, c.ctx.Config.Cache.Database),
		MaxConnections: 10,
		MinIdleConns:   1,
		DefaultTTL:     c.ctx.Config.Cache.TTL,
		KeyPrefix:      "quietline",
	}
	return cache.NewResultCache(cfg, c.ctx.Logger.Logger)
}

func (c *Command) openInput(cmd *cobra.Command) (io.Reader, error) {
	if c.inputPath == "" {
		return cmd.InOrStdin(), nil
	}
	return os.Open(c.inputPath)
}

func (c *Command) scanWhole(r io.Reader, engine redact.Engine, ruleset *redact.CompiledRuleSet, telemetry *shared.Telemetry) (int, redact.RedactionSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, nil, fmt.Errorf("read input: %w", err)
	}
	_, matches, err := engine.Sanitize(data, ruleset)
	if err != nil {
		return 0, nil, fmt.Errorf("sanitize: %w", err)
	}
	for _, m := range matches {
		telemetry.RecordMatch(m)
	}
	return len(matches), redact.BuildSummary(matches, c.ctx.Config.Sampling.SampleCap), nil
}

func (c *Command) scanStreaming(ctx context.Context, r io.Reader, engine redact.Engine, ruleset *redact.CompiledRuleSet, limiter *redact.LineLimiter, telemetry *shared.Telemetry) (int, redact.RedactionSummary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	total := 0
	var summaries []redact.RedactionSummary

	for scanner.Scan() {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return 0, nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		_, matches, err := engine.Sanitize(scanner.Bytes(), ruleset)
		if err != nil {
			return 0, nil, fmt.Errorf("sanitize line: %w", err)
		}
		for _, m := range matches {
			telemetry.RecordMatch(m)
		}
		total += len(matches)
		summaries = append(summaries, redact.BuildSummary(matches, c.ctx.Config.Sampling.SampleCap))
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("scan input: %w", err)
	}

	return total, redact.MergeSummaries(c.ctx.Config.Sampling.SampleCap, summaries...), nil
}

func summaryToJSON(matchCount int, sum redact.RedactionSummary) map[string]any {
	rules := make(map[string]any, len(sum))
	for _, name := range sum.SortedRuleNames() {
		sample := sum[name]
		rules[name] = map[string]any{
			"count":             sample.Count,
			"original_samples":  sample.OriginalSamples,
			"sanitized_samples": sample.SanitizedSamples,
		}
	}
	return map[string]any{
		"match_count": matchCount,
		"rules":       rules,
	}
}

// cachingEngine wraps another Engine with Redis-backed memoization, keyed
// by content hash plus the active rule set's fingerprint (see
// CompiledRuleSet.Fingerprint), so a config reload that changes the active
// rules invalidates stale entries implicitly.
type cachingEngine struct {
	engine      redact.Engine
	cache       *cache.ResultCache
	fingerprint string
	prefix      string
}

func (e *cachingEngine) Sanitize(input []byte, ruleset *redact.CompiledRuleSet) (string, []redact.RedactionMatch, error) {
	ctx := context.Background()
	key := cache.Key(e.prefix, input, e.fingerprint)

	if cached, ok := e.cache.Get(ctx, key); ok {
		matches := make([]redact.RedactionMatch, len(cached.Matches))
		for i, m := range cached.Matches {
			matches[i] = redact.RedactionMatch{
				RuleName:  m.RuleName,
				Sanitized: m.Sanitized,
				Start:     m.Start,
				End:       m.End,
			}
		}
		return cached.Output, matches, nil
	}

	output, matches, err := e.engine.Sanitize(input, ruleset)
	if err != nil {
		return output, matches, err
	}

	cached := &cache.CachedResult{Output: output, Matches: make([]cache.CachedMatch, len(matches))}
	for i, m := range matches {
		cached.Matches[i] = cache.CachedMatch{RuleName: m.RuleName, Start: m.Start, End: m.End, Sanitized: m.Sanitized}
	}
	_ = e.cache.Put(ctx, key, cached)

	return output, matches, nil
}

var _ redact.Engine = (*cachingEngine)(nil)
