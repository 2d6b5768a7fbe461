// Package detect orchestrates one analysis run: scan, collect, evaluate,
// report. Data flows one direction; no component mutates another's output.
package detect

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agentscope/agentscope/internal/config"
	"github.com/agentscope/agentscope/internal/observability"
	"github.com/agentscope/agentscope/internal/report"
	"github.com/agentscope/agentscope/internal/scan"
	"github.com/agentscope/agentscope/internal/signal"
	"github.com/agentscope/agentscope/internal/trigger"
)

// Result bundles one run's snapshot, decisions, and structured record.
type Result struct {
	Snapshot   signal.Snapshot
	Evaluation trigger.Evaluation
	Record     report.Record
}

// Analyzer wires the collectors and evaluator together for repeated runs.
// It holds no state across runs beyond configuration and the rule table.
type Analyzer struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	table   trigger.Table
}

// New builds an analyzer, loading any user rule file configured in rules.path.
func New(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	table := trigger.Builtin()
	extra, err := trigger.LoadRuleFile(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("load rule file: %w", err)
	}
	if len(extra) > 0 {
		table = table.Extend(extra)
		logger.Info("loaded user agent rules",
			zap.String("path", cfg.Rules.Path),
			zap.Int("rules", len(extra)))
	}
	return &Analyzer{cfg: cfg, logger: logger, metrics: metrics, table: table}, nil
}

// Table exposes the effective rule table for report rendering.
func (a *Analyzer) Table() trigger.Table {
	return a.table
}

// Analyze runs one full detection pass over root. The only fatal condition is
// an invalid root path; every other failure degrades its signal to a zero
// value and the run completes.
func (a *Analyzer) Analyze(ctx context.Context, root string) (Result, error) {
	start := time.Now()

	scanner, err := scan.New(root, a.cfg.Scan.Ignore...)
	if err != nil {
		a.metrics.RecordScan("invalid_root", time.Since(start), 0)
		return Result{}, err
	}

	entries, err := scanner.Entries()
	if err != nil {
		a.metrics.RecordScan("scan_failed", time.Since(start), 0)
		return Result{}, fmt.Errorf("walk %s: %w", root, err)
	}

	langs := signal.CollectLanguages(entries)
	patterns := signal.CollectPatterns(scanner, entries)
	structure := signal.CollectStructure(scanner.Root(), entries)
	frameworks := signal.CollectFrameworks(scan.ReadManifests(scanner.Root()))
	activity := signal.CollectActivity(ctx, scanner.Root(), time.Duration(a.cfg.Activity.GitTimeoutSeconds)*time.Second)
	markers := signal.CollectMarkers(scanner)
	indicators := signal.CollectIndicators(scanner, patterns, activity)

	snap := signal.Build(entries, markers, langs, frameworks, patterns, structure, activity, indicators)
	eval := trigger.Evaluate(snap, a.table)
	rec := report.NewRecord(snap, eval)

	a.metrics.RecordScan("ok", time.Since(start), snap.FileCount)
	for _, agent := range eval.EnabledOptional {
		a.metrics.RecordAgentEnabled(agent)
	}

	a.logger.Debug("analysis complete",
		zap.String("root", scanner.Root()),
		zap.Int("files", snap.FileCount),
		zap.Int("lines", snap.LineCount),
		zap.Int("contributors", snap.ContributorCount),
		zap.Int("enabled_optional", len(eval.EnabledOptional)),
		zap.Duration("elapsed", time.Since(start)))

	return Result{Snapshot: snap, Evaluation: eval, Record: rec}, nil
}
