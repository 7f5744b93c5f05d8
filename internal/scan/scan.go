// Package scan walks a source tree and runs the gate over every
// recognizable file, producing a Run document suitable for storage,
// reporting and diffing.
package scan

import (
	"context"
	"fmt"
	"hash/crc32"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/codewithboateng/codegate/internal/gate"
	"github.com/codewithboateng/codegate/internal/lang"
	"github.com/codewithboateng/codegate/internal/rules"
)

// Options tunes a batch scan.
type Options struct {
	SkipExtensions    []string // lowercase, dot included; nil means lang.DefaultSkipExtensions()
	SeverityThreshold gate.Severity
	Workers           int   // <=0 means GOMAXPROCS capped at 8
	MaxFileBytes      int64 // files larger than this are skipped; <=0 means 1 MiB
}

const defaultMaxFileBytes = 1 << 20

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Scanner runs the registry over directory trees.
type Scanner struct {
	reg *rules.Registry
	log *slog.Logger
	opt Options
}

func New(reg *rules.Registry, log *slog.Logger, opt Options) *Scanner {
	if opt.Workers <= 0 {
		opt.Workers = runtime.GOMAXPROCS(0)
		if opt.Workers > 8 {
			opt.Workers = 8
		}
	}
	if opt.MaxFileBytes <= 0 {
		opt.MaxFileBytes = defaultMaxFileBytes
	}
	if opt.SkipExtensions == nil {
		opt.SkipExtensions = lang.DefaultSkipExtensions()
	}
	if opt.SeverityThreshold == 0 {
		opt.SeverityThreshold = gate.SeverityInform
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{reg: reg, log: log, opt: opt}
}

type fileResult struct {
	summary  gate.FileSummary
	findings []gate.Finding
	partial  bool
}

// Scan walks each source root, evaluates every candidate file and
// assembles a Run. File order in the result is deterministic regardless
// of worker interleaving.
func (s *Scanner) Scan(ctx context.Context, sources []string) (*gate.Run, error) {
	started := time.Now().UTC()
	paths, err := s.collect(sources)
	if err != nil {
		return nil, err
	}

	jobs := make(chan string)
	results := make([]fileResult, 0, len(paths))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < s.opt.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				res := s.scanFile(ctx, path)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].summary.Path < results[j].summary.Path
	})

	run := &gate.Run{
		ID:          newRunID(started),
		StartedAt:   started,
		Source:      strings.Join(sources, ","),
		GateVersion: gate.Version,
		Context: gate.Context{
			SeverityThreshold: s.opt.SeverityThreshold.String(),
		},
	}
	for _, res := range results {
		run.Files = append(run.Files, res.summary)
		for _, f := range res.findings {
			f.ID = findingID(f)
			run.Findings = append(run.Findings, f)
		}
	}
	gate.SortFindings(run.Findings)

	s.log.Info("scan complete",
		"run_id", run.ID,
		"files", len(run.Files),
		"findings", len(run.Findings),
		"elapsed", time.Since(started).Round(time.Millisecond).String(),
	)
	return run, nil
}

func (s *Scanner) collect(sources []string) ([]string, error) {
	var paths []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src, err)
		}
		if !info.IsDir() {
			paths = append(paths, src)
			continue
		}
		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", src, err)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *Scanner) scanFile(ctx context.Context, path string) fileResult {
	language := lang.Classify(path)
	summary := gate.FileSummary{Path: path, Language: language}

	if lang.ShouldSkip(path, s.opt.SkipExtensions) {
		summary.Skipped = true
		return fileResult{summary: summary}
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() > s.opt.MaxFileBytes {
		if err == nil {
			s.log.Debug("file too large, skipping", "path", path, "bytes", info.Size())
		}
		summary.Skipped = true
		return fileResult{summary: summary}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("read failed, skipping", "path", path, "err", err)
		summary.Skipped = true
		return fileResult{summary: summary}
	}
	text := string(data)
	summary.Lines = countLines(text)

	findings, diags := s.reg.Evaluate(ctx, language, text)
	// The threshold is applied here so the summary outcome and the run
	// document describe the same finding set.
	kept := findings[:0]
	for _, f := range findings {
		if f.Severity < s.opt.SeverityThreshold {
			continue
		}
		f.Path = path
		kept = append(kept, f)
	}
	if len(diags.SkippedRules) > 0 {
		s.log.Warn("rules skipped during evaluation", "path", path, "rules", diags.SkippedRules)
	}
	v := gate.Resolve(kept, diags.Partial)
	summary.Outcome = v.Outcome
	return fileResult{summary: summary, findings: kept, partial: diags.Partial}
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}

func newRunID(t time.Time) string {
	return "run-" + t.Format("20060102-150405")
}

// findingID derives a stable id from the finding's logical identity, so
// reruns over unchanged input produce identical documents.
func findingID(f gate.Finding) string {
	data := fmt.Sprintf("%s|%s|%d|%s", f.RuleID, f.Path, f.Line, f.Snippet)
	sum := crc32.ChecksumIEEE([]byte(data))
	return fmt.Sprintf("%s-%08x", f.RuleID, sum)
}
