package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithboateng/codegate/internal/api"
	"github.com/codewithboateng/codegate/internal/gate"
	"github.com/codewithboateng/codegate/internal/hook"
	"github.com/codewithboateng/codegate/internal/lang"
	"github.com/codewithboateng/codegate/internal/reporting"
	"github.com/codewithboateng/codegate/internal/rules"
	"github.com/codewithboateng/codegate/internal/rulesdsl"
	"github.com/codewithboateng/codegate/internal/scan"
	"github.com/codewithboateng/codegate/internal/security"
	"github.com/codewithboateng/codegate/internal/shared"
	"github.com/codewithboateng/codegate/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	case "scan":
		scanCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "rules":
		rulesCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "user":
		userCmd(os.Args[2:])
	case "version":
		fmt.Println("codegate", gate.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `codegate – pre-write content validation gate

Usage:
  codegate check [--file <path>] [--format text|json] [--timeout-ms 5000] [--db ./codegate.db] [--config ./configs/codegate.yaml]
  codegate scan  --path <dir> [--out <reports-dir>] [--db ./codegate.db] [--config ./configs/codegate.yaml]
  codegate diff  --base <run-id> --head <run-id> [--out <reports-dir>] [--db ./codegate.db]
  codegate rules [--config ./configs/codegate.yaml]
  codegate serve [--addr :8780] [--db ./codegate.db] [--config ./configs/codegate.yaml]
  codegate user add --username <name> --password <pw> [--role viewer|admin] [--db ./codegate.db]
  codegate version

check reads a hook payload (JSON) on stdin unless --file names a file to
validate directly. Exit codes: 0 proceed, 1 advisory, 2 deny.
`)
}

// buildRegistry assembles built-ins plus any configured rule packs.
// A malformed pack is a fatal configuration error.
func buildRegistry(cfg shared.Config) *rules.Registry {
	reg := rules.NewDefault()
	if len(cfg.Gate.RulePacks) > 0 {
		if _, err := rulesdsl.LoadPacks(cfg.Gate.RulePacks, reg); err != nil {
			slog.Error("rule pack load error", "err", err)
			os.Exit(1)
		}
	}
	reg.Disable(cfg.Gate.DisabledRules)
	return reg
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	filePath := fs.String("file", "", "Validate this file directly instead of reading a hook payload")
	format := fs.String("format", "text", "Report format: text or json")
	dbPath := fs.String("db", "", "SQLite database path for decision logging (optional)")
	timeoutMS := fs.Int("timeout-ms", 0, "Per-evaluation budget in milliseconds")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
	if *timeoutMS <= 0 {
		*timeoutMS = cfg.Gate.TimeoutMS
	}

	var path, text string
	if *filePath != "" {
		b, err := os.ReadFile(*filePath)
		if err != nil {
			// Fail closed: an unreadable candidate is never silently approved.
			slog.Error("read candidate", "path", *filePath, "err", err)
			os.Exit(1)
		}
		path, text = *filePath, string(b)
	} else {
		payload, err := hook.Decode(os.Stdin)
		if err != nil {
			slog.Error("bad hook payload", "err", err)
			os.Exit(1)
		}
		var ok bool
		path, text, ok = payload.Candidate()
		if !ok {
			// Tools other than Write/Edit carry nothing to validate.
			os.Exit(0)
		}
	}

	if lang.ShouldSkip(path, cfg.Gate.SkipExtensions) {
		slog.Debug("skipped by extension", "path", path)
		os.Exit(0)
	}

	reg := buildRegistry(cfg)
	language := lang.Classify(path)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutMS)*time.Millisecond)
	defer cancel()
	findings, diags := reg.Evaluate(ctx, language, text)
	for i := range findings {
		findings[i].Path = path
		findings[i].Language = language
	}
	if len(diags.SkippedRules) > 0 {
		slog.Warn("rules skipped during evaluation", "rules", diags.SkippedRules)
	}

	// Apply severity threshold before resolving.
	if min, ok := gate.ParseSeverity(cfg.Gate.SeverityThreshold); ok && min > gate.SeverityInform {
		kept := findings[:0]
		for _, f := range findings {
			if f.Severity >= min {
				kept = append(kept, f)
			}
		}
		findings = kept
	}

	v := gate.Resolve(findings, diags.Partial)

	if *dbPath != "" {
		if db, err := storage.OpenSQLite(*dbPath); err == nil {
			if err := db.CreateSchema(); err == nil {
				if err := db.LogDecision(path, language, v); err != nil {
					slog.Warn("decision log failed", "err", err)
				}
			}
			db.Close()
		} else {
			slog.Warn("decision db open failed", "err", err)
		}
	}

	if *format == "json" {
		if err := reporting.WriteVerdictJSON(os.Stdout, path, language, v); err != nil {
			slog.Error("write verdict", "err", err)
			os.Exit(1)
		}
	} else {
		// The human report goes to stderr so the host sees it even when
		// stdout is reserved for structured output.
		reporting.RenderVerdict(os.Stderr, path, language, v)
	}
	os.Exit(v.Decision.ExitCode())
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Source directory or file to scan")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	workers := fs.Int("workers", 0, "Evaluation workers (0 = auto)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	sources := cfg.Scan.Sources
	if *inPath != "" {
		sources = []string{*inPath}
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *workers == 0 {
		*workers = cfg.Scan.Workers
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "scan: --path (or scan.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "scan: cannot create out dir:", err)
		os.Exit(1)
	}

	reg := buildRegistry(cfg)
	threshold, _ := gate.ParseSeverity(cfg.Gate.SeverityThreshold)
	sc := scan.New(reg, logger, scan.Options{
		SkipExtensions:    cfg.Gate.SkipExtensions,
		SeverityThreshold: threshold,
		Workers:           *workers,
	})

	run, err := sc.Scan(context.Background(), sources)
	if err != nil {
		slog.Error("scan error", "err", err)
		os.Exit(1)
	}
	run.Context.DisabledRules = cfg.Gate.DisabledRules
	run.Context.RulePacks = cfg.Gate.RulePacks

	// Persist, suppress, report.
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	suppressed := 0
	if sups, err := db.ListSuppressions(true); err == nil && len(sups) > 0 {
		run.Findings, suppressed = rules.ApplySuppressions(run.Findings, sups)
	}

	if err := db.SaveRun(run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, run)
	slog.Info("scan persisted",
		"run", run.ID,
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	reporting.RenderRunSummary(os.Stdout, run, suppressed)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("diff write error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Diff OK\n  %s\n", path)
}

func rulesCmd(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	reg := buildRegistry(cfg)
	for _, r := range reg.All() {
		fmt.Printf("%-28s %-11s %-7s %s\n", r.ID, r.Scope, r.Severity, r.Summary)
	}
	fmt.Printf("%d rules\n", reg.Len())
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Rules:           buildRegistry(cfg),
		Logger:          logger,
		AllowedOrigins:  cfg.API.AllowedOrigins,
		SessionDuration: time.Duration(cfg.API.SessionMinutes) * time.Minute,
	}
	slog.Info("api listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("serve error", "err", err)
		os.Exit(1)
	}
}

func userCmd(args []string) {
	if len(args) < 1 || args[0] != "add" {
		fmt.Fprintln(os.Stderr, "user: only 'add' is supported")
		os.Exit(2)
	}
	fs := flag.NewFlagSet("user add", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", "viewer", "Role: viewer or admin")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args[1:])

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "user add: --username and --password are required")
		os.Exit(2)
	}
	if *role != "viewer" && *role != "admin" {
		fmt.Fprintln(os.Stderr, "user add: --role must be viewer or admin")
		os.Exit(2)
	}

	hash, err := security.HashPassword(*password)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Role: %s\n", id, *role)
}
