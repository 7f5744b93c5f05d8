package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Database.DSN == "" || c.Gate.TimeoutMS <= 0 || c.Gate.SeverityThreshold != "inform" {
		t.Fatalf("defaults incomplete: %+v", c)
	}
	if len(c.Gate.SkipExtensions) == 0 {
		t.Fatal("default skip extensions missing")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	content := `
database:
  dsn: /tmp/other.db
gate:
  severity_threshold: warn
  timeout_ms: 250
  disabled_rules: [INC-TODO, INC-FIXME]
logging:
  format: text
  level: debug
`
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Database.DSN != "/tmp/other.db" || c.Gate.SeverityThreshold != "warn" || c.Gate.TimeoutMS != 250 {
		t.Fatalf("yaml values not applied: %+v", c)
	}
	if len(c.Gate.DisabledRules) != 2 {
		t.Fatalf("disabled rules = %v", c.Gate.DisabledRules)
	}
	// Untouched sections keep their defaults.
	if c.API.Addr != ":8780" {
		t.Fatalf("api addr default lost: %q", c.API.Addr)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CODEGATE_DB_DSN", "/tmp/env.db")
	t.Setenv("CODEGATE_TIMEOUT_MS", "123")
	t.Setenv("CODEGATE_DISABLED_RULES", "INC-TODO, SEC-EVAL ,")
	t.Setenv("CODEGATE_LOG_LEVEL", "debug")

	c, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Database.DSN != "/tmp/env.db" || c.Gate.TimeoutMS != 123 || c.Logging.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", c)
	}
	if len(c.Gate.DisabledRules) != 2 {
		t.Fatalf("disabled rules = %v (list must trim empties)", c.Gate.DisabledRules)
	}
}

func TestLoadConfigBadEnvTimeoutIgnored(t *testing.T) {
	t.Setenv("CODEGATE_TIMEOUT_MS", "not-a-number")
	c, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Gate.TimeoutMS != DefaultConfig().Gate.TimeoutMS {
		t.Fatalf("bad env timeout changed config: %d", c.Gate.TimeoutMS)
	}
}

func TestLoadConfigMissingFileFallsBack(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Database.DSN != DefaultConfig().Database.DSN {
		t.Fatalf("missing file must yield defaults, got %+v", c)
	}
}
