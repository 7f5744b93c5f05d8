package shared

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/codegate/internal/lang"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./codegate.db"
	} `yaml:"database"`

	Gate struct {
		SkipExtensions    []string `yaml:"skip_extensions"`    // docs/config formats that bypass the gate
		DisabledRules     []string `yaml:"disabled_rules"`     // rule ids excluded from evaluation
		SeverityThreshold string   `yaml:"severity_threshold"` // minimum severity reported ("inform")
		RulePacks         []string `yaml:"rule_packs"`         // operator YAML rule packs
		TimeoutMS         int      `yaml:"timeout_ms"`         // per-evaluation budget
	} `yaml:"gate"`

	Scan struct {
		Sources []string `yaml:"sources"` // default roots for "scan"
		Workers int      `yaml:"workers"` // 0 = GOMAXPROCS
	} `yaml:"scan"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	API struct {
		Addr           string   `yaml:"addr"`            // ":8780"
		SessionMinutes int      `yaml:"session_minutes"` // 720
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"api"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./codegate.db"
	c.Gate.SkipExtensions = lang.DefaultSkipExtensions()
	c.Gate.SeverityThreshold = "inform"
	c.Gate.TimeoutMS = 5000
	c.Reporting.OutDir = "./reports"
	c.API.Addr = ":8780"
	c.API.SessionMinutes = 720
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("CODEGATE_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("CODEGATE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Gate.TimeoutMS = n
		}
	}
	if v := os.Getenv("CODEGATE_RULE_PACKS"); v != "" {
		c.Gate.RulePacks = splitList(v)
	}
	if v := os.Getenv("CODEGATE_DISABLED_RULES"); v != "" {
		c.Gate.DisabledRules = splitList(v)
	}
	if v := os.Getenv("CODEGATE_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CODEGATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CODEGATE_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
