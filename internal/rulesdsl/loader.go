// Package rulesdsl loads operator-supplied rule packs. A pack is a YAML
// document with the same minimal schema as built-in rules; every rule is
// compiled and validated at load time, and one malformed rule fails the
// whole load, the same fatal-on-malformed policy as the built-ins.
package rulesdsl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/codegate/internal/gate"
	"github.com/codewithboateng/codegate/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID       string `yaml:"id"`
	Scope    string `yaml:"scope"`    // "universal" or a language tag
	Severity string `yaml:"severity"` // block|warn|inform
	Summary  string `yaml:"summary"`
	Message  string `yaml:"message"`
	Pattern  string `yaml:"pattern"`
	Unless   string `yaml:"unless"`
	Window   int    `yaml:"window"`
}

// LoadPack reads one YAML pack and registers its rules. Returns the
// number registered.
func LoadPack(path string, reg *rules.Registry) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read rule pack: %w", err)
	}
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}
	var n int
	for _, r := range pack.Rules {
		rule, err := convert(r)
		if err != nil {
			return n, fmt.Errorf("rule %q: %w", r.ID, err)
		}
		if err := reg.Add(rule); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// LoadPacks registers every pack in order; ids must stay unique across
// built-ins and all packs.
func LoadPacks(paths []string, reg *rules.Registry) (int, error) {
	total := 0
	for _, p := range paths {
		n, err := LoadPack(p, reg)
		total += n
		if err != nil {
			return total, fmt.Errorf("pack %s: %w", p, err)
		}
	}
	return total, nil
}

func convert(r dslRule) (rules.Rule, error) {
	if r.ID == "" || r.Scope == "" || r.Severity == "" || r.Message == "" || r.Pattern == "" {
		return rules.Rule{}, fmt.Errorf("missing required fields (id/scope/severity/message/pattern)")
	}
	sev, ok := gate.ParseSeverity(r.Severity)
	if !ok {
		return rules.Rule{}, fmt.Errorf("unknown severity %q", r.Severity)
	}
	return rules.Rule{
		ID:       r.ID,
		Scope:    gate.Scope(r.Scope),
		Severity: sev,
		Summary:  r.Summary,
		Message:  r.Message,
		Pattern:  r.Pattern,
		Unless:   r.Unless,
		Window:   r.Window,
	}, nil
}
