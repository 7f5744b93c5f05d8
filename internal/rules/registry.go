package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/codewithboateng/codegate/internal/gate"
)

// Registry holds the compiled rule catalogue. It is passed explicitly
// into evaluation rather than living as ambient package state, so tests
// can build isolated registries per rule.
type Registry struct {
	rules    []Rule
	index    map[string]int // UPPER(ruleID) -> index
	disabled map[string]bool
}

func NewRegistry() *Registry {
	return &Registry{
		index:    map[string]int{},
		disabled: map[string]bool{},
	}
}

// NewDefault builds a fresh registry from the built-in catalogue.
// A malformed built-in rule is a programming error and panics at
// construction, never per file.
func NewDefault() *Registry {
	r := NewRegistry()
	for _, set := range [][]Rule{
		securityRules(),
		incompleteRules(),
		javascriptRules(),
		typescriptRules(),
		pythonRules(),
		goRules(),
		rustRules(),
	} {
		for _, rule := range set {
			r.MustAdd(rule)
		}
	}
	return r
}

// Add compiles and registers a rule. Missing fields, a duplicate id,
// an oversized window, or a pattern RE2 rejects are all fatal
// configuration errors for the caller to surface.
func (r *Registry) Add(rule Rule) error {
	id := keyOf(rule.ID)
	if id == "" {
		return fmt.Errorf("rule with empty id")
	}
	if _, dup := r.index[id]; dup {
		return fmt.Errorf("duplicate rule id %q", rule.ID)
	}
	if !gate.ValidScope(rule.Scope) {
		return fmt.Errorf("rule %q: invalid scope %q", rule.ID, rule.Scope)
	}
	if rule.Severity < gate.SeverityInform || rule.Severity > gate.SeverityBlock {
		return fmt.Errorf("rule %q: invalid severity", rule.ID)
	}
	if rule.Message == "" {
		return fmt.Errorf("rule %q: missing message", rule.ID)
	}
	if rule.Window > maxWindow {
		return fmt.Errorf("rule %q: window %d exceeds max %d", rule.ID, rule.Window, maxWindow)
	}
	if rule.Window < 1 {
		rule.Window = 1
	}
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return fmt.Errorf("rule %q: pattern: %w", rule.ID, err)
	}
	rule.re = re
	if rule.Unless != "" {
		un, err := regexp.Compile(rule.Unless)
		if err != nil {
			return fmt.Errorf("rule %q: unless: %w", rule.ID, err)
		}
		rule.unless = un
	}
	r.rules = append(r.rules, rule)
	r.index[id] = len(r.rules) - 1
	return nil
}

// MustAdd registers a built-in rule and panics on any defect.
func (r *Registry) MustAdd(rule Rule) {
	if err := r.Add(rule); err != nil {
		panic(err)
	}
}

// Disable marks rule ids to be excluded from evaluation. Matching is
// case-insensitive.
func (r *Registry) Disable(ids []string) {
	for _, id := range ids {
		r.disabled[keyOf(id)] = true
	}
}

// ForLanguage returns the union of universal rules and the rules scoped
// to lang, sorted by id, with no duplicates. Unknown still receives the
// full universal set.
func (r *Registry) ForLanguage(lang gate.Language) []Rule {
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if r.disabled[keyOf(rule.ID)] {
			continue
		}
		if rule.Scope.Matches(lang) {
			out = append(out, rule)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All returns every registered rule (disabled included), sorted by id.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a rule by id if registered (used by the API inventory).
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.index[keyOf(id)]
	if !ok || idx < 0 || idx >= len(r.rules) {
		return Rule{}, false
	}
	return r.rules[idx], true
}

func (r *Registry) Len() int { return len(r.rules) }

func keyOf(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
