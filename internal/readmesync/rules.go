package readmesync

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const defaultMatchTimeout = 5 * time.Second

// ErrRulePattern is returned when a rule pattern is empty or does not compile.
var ErrRulePattern = errors.New("readmesync: invalid rule pattern")

// RuleSpec is the uncompiled form of a Rule, as found in configuration.
type RuleSpec struct {
	Name        string
	Pattern     string
	Replacement string
	IgnoreCase  bool
	Multiline   bool
	Singleline  bool
}

// Rule is an ordered (pattern, replacement-template) pair. The replacement
// may reference capture groups ($1, ${name}) and may contain one Slot that
// is rendered with the module identifier before the rule is applied.
type Rule struct {
	Name        string
	Pattern     *regexp2.Regexp
	Replacement string
}

// CompileRule compiles a single rule specification.
func CompileRule(spec RuleSpec) (Rule, error) {
	name := strings.TrimSpace(spec.Name)
	if strings.TrimSpace(spec.Pattern) == "" {
		return Rule{}, fmt.Errorf("%w: rule %q has no pattern", ErrRulePattern, name)
	}
	if strings.Count(spec.Replacement, Slot) > 1 {
		return Rule{}, fmt.Errorf("%w: rule %q replacement has more than one slot", ErrTemplateSlot, name)
	}

	opts := regexp2.None
	if spec.IgnoreCase {
		opts |= regexp2.IgnoreCase
	}
	if spec.Multiline {
		opts |= regexp2.Multiline
	}
	if spec.Singleline {
		opts |= regexp2.Singleline
	}

	re, err := regexp2.Compile(spec.Pattern, opts)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: rule %q: %v", ErrRulePattern, name, err)
	}
	re.MatchTimeout = defaultMatchTimeout

	return Rule{
		Name:        name,
		Pattern:     re,
		Replacement: spec.Replacement,
	}, nil
}

// CompileRules compiles specs in order. The first failure aborts compilation.
func CompileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for _, spec := range specs {
		rule, err := CompileRule(spec)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// DefaultRules compiles DefaultRuleSpecs.
func DefaultRules(linkTemplate string) ([]Rule, error) {
	return CompileRules(DefaultRuleSpecs(linkTemplate))
}

// Apply renders the rule replacement for module and replaces every match in
// text.
func (r Rule) Apply(text, module string) (string, error) {
	if r.Pattern == nil {
		return "", fmt.Errorf("%w: rule %q is not compiled", ErrRulePattern, r.Name)
	}
	out, err := r.Pattern.Replace(text, Render(r.Replacement, module), -1, -1)
	if err != nil {
		return "", fmt.Errorf("readmesync: apply rule %q: %w", r.Name, err)
	}
	return out, nil
}

// ApplyRules applies rules in declared order, each rule receiving the output
// of the previous one.
func ApplyRules(text, module string, rules []Rule) (string, error) {
	current := text
	for _, rule := range rules {
		next, err := rule.Apply(current, module)
		if err != nil {
			return "", err
		}
		current = next
	}
	return current, nil
}
