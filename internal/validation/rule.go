package validation

import (
	"context"
	"errors"
	"fmt"

	"precheck/internal/validation/ports"
)

// Contract violations. Either one aborts the pass.
var (
	ErrNilSubject = errors.New("validation: subject is required")
	ErrNilGateway = errors.New("validation: reference data gateway is required")
)

// SubjectKind groups rules by what they inspect.
type SubjectKind string

const (
	KindCase      SubjectKind = "case"
	KindDefendant SubjectKind = "defendant"
	KindDocument  SubjectKind = "document"
)

// Subject is implemented by the context types a rule can run against.
type Subject interface {
	Kind() SubjectKind
	present() bool
}

// Rule inspects a subject and returns the problems it finds. A rule may only
// mutate the subject's enrichment fields and cache, and must be idempotent.
type Rule[S Subject] interface {
	Validate(ctx context.Context, subject S, gateway ports.ReferenceDataGateway) (ValidationResult, error)
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc[S Subject] func(ctx context.Context, subject S, gateway ports.ReferenceDataGateway) (ValidationResult, error)

func (f RuleFunc[S]) Validate(ctx context.Context, subject S, gateway ports.ReferenceDataGateway) (ValidationResult, error) {
	return f(ctx, subject, gateway)
}

// Require checks the rule contract. Every rule calls it before touching the subject.
func Require[S Subject](subject S, gateway ports.ReferenceDataGateway) error {
	if !subject.present() {
		return ErrNilSubject
	}
	if gateway == nil {
		return ErrNilGateway
	}
	return nil
}

// NamedRule pairs a rule with the name it is reported and traced under.
type NamedRule[S Subject] struct {
	Name string
	Rule Rule[S]
}

// Named is shorthand for building a NamedRule.
func Named[S Subject](name string, rule Rule[S]) NamedRule[S] {
	return NamedRule[S]{Name: name, Rule: rule}
}

// Chain is an ordered rule list. Problems are concatenated in rule order.
type Chain[S Subject] struct {
	rules []NamedRule[S]
}

// NewChain builds a chain from rules in execution order.
func NewChain[S Subject](rules ...NamedRule[S]) *Chain[S] {
	c := &Chain[S]{rules: make([]NamedRule[S], 0, len(rules))}
	for _, r := range rules {
		if r.Rule != nil {
			c.rules = append(c.rules, r)
		}
	}
	return c
}

// Names lists rule names in execution order.
func (c *Chain[S]) Names() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

// Len returns the number of rules in the chain.
func (c *Chain[S]) Len() int {
	return len(c.rules)
}

// Run executes every rule in order against subject. A rule error stops the
// pass and no partial result is returned.
func (c *Chain[S]) Run(ctx context.Context, subject S, gateway ports.ReferenceDataGateway) (ValidationResult, error) {
	if err := Require(subject, gateway); err != nil {
		return ValidationResult{}, err
	}
	result := Pass()
	for _, r := range c.rules {
		res, err := r.Rule.Validate(ctx, subject, gateway)
		if err != nil {
			return ValidationResult{}, fmt.Errorf("rule %s: %w", r.Name, err)
		}
		result = result.Concat(res)
	}
	return result, nil
}
