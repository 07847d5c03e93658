// Package policy evaluates operator-configured guard rules against a
// normalized payment-link request before any provider call is made. Rules
// are boolean expressions over the request's fields; a request that trips a
// rule is rejected as a validation failure.
package policy

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/yourorg/checkout-orchestrator/internal/apperror"
	"github.com/yourorg/checkout-orchestrator/internal/checkout"
)

// RuleConfig is one named guard expression, e.g.
//
//	{Name: "AmountCap", Expression: "amount_minor <= 50000000"}
//
// Expressions may reference amount_minor, currency, payment_type and
// provider.
type RuleConfig struct {
	Name       string
	Expression string
}

type compiledRule struct {
	name string
	expr *govaluate.EvaluableExpression
}

// Enforcer holds the compiled guard rules. An Enforcer with no rules passes
// every request.
type Enforcer struct {
	rules []compiledRule
}

// NewEnforcer compiles the given rules. An invalid expression is a
// construction-time error, not a per-request one.
func NewEnforcer(rules []RuleConfig) (*Enforcer, error) {
	e := &Enforcer{}
	for _, rc := range rules {
		expr, err := govaluate.NewEvaluableExpression(rc.Expression)
		if err != nil {
			return nil, fmt.Errorf("policy: invalid expression for rule %q: %w", rc.Name, err)
		}
		e.rules = append(e.rules, compiledRule{name: rc.Name, expr: expr})
	}
	return e, nil
}

// Check evaluates every rule against req. The first rule that evaluates to
// false rejects the request with a validation error naming the rule.
func (e *Enforcer) Check(req checkout.NormalizedRequest, provider checkout.Provider) error {
	if len(e.rules) == 0 {
		return nil
	}

	params := map[string]interface{}{
		// govaluate arithmetic works on float64.
		"amount_minor": float64(req.AmountMinor),
		"currency":     string(req.Currency),
		"payment_type": string(req.PaymentType),
		"provider":     string(provider),
	}

	for _, rule := range e.rules {
		result, err := rule.expr.Evaluate(params)
		if err != nil {
			return apperror.NewUnexpected(fmt.Sprintf("policy: rule %q failed to evaluate", rule.name), err)
		}
		ok, isBool := result.(bool)
		if !isBool {
			return apperror.NewUnexpected(fmt.Sprintf("policy: rule %q did not evaluate to a boolean", rule.name), nil)
		}
		if !ok {
			return apperror.NewValidation("request rejected by guard rule %q", rule.name)
		}
	}
	return nil
}
