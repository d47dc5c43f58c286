// Package classify assigns spending categories to transactions from ordered
// pattern rules.
package classify

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/bankscope-dev/bankscope/internal/model"
)

// ruleSet is one category's compiled pattern list.
type ruleSet struct {
	category model.Category
	patterns []*regexp.Regexp
}

// Classifier assigns categories from compiled pattern rules. It is pure and
// safe for concurrent reads once built.
type Classifier struct {
	sale     []*regexp.Regexp
	expenses []ruleSet // fixed priority order for outflows
}

// New compiles a rule table into a Classifier.
func New(rules Rules) (*Classifier, error) {
	c := &Classifier{}

	sale, err := compile(model.CategorySale, rules[model.CategorySale])
	if err != nil {
		return nil, err
	}
	c.sale = sale

	for _, cat := range model.ExpenseCategories {
		patterns, err := compile(cat, rules[cat])
		if err != nil {
			return nil, err
		}
		c.expenses = append(c.expenses, ruleSet{category: cat, patterns: patterns})
	}
	return c, nil
}

// MustDefault returns a Classifier built from the default rule table.
func MustDefault() *Classifier {
	c, err := New(DefaultRules())
	if err != nil {
		panic("default rules failed to compile: " + err.Error())
	}
	return c
}

// Classify returns the category for a transaction.
//
// Any positive amount is a sale, pattern match or not: inflows are revenue
// unless a human later says otherwise. Non-positive amounts walk the expense
// rule sets in priority order and take the first category with any matching
// pattern, or unset when nothing matches.
func (c *Classifier) Classify(description string, amt decimal.Decimal) model.Category {
	if amt.IsPositive() {
		for _, p := range c.sale {
			if p.MatchString(description) {
				return model.CategorySale
			}
		}
		// No match still means sale. Inflows are revenue by policy.
		return model.CategorySale
	}

	for _, rs := range c.expenses {
		for _, p := range rs.patterns {
			if p.MatchString(description) {
				return rs.category
			}
		}
	}
	return model.CategoryUnset
}

func compile(cat model.Category, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pat := range patterns {
		re, err := regexp.Compile(`(?i)` + pat)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern %q: %w", cat, pat, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
