package domain

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are conditional-requirement constraints attached to an entity, written
// in a one-line language:
//
//	when status == "done" then require completed_at
//	when archived == true then forbid assignee_id
//
// They are parsed at load time; generators render them into server-side
// schema validators and client-side form checks.

// Rule is the parsed form of one business rule.
type Rule struct {
	When Condition `parser:"\"when\" @@"`
	Then Action    `parser:"\"then\" @@"`
}

// Condition compares a field against a literal.
type Condition struct {
	Field string    `parser:"@Ident"`
	Op    string    `parser:"@Op"`
	Value RuleValue `parser:"@@"`
}

// Action requires or forbids a field when the condition holds.
type Action struct {
	Verb  string `parser:"@(\"require\" | \"forbid\")"`
	Field string `parser:"@Ident"`
}

// RuleValue is a string, integer or boolean literal.
type RuleValue struct {
	Str  *string  `parser:"@String"`
	Int  *int64   `parser:"| @Int"`
	Bool *Boolean `parser:"| @(\"true\" | \"false\")"`
}

// Boolean captures true/false keywords.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "true"
	return nil
}

var ruleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Op", Pattern: `==|!=`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var ruleParser = participle.MustBuild[Rule](
	participle.Lexer(ruleLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// ParseRule parses one rule expression.
func ParseRule(src string) (*Rule, error) {
	rule, err := ruleParser.ParseString("", src)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// ParsedRules parses every rule on the entity. The config must have passed
// validation, so parse failures here are programmer errors.
func (e *EntityDefinition) ParsedRules() ([]*Rule, error) {
	rules := make([]*Rule, 0, len(e.Rules))
	for _, src := range e.Rules {
		rule, err := ParseRule(src)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", src, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Python renders the literal as a Python expression.
func (v RuleValue) Python() string {
	switch {
	case v.Str != nil:
		return strconv.Quote(*v.Str)
	case v.Int != nil:
		return strconv.FormatInt(*v.Int, 10)
	case v.Bool != nil && bool(*v.Bool):
		return "True"
	default:
		return "False"
	}
}

// TypeScript renders the literal as a TypeScript expression.
func (v RuleValue) TypeScript() string {
	switch {
	case v.Str != nil:
		return strconv.Quote(*v.Str)
	case v.Int != nil:
		return strconv.FormatInt(*v.Int, 10)
	case v.Bool != nil && bool(*v.Bool):
		return "true"
	default:
		return "false"
	}
}

// Requires reports whether the action is a requirement (as opposed to a
// prohibition).
func (a Action) Requires() bool { return a.Verb == "require" }
