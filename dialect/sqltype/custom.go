package sqltype

import "regexp"

// Rule is a custom type override as written in configuration. Type is a
// regular expression matched against the whole declaration, ignoring case.
// As, To and From are replacement templates that may refer to submatches
// with $1 syntax.
type Rule struct {
	Type string `json:"type" yaml:"type" koanf:"type" validate:"required"`
	As   string `json:"as" yaml:"as" koanf:"as" validate:"required"`
	To   string `json:"to,omitempty" yaml:"to,omitempty" koanf:"to"`
	From string `json:"from,omitempty" yaml:"from,omitempty" koanf:"from"`
}

// Match is the result of applying the first matching rule.
type Match struct {
	As   string
	To   string
	From string
}

// Rules is an ordered list of compiled override rules.
type Rules []compiled

type compiled struct {
	re   *regexp.Regexp
	rule Rule
}

// CompileRules compiles rules in declaration order.
func CompileRules(rules []Rule) (Rules, error) {
	rs := make(Rules, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile("(?i)^(?:" + r.Type + ")$")
		if err != nil {
			return nil, &RuleError{Index: i, Pattern: r.Type, Cause: err}
		}
		rs = append(rs, compiled{re: re, rule: r})
	}
	return rs, nil
}

// Apply rewrites sql with the first rule that matches it. Later rules are
// never consulted.
func (rs Rules) Apply(sql string) (Match, bool) {
	for _, c := range rs {
		if !c.re.MatchString(sql) {
			continue
		}
		m := Match{As: c.re.ReplaceAllString(sql, c.rule.As)}
		if c.rule.To != "" {
			m.To = c.re.ReplaceAllString(sql, c.rule.To)
		}
		if c.rule.From != "" {
			m.From = c.re.ReplaceAllString(sql, c.rule.From)
		}
		return m, true
	}
	return Match{}, false
}

// Resolve passes sql through rs and parses the result. Conversions recorded
// by the matching rule replace the defaults chosen by the grammar.
func Resolve(sql string, rs Rules, parse ParseFunc) (Type, error) {
	m, ok := rs.Apply(sql)
	if ok {
		sql = m.As
	}
	t, err := parse(sql)
	if err != nil {
		return Type{}, err
	}
	if ok {
		if m.To != "" {
			t.To = m.To
		}
		if m.From != "" {
			t.From = m.From
		}
	}
	return t, nil
}
