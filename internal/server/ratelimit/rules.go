package ratelimit

import (
	"strings"
	"time"
)

// Rule limits one method on paths matching Pattern. A Pattern ending in "/"
// matches by prefix, "*" matches one path segment.
type Rule struct {
	Method  string
	Pattern string
	Limit   int
	Window  time.Duration
	// Burst defaults to Limit
	Burst int
}

func (r *Rule) burst() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// DefaultRules throttles the API's expensive operations
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Pattern: "/api/variants/*/match", Limit: 20, Window: time.Hour, Burst: 3},
		{Method: "POST", Pattern: "/api/variants/*/ingest-job", Limit: 60, Window: time.Hour, Burst: 5},
		{Method: "GET", Pattern: "/api/variants/*/pdf", Limit: 30, Window: time.Minute, Burst: 5},
		{Method: "GET", Pattern: "/api/master/pdf", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// MatchRule returns the first rule that applies, or nil
func MatchRule(method, path string, rules []Rule) *Rule {
	for i := range rules {
		rule := &rules[i]
		if rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule
		}
	}
	return nil
}

func matchPattern(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	sp := strings.Split(strings.Trim(path, "/"), "/")
	if len(pp) != len(sp) {
		return false
	}
	for i := range pp {
		if pp[i] != "*" && pp[i] != sp[i] {
			return false
		}
	}
	return true
}
