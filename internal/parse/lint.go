// Package parse extracts structured metrics from the free-text output of
// external development tools (linter, test runner, type checker, cargo).
//
// Tool output formats drift between versions, so every parser works in
// tiers: an authoritative summary line is preferred when present, with
// pattern-based heuristics as fallback. Parsers are pure functions over a
// single string; malformed or empty input degrades to zero counts and
// empty lists, never to an error.
package parse

import (
	"regexp"
	"strconv"
)

// LintResult holds the counts extracted from linter output.
type LintResult struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Fixed    int `json:"fixed"`
}

var (
	// Matches both "Found 3 errors" and the combined form
	// "Found 12 warnings and 2 errors."
	lintErrorSummary   = regexp.MustCompile(`(?i)Found.*?(\d+) errors?`)
	lintWarningSummary = regexp.MustCompile(`(?i)Found.*?(\d+) warnings?`)
	lintErrorWord      = regexp.MustCompile(`(?i)\berror\b`)
	lintWarningWord    = regexp.MustCompile(`(?i)\bwarning\b`)
	lintFixed          = regexp.MustCompile(`(?i)Fixed (\d+)`)
	lintApplied        = regexp.MustCompile(`(?i)Applied (\d+) fix(es)?`)
)

// Lint extracts error, warning and fixed counts from linter output.
//
// The "Found N error(s)" / "Found N warning(s)" summary lines are
// authoritative when present; otherwise whole-word occurrences are counted
// as an approximation. Both fixed-count phrasings are checked in order and
// the later check wins when both match.
func Lint(text string) LintResult {
	var result LintResult

	if m := lintErrorSummary.FindStringSubmatch(text); m != nil {
		result.Errors = mustAtoi(m[1])
	} else {
		result.Errors = len(lintErrorWord.FindAllString(text, -1))
	}

	if m := lintWarningSummary.FindStringSubmatch(text); m != nil {
		result.Warnings = mustAtoi(m[1])
	} else {
		result.Warnings = len(lintWarningWord.FindAllString(text, -1))
	}

	if m := lintFixed.FindStringSubmatch(text); m != nil {
		result.Fixed = mustAtoi(m[1])
	}
	if m := lintApplied.FindStringSubmatch(text); m != nil {
		result.Fixed = mustAtoi(m[1])
	}

	return result
}

// mustAtoi converts digits already matched by \d+; it cannot fail for
// counts that fit an int.
func mustAtoi(digits string) int {
	n, _ := strconv.Atoi(digits)
	return n
}
