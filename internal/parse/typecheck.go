package parse

import (
	"regexp"
	"strings"
)

// TypecheckResult holds the error count and affected files extracted from
// type checker output. Files contains each path once, in the order it was
// first encountered.
type TypecheckResult struct {
	Errors int      `json:"errors"`
	Files  []string `json:"files"`
}

var (
	// src/app.ts(10,5): error TS2304: ...
	tscParenDiagnostic = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): error TS\d+`)
	// src/app.ts:10:5 - error TS2304: ...
	tscColonDiagnostic = regexp.MustCompile(`^(.+?):(\d+):(\d+) - error TS\d+`)

	typecheckSummary = regexp.MustCompile(`(?i)Found (\d+) errors?`)
)

// Typecheck extracts the error count and affected file list from type
// checker output. Both observed diagnostic formats are scanned per line;
// a "Found N error(s)" summary line, when present, overrides the running
// count while the per-line scan still supplies the file list.
func Typecheck(text string) TypecheckResult {
	result := TypecheckResult{Files: []string{}}
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		m := tscParenDiagnostic.FindStringSubmatch(line)
		if m == nil {
			m = tscColonDiagnostic.FindStringSubmatch(line)
		}
		if m == nil {
			continue
		}

		result.Errors++
		file := m[1]
		if !seen[file] {
			seen[file] = true
			result.Files = append(result.Files, file)
		}
	}

	if m := typecheckSummary.FindStringSubmatch(text); m != nil {
		result.Errors = mustAtoi(m[1])
	}

	return result
}
