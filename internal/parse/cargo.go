package parse

import (
	"regexp"
	"strings"
)

// CargoResult holds the counts and affected files extracted from cargo
// diagnostic output.
type CargoResult struct {
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Files    []string `json:"files"`
}

var (
	cargoError = regexp.MustCompile(`^error(\[E\d+\])?:`)
	// --> src/main.rs:10:5
	cargoFileRef = regexp.MustCompile(`-->\s+(.+?):(\d+):(\d+)`)
)

// Cargo extracts error and warning counts plus the affected file list from
// cargo check/build output. Errors and warnings are counted by line
// prefix; files come from "--> file:line:col" references, deduplicated in
// first-seen order.
func Cargo(text string) CargoResult {
	result := CargoResult{Files: []string{}}
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if cargoError.MatchString(line) {
			result.Errors++
		} else if strings.HasPrefix(line, "warning:") {
			result.Warnings++
		}

		if m := cargoFileRef.FindStringSubmatch(line); m != nil {
			file := m[1]
			if !seen[file] {
				seen[file] = true
				result.Files = append(result.Files, file)
			}
		}
	}

	return result
}
