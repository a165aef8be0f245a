package parse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// TestResult holds the counts extracted from test runner output.
// Total is always recomputed as the sum of the three counts, never taken
// from the summary line.
type TestResult struct {
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

var (
	// "Tests  12 passed | 2 failed | 1 skipped (15)" with the failed and
	// skipped segments independently optional.
	testSummary = regexp.MustCompile(`Tests\s+(\d+) passed(?:\s*\|\s*(\d+) failed)?(?:\s*\|\s*(\d+) skipped)?`)

	testPassGlyph = regexp.MustCompile(`(?m)^\s*[✓✔]`)
	testFailGlyph = regexp.MustCompile(`(?m)^\s*[✗✘×]`)
	testSkipGlyph = regexp.MustCompile(`(?m)^\s*[-↓].*\bskipped\b`)
)

// Test extracts pass/fail/skip counts from test runner output.
//
// Tiers: the "Tests N passed | M failed | K skipped" summary line first;
// then line-leading result glyphs; then, when both previous tiers see zero
// passed and zero failed, literal PASS/FAIL line prefixes.
func Test(text string) TestResult {
	var result TestResult

	if m := testSummary.FindStringSubmatch(text); m != nil {
		result.Passed = mustAtoi(m[1])
		if m[2] != "" {
			result.Failed = mustAtoi(m[2])
		}
		if m[3] != "" {
			result.Skipped = mustAtoi(m[3])
		}
	} else {
		result.Passed = len(testPassGlyph.FindAllString(text, -1))
		result.Failed = len(testFailGlyph.FindAllString(text, -1))
		result.Skipped = len(testSkipGlyph.FindAllString(text, -1))

		if result.Passed == 0 && result.Failed == 0 {
			for _, line := range strings.Split(text, "\n") {
				switch {
				case strings.HasPrefix(line, "PASS"):
					result.Passed++
				case strings.HasPrefix(line, "FAIL"):
					result.Failed++
				}
			}
		}
	}

	result.Total = result.Passed + result.Failed + result.Skipped
	return result
}

// PassRate returns the percentage of passed tests over the total, rounded
// to two decimal places. An empty run yields zero rather than a division
// error.
func (r TestResult) PassRate() decimal.Decimal {
	if r.Total == 0 {
		return decimal.Zero
	}
	passed := decimal.NewFromInt(int64(r.Passed))
	total := decimal.NewFromInt(int64(r.Total))
	return passed.Mul(decimal.NewFromInt(100)).DivRound(total, 2)
}
