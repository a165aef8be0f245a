package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypecheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TypecheckResult
	}{
		{
			name: "paren diagnostic format",
			text: "src/app.ts(10,5): error TS2304: Cannot find name 'foo'.",
			want: TypecheckResult{Errors: 1, Files: []string{"src/app.ts"}},
		},
		{
			name: "colon diagnostic format",
			text: "src/app.ts:10:5 - error TS2304: Cannot find name 'foo'.",
			want: TypecheckResult{Errors: 1, Files: []string{"src/app.ts"}},
		},
		{
			name: "mixed formats preserve first-seen order",
			text: "src/b.ts(1,1): error TS1005: ';' expected.\n" +
				"src/a.ts:2:3 - error TS2304: Cannot find name 'bar'.\n" +
				"src/b.ts(7,2): error TS2551: Property does not exist.",
			want: TypecheckResult{Errors: 3, Files: []string{"src/b.ts", "src/a.ts"}},
		},
		{
			name: "duplicate file appears once",
			text: "src/x.ts(1,1): error TS1005: ';' expected.\n" +
				"src/x.ts(9,4): error TS1005: ';' expected.",
			want: TypecheckResult{Errors: 2, Files: []string{"src/x.ts"}},
		},
		{
			name: "summary overrides running count",
			text: "src/x.ts(1,1): error TS1005: ';' expected.\n" +
				"Found 4 errors in 1 file.",
			want: TypecheckResult{Errors: 4, Files: []string{"src/x.ts"}},
		},
		{
			name: "summary only",
			text: "Found 2 errors.",
			want: TypecheckResult{Errors: 2, Files: []string{}},
		},
		{
			name: "no diagnostics",
			text: "Compilation complete.",
			want: TypecheckResult{Files: []string{}},
		},
		{
			name: "empty input",
			text: "",
			want: TypecheckResult{Files: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Typecheck(tt.text)
			assert.Equal(t, tt.want, got)

			seen := make(map[string]bool)
			for _, file := range got.Files {
				assert.False(t, seen[file], "duplicate file %s", file)
				seen[file] = true
			}
		})
	}
}

func TestTypecheckIdempotent(t *testing.T) {
	text := "src/a.ts(1,1): error TS1005: ';' expected.\nFound 1 error."
	assert.Equal(t, Typecheck(text), Typecheck(text))
}
