package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSCCOutput = `Language,Location,Filename,Lines,Code,Comments,Blanks,Complexity,Bytes,ULOC
Go,core/size.go,size.go,120,90,20,10,7,3400,85
Go,core/density.go,density.go,60,45,10,5,2,1500,40
Markdown,README.md,README.md,30,30,0,0,0,800,28
`

// TestParseSCCOutput verifies header-driven parsing and column dropping.
func TestParseSCCOutput(t *testing.T) {
	rows, err := parseSCCOutput([]byte(sampleSCCOutput))
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	first := rows[0]
	assert.Equal(t, "Go", first.Language)
	assert.Equal(t, "core/size.go", first.Path)
	assert.Equal(t, int64(120), first.Lines)
	assert.Equal(t, int64(90), first.Code)
	assert.Equal(t, int64(20), first.Comments)
	assert.Equal(t, int64(10), first.Blanks)
	assert.Equal(t, int64(3400), first.Bytes)

	assert.Equal(t, "Markdown", rows[2].Language)
}

// TestParseSCCOutputReordered verifies the parse survives column reordering.
func TestParseSCCOutputReordered(t *testing.T) {
	out := "Bytes,Language,Lines,Code,Comments,Blanks,Location\n" +
		"900,Go,10,8,1,1,main.go\n"
	rows, err := parseSCCOutput([]byte(out))
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(900), rows[0].Bytes)
	assert.Equal(t, "main.go", rows[0].Path)
}

// TestParseSCCOutputFailures verifies malformed output aborts the parse.
func TestParseSCCOutputFailures(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{name: "empty output", out: ""},
		{name: "missing required column", out: "Language,Location,Lines\nGo,a.go,1\n"},
		{name: "non-numeric count", out: "Language,Location,Lines,Code,Comments,Blanks,Bytes\nGo,a.go,x,1,1,1,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSCCOutput([]byte(tt.out))
			assert.Error(t, err)
		})
	}
}
