package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseCoAuthorEmails verifies trailer extraction from messages.
func TestParseCoAuthorEmails(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected []string
	}{
		{
			name:     "no trailers",
			message:  "Fix off-by-one in calendar fill",
			expected: nil,
		},
		{
			name:     "single trailer",
			message:  "Add spoilage engine\n\nCo-authored-by: Alice <alice@example.com>\n",
			expected: []string{"alice@example.com"},
		},
		{
			name: "multiple trailers keep order",
			message: "Pairing session\n\n" +
				"Co-authored-by: Alice <alice@example.com>\n" +
				"Co-authored-by: Bob Smith <bob@example.com>\n",
			expected: []string{"alice@example.com", "bob@example.com"},
		},
		{
			name:     "case insensitive prefix",
			message:  "msg\n\nco-authored-by: Carol <carol@example.com>",
			expected: []string{"carol@example.com"},
		},
		{
			name:     "trailer without name",
			message:  "msg\n\nCo-authored-by: <dave@example.com>",
			expected: []string{"dave@example.com"},
		},
		{
			name:     "mention mid-line is not a trailer",
			message:  "see Co-authored-by: Eve <eve@example.com> in docs",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCoAuthorEmails(tt.message))
		})
	}
}

// TestOpenGoGitClientMissingRepo verifies a friendly error without git metadata.
func TestOpenGoGitClientMissingRepo(t *testing.T) {
	_, err := OpenGoGitClient(t.TempDir())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "git")
}
