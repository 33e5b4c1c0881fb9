package source

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
)

func TestCommitLabelStringTruncatesHashAndKeepsSummary(t *testing.T) {
	label := CommitLabel{
		Hash:    plumbing.NewHash("0123456789abcdef0123456789abcdef01234567"),
		Summary: "fix the thing",
	}
	assert.Equal(t, "01234567 fix the thing", label.String())
}

func TestSummaryStopsAtFirstNewline(t *testing.T) {
	assert.Equal(t, "add widget", summary("add widget\n\nlonger body explaining why"))
	assert.Equal(t, "single line", summary("single line"))
	assert.Equal(t, "", summary(""))
}
