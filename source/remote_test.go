package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteCommitLabelStringTruncatesOID(t *testing.T) {
	label := RemoteCommitLabel{OID: "abcdef0123456789", MessageHeadline: "add widget"}
	assert.Equal(t, "abcdef01 add widget", label.String())
}

func TestRemoteCommitLabelStringKeepsShortOIDWhole(t *testing.T) {
	label := RemoteCommitLabel{OID: "abc", MessageHeadline: "add widget"}
	assert.Equal(t, "abc add widget", label.String())
}
