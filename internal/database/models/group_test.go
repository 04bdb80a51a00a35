package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "daily daf", NormalizeName("  Daily Daf "))
	assert.Equal(t, NormalizeName("daily daf "), NormalizeName("Daily Daf"))
}

func TestNormalizeLink(t *testing.T) {
	cases := []struct{ in, want string }{
		{"https://chat.whatsapp.com/ABC123", "https://chat.whatsapp.com/abc123"},
		{"https://chat.whatsapp.com/ABC123?utm=x", "https://chat.whatsapp.com/abc123"},
		{"https://chat.whatsapp.com/ABC123#frag", "https://chat.whatsapp.com/abc123"},
		{"https://t.me/DafYomi/", "https://t.me/dafyomi/"},
		{"http://t.me/DafYomi", "http://t.me/dafyomi"},
		{" https://example.com/path?x=1#y ", "https://example.com/path"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLink(tc.in), tc.in)
	}

	// scheme and trailing slash differences are not folded
	assert.NotEqual(t, NormalizeLink("http://t.me/a"), NormalizeLink("https://t.me/a"))
	assert.NotEqual(t, NormalizeLink("https://t.me/a/"), NormalizeLink("https://t.me/a"))
}

func TestIsWellFormedURL(t *testing.T) {
	assert.True(t, IsWellFormedURL("https://chat.whatsapp.com/ABC123"))
	assert.True(t, IsWellFormedURL("http://t.me/group"))
	assert.False(t, IsWellFormedURL("not a url"))
	assert.False(t, IsWellFormedURL("ftp://example.com/file"))
	assert.False(t, IsWellFormedURL("https://"))
	assert.False(t, IsWellFormedURL(""))
}

func TestGroupStatusIsValid(t *testing.T) {
	assert.True(t, GroupStatusApproved.IsValid())
	assert.True(t, GroupStatusBroken.IsValid())
	assert.False(t, GroupStatus("pending").IsValid())
}
