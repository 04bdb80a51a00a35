package models

import (
	"net/url"
	"strings"
	"time"
)

// GroupRecord is a study-group directory entry. The whole directory is stored
// as one JSON array in the key-value store, so this type is never a table.
type GroupRecord struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Link             string      `json:"link"`
	Platform         string      `json:"platform,omitempty"`
	Description      string      `json:"description,omitempty"`
	Language         string      `json:"language,omitempty"`
	AdminContact     string      `json:"adminContact,omitempty"`
	AdminContactType string      `json:"adminContactType,omitempty"`
	Status           GroupStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	BrokenAt         *time.Time  `json:"brokenAt,omitempty"`
}

// IsBroken reports whether the sweep has marked the record broken
func (g *GroupRecord) IsBroken() bool {
	return g.Status == GroupStatusBroken
}

// NormalizeName returns the key used for duplicate name detection
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeLink returns the key used for duplicate link detection: the link
// lowercased with any query string or fragment removed. Trailing slashes and
// scheme differences are deliberately kept.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	return strings.ToLower(link)
}

// IsWellFormedURL reports whether link parses as an absolute http(s) URL
func IsWellFormedURL(link string) bool {
	u, err := url.ParseRequestURI(strings.TrimSpace(link))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
