package linkcheck

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule is a platform-specific liveness heuristic. Rules are evaluated in order
// and the first rule whose Hosts match the link's host is applied.
type Rule struct {
	Name string `yaml:"name"`
	// Hosts matched exactly or as a parent domain ("whatsapp.com" matches "chat.whatsapp.com").
	Hosts []string `yaml:"hosts"`
	// LandingPages are generic pages a dead link redirects to.
	LandingPages []string `yaml:"landing_pages"`
	// RequireOGTitle marks the page dead when its og:title meta is missing or empty.
	RequireOGTitle bool `yaml:"require_og_title"`
	// DeadPhrases mark the page dead when any of them appears in the body (case-insensitive).
	DeadPhrases []string `yaml:"dead_phrases"`
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the built-in WhatsApp and Telegram heuristics
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:           "whatsapp",
			Hosts:          []string{"chat.whatsapp.com"},
			LandingPages:   []string{"https://www.whatsapp.com/"},
			RequireOGTitle: true,
			DeadPhrases: []string{
				"invite link was reset",
				"this invite link is invalid",
			},
		},
		{
			Name:         "telegram",
			Hosts:        []string{"t.me", "telegram.me"},
			LandingPages: []string{"https://telegram.org/"},
			DeadPhrases: []string{
				"this user doesn't seem to exist",
				"this channel can't be displayed",
			},
		},
	}
}

// LoadRules reads additional rules from a YAML file of the form
//
//	rules:
//	  - name: discord
//	    hosts: [discord.gg]
//	    dead_phrases: ["invite invalid"]
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	for i, r := range f.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if len(r.Hosts) == 0 {
			return nil, fmt.Errorf("rule %q: at least one host is required", r.Name)
		}
	}
	return f.Rules, nil
}

// Matches reports whether the rule applies to u
func (r Rule) Matches(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	for _, h := range r.Hosts {
		h = strings.ToLower(h)
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func (r Rule) inspectsBody() bool {
	return r.RequireOGTitle || len(r.DeadPhrases) > 0
}

// MergeRules returns base with extra applied on top: an extra rule replaces the
// base rule of the same name, new names are appended after the base rules.
func MergeRules(base, extra []Rule) []Rule {
	merged := make([]Rule, 0, len(base)+len(extra))
	merged = append(merged, base...)

	for _, r := range extra {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, r.Name) {
				merged[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, r)
		}
	}
	return merged
}
