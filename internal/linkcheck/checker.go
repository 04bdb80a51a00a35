// Package linkcheck probes study-group invite links and classifies them as
// alive or dead.
//
// Classification fails open: a probe that cannot complete (DNS, timeout,
// connection reset, unreadable body) reports alive, so a flaky third-party
// site never causes a directory entry to be marked broken.
package linkcheck

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/net/html"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 1 << 20
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Config holds checker configuration
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	Rules        []Rule
	MaxBodyBytes int64
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Checker is the HTTP implementation of Prober
type Checker struct {
	client       *http.Client
	userAgent    string
	rules        []Rule
	maxBodyBytes int64
}

var _ Prober = (*Checker)(nil)

// New creates a Checker. A nil Rules slice means DefaultRules.
func New(cfg Config) *Checker {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		// the default client follows up to 10 redirects
		client = &http.Client{Timeout: timeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &Checker{
		client:       client,
		userAgent:    userAgent,
		rules:        rules,
		maxBodyBytes: maxBody,
	}
}

// Rules returns the rules in evaluation order
func (c *Checker) Rules() []Rule {
	return c.rules
}

// Probe fetches rawURL once and classifies it
func (c *Checker) Probe(ctx context.Context, rawURL string) Result {
	res := c.probe(ctx, rawURL)
	probeTotal.WithLabelValues(ruleLabel(res.Rule), string(res.Verdict)).Inc()
	return res
}

func (c *Checker) probe(ctx context.Context, rawURL string) Result {
	target := Sanitize(rawURL)
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return Result{Verdict: Alive, Reason: "unparseable link, not checked"}
	}
	rule := c.match(u)
	ruleName := ""
	if rule != nil {
		ruleName = rule.Name
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Result{Verdict: Alive, Rule: ruleName, Reason: "request could not be built: " + err.Error()}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Verdict: Alive, Rule: ruleName, Reason: "fetch failed: " + err.Error()}
	}
	defer resp.Body.Close()

	final := resp.Request.URL
	res := Result{Rule: ruleName, StatusCode: resp.StatusCode, FinalURL: final.String()}

	if c.isLandingPage(final) {
		res.Verdict, res.Reason = Dead, "redirected to platform landing page"
		return res
	}
	if strings.Contains(final.Path, "/404") {
		res.Verdict, res.Reason = Dead, "redirected to a 404 page"
		return res
	}

	if rule != nil && rule.inspectsBody() {
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
		if err != nil {
			res.Verdict, res.Reason = Alive, "body unreadable: "+err.Error()
			return res
		}
		if rule.RequireOGTitle && OGTitle(body) == "" {
			res.Verdict, res.Reason = Dead, "missing og:title"
			return res
		}
		if phrase, ok := containsAny(body, rule.DeadPhrases); ok {
			res.Verdict, res.Reason = Dead, "page says: "+phrase
			return res
		}
		res.Verdict, res.Reason = Alive, "invite page looks valid"
		return res
	}

	if resp.StatusCode == http.StatusOK {
		res.Verdict, res.Reason = Alive, "status 200"
	} else {
		res.Verdict, res.Reason = Dead, "status "+http.StatusText(resp.StatusCode)
	}
	return res
}

func (c *Checker) match(u *url.URL) *Rule {
	for i := range c.rules {
		if c.rules[i].Matches(u) {
			return &c.rules[i]
		}
	}
	return nil
}

func (c *Checker) isLandingPage(final *url.URL) bool {
	got := canonicalPage(final.String())
	for _, r := range c.rules {
		for _, page := range r.LandingPages {
			if got == canonicalPage(page) {
				return true
			}
		}
	}
	return false
}

func canonicalPage(s string) string {
	return strings.TrimRight(strings.ToLower(s), "/")
}

// Sanitize strips non-printable characters (zero-width spaces, control
// characters, stray BOMs) that are often pasted along with invite links
func Sanitize(rawURL string) string {
	cleaned := strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, rawURL)
	return strings.TrimSpace(cleaned)
}

// OGTitle returns the content of the first og:title meta tag in body
func OGTitle(body []byte) string {
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "meta" {
				continue
			}
			var property, content string
			for _, a := range tok.Attr {
				switch strings.ToLower(a.Key) {
				case "property", "name":
					if property == "" || strings.EqualFold(a.Val, "og:title") {
						property = a.Val
					}
				case "content":
					content = a.Val
				}
			}
			if strings.EqualFold(property, "og:title") {
				return strings.TrimSpace(content)
			}
		}
	}
}

func containsAny(body []byte, phrases []string) (string, bool) {
	lower := bytes.ToLower(body)
	for _, p := range phrases {
		if p != "" && bytes.Contains(lower, []byte(strings.ToLower(p))) {
			return p, true
		}
	}
	return "", false
}
