// Package urlgrep extracts URLs from HTML documents.
//
// Only attributes that can actually hold URLs are inspected, per a
// fixed tag/attribute table covering HTML 4.01 and HTML 5. Extracted
// URLs are resolved to absolute form against a base URL and optionally
// filtered by a regular expression.
package urlgrep

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tagAttrs maps HTML tags to the attributes of theirs that hold URLs.
// Attribute order within each entry is fixed so extraction order is
// deterministic.
var tagAttrs = map[string][]string{
	"a":          {"href"},
	"applet":     {"code", "archive", "codebase"},
	"area":       {"href"},
	"audio":      {"src"},
	"base":       {"href"},
	"blockquote": {"cite"},
	"body":       {"background"},
	"button":     {"formaction"},
	"del":        {"cite"},
	"embed":      {"src"},
	"form":       {"action"},
	"frame":      {"longdesc", "src"},
	"head":       {"profile"},
	"html":       {"manifest"},
	"iframe":     {"longdesc", "src"},
	"img":        {"longdesc", "src"},
	"input":      {"formaction", "src"},
	"ins":        {"cite"},
	"link":       {"href"},
	"menuitem":   {"icon"},
	"object":     {"archive", "codebase", "data"},
	"q":          {"cite"},
	"script":     {"src"},
	"source":     {"src"},
	"video":      {"src"},
}

// DefaultBase is the base URL used to resolve relative URLs when no
// other base applies.
const DefaultBase = "http://localhost"

var schemeRe = regexp.MustCompile(`^\w+://`)

// EnsureScheme prepends "http://" to a URL that carries no scheme.
func EnsureScheme(rawurl string) string {
	if schemeRe.MatchString(rawurl) {
		return rawurl
	}
	return "http://" + rawurl
}

// Option configures extraction.
type Option func(*options)

type options struct {
	pattern            string
	preserveDuplicates bool
	base               string
	client             *http.Client
}

// WithPattern sets a regexp that extracted absolute URLs must match
// (unanchored search). Without a pattern, all URLs except those with
// the javascript: scheme are returned.
func WithPattern(pattern string) Option {
	return func(o *options) { o.pattern = pattern }
}

// WithBase sets the base URL for resolving relative URLs. Only
// meaningful for content and file sources; fetched documents use the
// final request URL as base. "http://" is prepended when the scheme is
// left out. A <base href> inside <head> overrides either.
func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// WithDuplicates preserves duplicate URLs instead of keeping only the
// first occurrence of each.
func WithDuplicates() Option {
	return func(o *options) { o.preserveDuplicates = true }
}

// WithHTTPClient sets the client used by FromURL. Defaults to
// http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.client = client }
}

// FromReader extracts matching URLs from an HTML document read from r.
func FromReader(r io.Reader, opts ...Option) ([]string, error) {
	o := build(opts)
	return extract(r, o.baseOrDefault(), o)
}

// FromFile extracts matching URLs from a local HTML document.
func FromFile(path string, opts ...Option) ([]string, error) {
	o := build(opts)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract(f, o.baseOrDefault(), o)
}

// FromURL fetches an HTML document over HTTP and extracts matching
// URLs. The fetched URL — after any redirects — becomes the base for
// resolving relative URLs.
func FromURL(ctx context.Context, rawurl string, opts ...Option) ([]string, error) {
	o := build(opts)

	rawurl = EnsureScheme(rawurl)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	client := o.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return extract(resp.Body, resp.Request.URL.String(), o)
}

func build(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) baseOrDefault() string {
	if o.base == "" {
		return DefaultBase
	}
	return EnsureScheme(o.base)
}

func extract(r io.Reader, base string, o *options) ([]string, error) {
	var pattern *regexp.Regexp
	if o.pattern != "" {
		var err error
		pattern, err = regexp.Compile(o.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	// The HTML <base> tag, which must reside inside <head>, overrides
	// the document base URL.
	if href, ok := doc.Find("head base").First().Attr("href"); ok {
		base = href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	var matched []string
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		attrs, ok := tagAttrs[goquery.NodeName(s)]
		if !ok {
			return
		}
		for _, attr := range attrs {
			val, ok := s.Attr(attr)
			if !ok {
				continue
			}
			ref, err := url.Parse(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			abs := baseURL.ResolveReference(ref).String()
			if matches(abs, pattern) {
				matched = append(matched, abs)
			}
		}
	})

	if o.preserveDuplicates {
		return matched, nil
	}
	return dedupe(matched), nil
}

// matches applies the pattern filter. With no pattern, everything but
// the javascript: scheme passes (the original used a negative
// lookahead, which Go's regexp does not support).
func matches(u string, pattern *regexp.Regexp) bool {
	if pattern == nil {
		return !strings.HasPrefix(u, "javascript:")
	}
	return pattern.MatchString(u)
}

// dedupe keeps the first occurrence of each URL.
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	var out []string
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
