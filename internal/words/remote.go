// apps/go-solver/internal/words/remote.go
//
// Remote reads the word list straight out of the live puzzle page.
//
// The page ships its list inside a script bundle whose file name contains
// "wordle.". The list is a JSON-ish array of quoted words that starts with
// the marker word (alphabetically first entry, "aahed").

package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const (
	defaultMarker       = "aahed"
	defaultBundleSubstr = "wordle."
	maxBody             = 16 << 20
)

// Remote scrapes the dictionary from the puzzle page.
// When the bundle or the marker cannot be found, Words returns an empty
// list and no error; the engine then reports no candidates.
type Remote struct {
	PageURL string
	Client  *http.Client // default: 30s timeout
	Marker  string       // default "aahed"
	Bundle  string       // script src substring, default "wordle."
}

// Words implements Source.
func (r *Remote) Words(ctx context.Context) ([]string, error) {
	page, err := r.get(ctx, r.PageURL)
	if err != nil {
		return nil, err
	}
	src, err := r.bundleURL(page)
	if err != nil {
		return nil, err
	}
	if src == "" {
		log.Warn().Str("url", r.PageURL).Msg("word list bundle not found")
		return nil, nil
	}
	bundle, err := r.get(ctx, src)
	if err != nil {
		return nil, err
	}
	list := ExtractList(bundle, r.marker())
	if len(list) == 0 {
		log.Warn().Str("bundle", src).Str("marker", r.marker()).Msg("word list marker not found")
		return nil, nil
	}
	log.Info().Str("bundle", src).Int("words", len(list)).Msg("loaded remote word list")
	return list, nil
}

// ExtractList slices the quoted word array that starts at marker out of a
// script body: from the marker up to the next ']', quotes removed, split on
// commas, then normalised.
func ExtractList(content, marker string) []string {
	i := strings.Index(content, marker)
	if i < 0 {
		return nil
	}
	content = content[i:]
	if j := strings.Index(content, "]"); j >= 0 {
		content = content[:j]
	}
	content = strings.NewReplacer(`"`, "", `'`, "").Replace(content)
	return Normalize(strings.Split(content, ","))
}

func (r *Remote) marker() string {
	if r.Marker == "" {
		return defaultMarker
	}
	return r.Marker
}

func (r *Remote) client() *http.Client {
	if r.Client == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return r.Client
}

// bundleURL finds the first <script src> containing the bundle substring and
// resolves it against the page URL.
func (r *Remote) bundleURL(page string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("words: parse page: %w", err)
	}
	needle := r.Bundle
	if needle == "" {
		needle = defaultBundleSubstr
	}
	src := findScript(doc, needle)
	if src == "" {
		return "", nil
	}
	base, err := url.Parse(r.PageURL)
	if err != nil {
		return "", fmt.Errorf("words: page url: %w", err)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("words: script src %q: %w", src, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func findScript(n *html.Node, needle string) string {
	if n.Type == html.ElementNode && n.Data == "script" {
		if src := getAttr(n, "src"); strings.Contains(src, needle) {
			return src
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if src := findScript(c, needle); src != "" {
			return src
		}
	}
	return ""
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func (r *Remote) get(ctx context.Context, u string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("words: %w", err)
	}
	resp, err := r.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("words: fetch %s: %w", u, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("words: fetch %s: status %d", u, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("words: read %s: %w", u, err)
	}
	return string(b), nil
}
