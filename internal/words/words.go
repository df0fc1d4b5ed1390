// apps/go-solver/internal/words/words.go
//
// Provides the dictionaries the solver works from.
//
// Responsibilities:
//   - Read word lists from files, the embedded defaults, or the live puzzle page.
//   - Normalise lists (lowercase, trimmed, 5 letters a–z, no duplicates).
//   - Pick the sources from configuration.
//
// Word Lists:
//   - "answers": candidate solutions; this is the solver's dictionary.
//   - "allowed": accepted guesses (always includes answers); used by the offline game.
//
// Source selection (Sources):
//   1. If RemoteURL is set, the page's word list is used for both lists.
//   2. If AnswersFile and AllowedFile are both set, each file feeds its list.
//   3. If only AllowedFile is set, that file feeds both lists.
//   4. If only AnswersFile is set, it feeds both lists.
//   5. Otherwise the embedded defaults are used.

package words

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Source produces a word list.
type Source interface {
	Words(ctx context.Context) ([]string, error)
}

// Config selects the sources; see Sources.
type Config struct {
	AnswersFile string
	AllowedFile string
	RemoteURL   string
}

// Sources returns the answers and allowed-guess sources for cfg.
func Sources(cfg Config) (answers, allowed Source) {
	switch {
	case cfg.RemoteURL != "":
		r := &Remote{PageURL: cfg.RemoteURL}
		return r, r
	case cfg.AnswersFile != "" && cfg.AllowedFile != "":
		return File{Path: cfg.AnswersFile}, Merged{File{Path: cfg.AnswersFile}, File{Path: cfg.AllowedFile}}
	case cfg.AllowedFile != "":
		f := File{Path: cfg.AllowedFile}
		return f, f
	case cfg.AnswersFile != "":
		f := File{Path: cfg.AnswersFile}
		return f, f
	default:
		return Embedded{Name: assets.Answers}, Merged{Embedded{Name: assets.Answers}, Embedded{Name: assets.Allowed}}
	}
}

// Embedded reads one of the lists compiled into the binary.
type Embedded struct {
	Name string // assets.Answers or assets.Allowed
}

// Words implements Source.
func (e Embedded) Words(ctx context.Context) ([]string, error) {
	f, err := assets.Open(e.Name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadList(f)
}

// File reads one word per line from a file on disk.
type File struct {
	Path string
}

// Words implements Source.
func (s File) Words(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("words: %w", err)
	}
	defer f.Close()
	return ReadList(f)
}

// Merged concatenates several sources, keeping the first occurrence of each word.
type Merged []Source

// Words implements Source.
func (m Merged) Words(ctx context.Context) ([]string, error) {
	var all []string
	for _, s := range m {
		list, err := s.Words(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	return Normalize(all), nil
}

// Static is a fixed in-memory list.
type Static []string

// Words implements Source.
func (s Static) Words(ctx context.Context) ([]string, error) { return Normalize(s), nil }

// ReadList reads one word per line, skipping blank lines and # comments,
// and normalises the result.
func ReadList(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read list: %w", err)
	}
	return Normalize(out), nil
}

// Normalize lowercases and trims every entry, keeps only 5-letter a–z words,
// and drops duplicates while preserving first-seen order.
func Normalize(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if !feedback.IsWord(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Set is a lookup set of words.
type Set map[string]struct{}

// ToSet converts a list of words into a Set.
func ToSet(list []string) Set {
	m := make(Set, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// Has reports whether w is in the set (case-insensitive).
func (s Set) Has(w string) bool {
	_, ok := s[strings.ToLower(w)]
	return ok
}
