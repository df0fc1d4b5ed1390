// apps/go-solver/assets/embed.go
//
// Embedded default word lists, used when no word file or remote page is
// configured. Parsing lives in internal/words.

package assets

import (
	"embed"
	"fmt"
	"io"
)

// Names of the embedded lists.
const (
	Answers = "answers.txt" // candidate answers
	Allowed = "allowed.txt" // accepted guesses (superset of answers)
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// Open returns the named embedded list.
func Open(name string) (io.ReadCloser, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	return f, nil
}
