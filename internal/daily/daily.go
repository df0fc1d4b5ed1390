// apps/go-solver/internal/daily/daily.go
//
// Puzzle-of-the-day selection for offline play: every run on the same UTC
// date with the same salt picks the same answer.

package daily

import (
	"encoding/binary"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using a BLAKE2b-256
// MAC of the date key, keyed with salt, modulo answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// Only reachable with an over-long key, which is hashed down above.
		panic(err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes → uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answer picks the day's word from answers.
func Answer(date time.Time, salt string, answers []string) (string, bool) {
	if len(answers) == 0 {
		return "", false
	}
	return answers[WordIndex(date, salt, len(answers))], true
}
