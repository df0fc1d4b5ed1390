package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// prompter is the guess sink and feedback source for the assist command:
// guesses are printed, tile patterns are typed back.
//
// Input is read on its own goroutine so a cancelled context (Ctrl-C)
// interrupts a pending prompt.
type prompter struct {
	lines   <-chan string
	scanErr error // set before lines is closed
	out     io.Writer
	last    string
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	lines := make(chan string)
	p := &prompter{lines: lines, out: out}
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
		p.scanErr = sc.Err()
	}()
	return p
}

func (p *prompter) Submit(ctx context.Context, word string) error {
	p.last = word
	_, err := fmt.Fprintf(p.out, "guess: %s\n", strings.ToUpper(word))
	return err
}

// Feedback reads one line per attempt until it parses. A line is either a
// pattern for the suggested word or "word pattern".
func (p *prompter) Feedback(ctx context.Context) (feedback.GuessRow, error) {
	for {
		fmt.Fprintf(p.out, "tiles for %s (g/y/b): ", p.last)
		var line string
		select {
		case <-ctx.Done():
			return feedback.GuessRow{}, ctx.Err()
		case l, ok := <-p.lines:
			if !ok {
				if p.scanErr != nil {
					return feedback.GuessRow{}, p.scanErr
				}
				return feedback.GuessRow{}, io.ErrUnexpectedEOF
			}
			line = l
		}
		row, err := parseLine(p.last, line)
		if err == nil {
			return row, nil
		}
		fmt.Fprintf(p.out, "  %v\n", err)
	}
}

func parseLine(word, line string) (feedback.GuessRow, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		return feedback.ParsePattern(word, fields[0])
	case 2:
		return feedback.ParsePattern(strings.ToLower(fields[0]), fields[1])
	default:
		return feedback.GuessRow{}, fmt.Errorf("%w: want \"pattern\" or \"word pattern\"", feedback.ErrMalformedRow)
	}
}
