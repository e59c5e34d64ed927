// Package console reads line-based answers from a player.
package console

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrTooManyInvalid is returned when a player keeps entering unusable input.
var ErrTooManyInvalid = stderrors.New("too many invalid inputs")

const invalidInput = "Invalid input. Please try again:"

// Prompter writes prompts to out and reads one answer per line from in.
// Every read returns io.EOF once input is exhausted.
type Prompter struct {
	in         *bufio.Scanner
	out        io.Writer
	maxInvalid int
}

// New creates a Prompter. maxInvalid bounds how often a numeric prompt is
// repeated before giving up; values below 1 are treated as 1.
func New(in io.Reader, out io.Writer, maxInvalid int) *Prompter {
	if maxInvalid < 1 {
		maxInvalid = 1
	}
	return &Prompter{in: bufio.NewScanner(in), out: out, maxInvalid: maxInvalid}
}

// Printf writes formatted text to the player.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the player.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt (if any) and returns the next trimmed line.
func (p *Prompter) Line(prompt string) (string, error) {
	if prompt != "" {
		p.Println(prompt)
	}
	return p.next()
}

func (p *Prompter) next() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// NonEmpty keeps asking until the player enters something.
func (p *Prompter) NonEmpty(prompt string) (string, error) {
	line, err := p.Line(prompt)
	for tries := 1; err == nil && line == ""; tries++ {
		if tries >= p.maxInvalid {
			return "", ErrTooManyInvalid
		}
		p.Println(invalidInput)
		line, err = p.next()
	}
	return line, err
}

// Choice returns an integer in [min, max], re-prompting on non-numeric or
// out-of-range input.
func (p *Prompter) Choice(prompt string, min, max int) (int, error) {
	if prompt != "" {
		p.Println(prompt)
	}
	for tries := 0; tries < p.maxInvalid; tries++ {
		line, err := p.next()
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(line); err == nil && n >= min && n <= max {
			return n, nil
		}
		p.Println(invalidInput)
	}
	return 0, ErrTooManyInvalid
}

// YesNo returns true only for "yes" (any case) or "y".
func (p *Prompter) YesNo(prompt string) (bool, error) {
	line, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(line, "yes") || strings.EqualFold(line, "y"), nil
}

// Rule prints the horizontal separator used between screens.
func (p *Prompter) Rule() {
	p.Println(strings.Repeat("-", 60))
}
