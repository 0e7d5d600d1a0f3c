// Package prompt asks the operator for run parameters. It reads lines from
// an io.Reader and writes prompts to an io.Writer so tests can script a
// session.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/repofill/repofill/internal/model"
)

type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Mode asks for the execution speed. Anything other than "s" selects fast.
func (p *Prompter) Mode() (model.Mode, error) {
	fmt.Fprint(p.out, "Choose execution speed - Enter F for SUPER FAST or S for SLOW: ")
	line, err := p.readLine()
	if err != nil {
		return model.ModeFast, err
	}
	return model.ParseMode(line), nil
}

// Count asks for an integer no smaller than min.
func (p *Prompter) Count(label string, min int) (int, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid input %q: enter a numeric value", strings.TrimSpace(line))
	}
	if n < min {
		return 0, fmt.Errorf("invalid input %d: enter a value of at least %d", n, min)
	}
	return n, nil
}

func (p *Prompter) readLine() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", fmt.Errorf("read input: %w", io.EOF)
	}
	return p.in.Text(), nil
}
