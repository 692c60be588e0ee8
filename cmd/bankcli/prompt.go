package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from stdin. All prompts share one buffered reader
// so piped input is not lost between questions.
type prompter struct {
	stdin  io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(stdin io.Reader, out io.Writer) *prompter {
	return &prompter{stdin: stdin, reader: bufio.NewReader(stdin), out: out}
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads without echo when stdin is a terminal.
func (p *prompter) secret(prompt string) (string, error) {
	if f, ok := p.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out) // Print newline after password input
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	return p.line(prompt)
}
