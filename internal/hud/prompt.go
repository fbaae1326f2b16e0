package hud

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPromptCancelled is returned by a Prompter when the operator gives up.
var ErrPromptCancelled = errors.New("prompt cancelled")

//go:generate mockgen -source=prompt.go -destination=mocks/mock_prompter.go -package=mocks Prompter

// Prompter asks an operator to correct a value the loader could not parse.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// ConsolePrompter reads corrections line by line from a terminal.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	return &ConsolePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt writes message and returns the next input line without its line
// ending. A final line without a newline still counts; end of input with
// nothing read cancels the prompt.
func (p *ConsolePrompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(p.out, message); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line == "":
		return "", ErrPromptCancelled
	case err != nil && !errors.Is(err, io.EOF):
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
