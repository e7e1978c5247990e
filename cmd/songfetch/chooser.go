package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"songfetch/internal/search"
)

// terminalChooser asks the user to pick among search candidates. A terminal
// gets an arrow-key menu; anything else gets a numbered prompt read line by
// line, and end of input picks the first candidate.
type terminalChooser struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newTerminalChooser(in io.Reader, out io.Writer) *terminalChooser {
	return &terminalChooser{in: in, out: out}
}

func (c *terminalChooser) Choose(ctx context.Context, title string, options []search.Candidate) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if isTerminal(c.in) && isTerminal(c.out) {
		return c.chooseMenu(title, options)
	}
	return c.choosePrompt(title, options)
}

func (c *terminalChooser) chooseMenu(title string, options []search.Candidate) (int, error) {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = fmt.Sprintf("%s  (%s)", opt.Label, opt.Link)
	}
	prompt := &survey.Select{
		Message:  fmt.Sprintf("Pick a result for %q:", title),
		Options:  labels,
		PageSize: 10,
	}
	selected := 0
	if err := survey.AskOne(prompt, &selected); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return 0, context.Canceled
		}
		return 0, err
	}
	return selected, nil
}

func (c *terminalChooser) choosePrompt(title string, options []search.Candidate) (int, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.in)
	}
	fmt.Fprintf(c.out, "Results for %q:\n", title)
	for i, opt := range options {
		fmt.Fprintf(c.out, "  %d) %s\n     %s\n", i+1, opt.Label, opt.Link)
	}
	fmt.Fprintf(c.out, "Choose [1-%d, default 1]: ", len(options))

	line, err := c.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read choice: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Fprintln(c.out)
		return 0, nil
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil {
		return 0, fmt.Errorf("choice %q is not a number", line)
	}
	return n - 1, nil
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
