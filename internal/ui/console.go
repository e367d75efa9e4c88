// Package ui holds the terminal-facing pieces: the user interface contract,
// the console implementation, markdown rendering and the confirmation prompt.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ConsoleUI implements UserInterface over plain reader/writer streams. When
// interactive, confirmations and spinners use the richer terminal widgets.
type ConsoleUI struct {
	in          *bufio.Reader
	out         io.Writer
	renderer    MarkdownRenderer
	interactive bool

	readerOnce sync.Once
	lines      chan lineResult

	spinner *Spinner
}

type lineResult struct {
	line string
	err  error
}

// NewConsoleUI creates a ConsoleUI. A nil renderer falls back to plain text.
func NewConsoleUI(in io.Reader, out io.Writer, renderer MarkdownRenderer, interactive bool) *ConsoleUI {
	if renderer == nil {
		renderer = PlainRenderer{}
	}
	return &ConsoleUI{
		in:          bufio.NewReader(in),
		out:         out,
		renderer:    renderer,
		interactive: interactive,
	}
}

// NewStandardUI creates a ConsoleUI over stdin/stdout with markdown
// rendering when stdout looks like a terminal.
func NewStandardUI() *ConsoleUI {
	interactive := isTerminal(os.Stdout)
	var renderer MarkdownRenderer = PlainRenderer{}
	if interactive {
		if g, err := NewGlamourRenderer(0); err == nil {
			renderer = g
		}
	}
	return NewConsoleUI(os.Stdin, os.Stdout, renderer, interactive)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ReadInput prompts for a line of input. A single reader goroutine owns the
// underlying stream; when a read is abandoned on context cancellation, the
// line it eventually produces is handed to the next call instead of lost.
func (c *ConsoleUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	c.stopSpinner()
	fmt.Fprint(c.out, PromptStyle.Render(prompt))
	c.readerOnce.Do(func() {
		c.lines = make(chan lineResult)
		go func() {
			for {
				line, err := c.in.ReadString('\n')
				c.lines <- lineResult{line: line, err: err}
			}
		}()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-c.lines:
		if res.err != nil && res.line == "" {
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// Confirm asks a yes/no question. Interactive terminals get the key-driven
// prompt; otherwise a y/N line read. Anything but an explicit yes is no.
func (c *ConsoleUI) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.stopSpinner()
	if c.interactive {
		return RunConfirm(ctx, prompt)
	}

	answer, err := c.ReadInput(ctx, prompt+" [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// WriteStatus shows an ephemeral status line. On interactive terminals the
// thinking phase becomes a spinner.
func (c *ConsoleUI) WriteStatus(phase, message string) {
	c.stopSpinner()
	if c.interactive && phase == "thinking" {
		c.spinner = StartSpinner(message)
		return
	}
	fmt.Fprintln(c.out, StatusStyle.Render(fmt.Sprintf("[%s] %s", phase, message)))
}

// WriteMessage renders an agent response to the terminal.
func (c *ConsoleUI) WriteMessage(content string) {
	c.stopSpinner()
	rendered, err := c.renderer.Render(content)
	if err != nil {
		rendered = content
	}
	fmt.Fprintln(c.out, rendered)
}

func (c *ConsoleUI) stopSpinner() {
	if c.spinner != nil {
		c.spinner.Stop()
		c.spinner = nil
	}
}
