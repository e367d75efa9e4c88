package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputTrimsLine(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleUI(strings.NewReader("  hello world  \n"), &out, nil, false)

	line, err := c.ReadInput(context.Background(), "You: ")
	require.NoError(t, err)
	assert.Equal(t, "hello world", line)
	assert.Contains(t, out.String(), "You: ")
}

func TestReadInputContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A reader that never delivers a line
	c := NewConsoleUI(blockingReader{}, &bytes.Buffer{}, nil, false)
	_, err := c.ReadInput(ctx, "> ")
	assert.ErrorIs(t, err, context.Canceled)
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) { select {} }

// gatedReader blocks until released, then serves its data.
type gatedReader struct {
	release <-chan struct{}
	data    string
	r       io.Reader
}

func (g *gatedReader) Read(p []byte) (int, error) {
	<-g.release
	if g.r == nil {
		g.r = strings.NewReader(g.data)
	}
	return g.r.Read(p)
}

func TestReadInputResumesAfterCancelledRead(t *testing.T) {
	release := make(chan struct{})
	c := NewConsoleUI(&gatedReader{release: release, data: "first\nsecond\n"}, &bytes.Buffer{}, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ReadInput(ctx, "> ")
	require.ErrorIs(t, err, context.Canceled)

	// The line the abandoned read was waiting for goes to the next call;
	// no second reader races on the stream.
	close(release)
	line, err := c.ReadInput(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = c.ReadInput(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "second", line)
}

func TestConfirmLineAnswers(t *testing.T) {
	cases := map[string]bool{
		"y\n":     true,
		"Y\n":     true,
		"yes\n":   true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
	}
	for input, want := range cases {
		c := NewConsoleUI(strings.NewReader(input), &bytes.Buffer{}, nil, false)
		got, err := c.Confirm(context.Background(), "Run it?")
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
	}
}

func TestWriteMessageUsesRenderer(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleUI(strings.NewReader(""), &out, upperRenderer{}, false)

	c.WriteMessage("hello")
	assert.Contains(t, out.String(), "HELLO")
}

type upperRenderer struct{}

func (upperRenderer) Render(markdown string) (string, error) {
	return strings.ToUpper(markdown), nil
}

func TestWriteStatusNonInteractive(t *testing.T) {
	var out bytes.Buffer
	c := NewConsoleUI(strings.NewReader(""), &out, nil, false)

	c.WriteStatus("thinking", "Generating response...")
	assert.Contains(t, out.String(), "thinking")
	assert.Contains(t, out.String(), "Generating response...")
}
