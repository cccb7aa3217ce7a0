// Package prompt reads user input for the interactive shell and shows
// status messages.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/dshills/vimcore/internal/vim/action"
	"github.com/dshills/vimcore/internal/vim/editor"
)

// LineReader reads whole lines and satisfies action.Input.
type LineReader interface {
	action.Input
	// ReadLine reads a command line. It returns io.EOF at end of input.
	ReadLine(prompt string) (string, error)
	Close() error
}

// New returns a line-editing reader when stdin is a terminal and a plain
// reader otherwise.
func New() LineReader {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewLiner()
	}
	return NewReader(os.Stdin, os.Stdout)
}

// Liner reads lines with editing and history.
type Liner struct {
	state *liner.State
}

// NewLiner puts the terminal into line-editing mode. Call Close to restore
// it.
func NewLiner() *Liner {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	return &Liner{state: st}
}

// InputString prompts with initial pre-filled. Ctrl-C and end of input
// cancel.
func (l *Liner) InputString(_ editor.Editor, prompt, initial string) (string, error) {
	line, err := l.state.PromptWithSuggestion(prompt, initial, -1)
	if err != nil {
		return "", cancelled(err)
	}
	if line != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// ReadLine reads a command. Ctrl-C reports io.EOF.
func (l *Liner) ReadLine(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// ReadHistory loads history previously written by WriteHistory.
func (l *Liner) ReadHistory(r io.Reader) (int, error) {
	return l.state.ReadHistory(r)
}

// WriteHistory saves the history.
func (l *Liner) WriteHistory(w io.Writer) (int, error) {
	return l.state.WriteHistory(w)
}

// Close restores the terminal.
func (l *Liner) Close() error {
	return l.state.Close()
}

// Reader reads lines from a plain stream, echoing prompts to out.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader returns a Reader on in. Prompts go to out, which may be nil.
func NewReader(in io.Reader, out io.Writer) *Reader {
	if out == nil {
		out = io.Discard
	}
	return &Reader{in: bufio.NewReader(in), out: out}
}

// InputString reads one line. The initial text is shown but not editable;
// an empty answer keeps it.
func (r *Reader) InputString(_ editor.Editor, prompt, initial string) (string, error) {
	if initial != "" {
		fmt.Fprintf(r.out, "%s[%s] ", prompt, initial)
	} else {
		fmt.Fprint(r.out, prompt)
	}
	line, err := r.readLine()
	if err != nil {
		return "", cancelled(err)
	}
	if line == "" {
		return initial, nil
	}
	return line, nil
}

// ReadLine reads one command line.
func (r *Reader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	return r.readLine()
}

func (r *Reader) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close does nothing.
func (r *Reader) Close() error {
	return nil
}

func cancelled(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return action.ErrCancelled
	}
	return err
}

// StatusLine writes messages to a stream, one per line, and rings the
// terminal bell on errors.
type StatusLine struct {
	W io.Writer
}

// ShowMessage prints msg.
func (s StatusLine) ShowMessage(msg string) {
	fmt.Fprintln(s.W, msg)
}

// IndicateError rings the bell.
func (s StatusLine) IndicateError() {
	fmt.Fprint(s.W, "\a")
}
