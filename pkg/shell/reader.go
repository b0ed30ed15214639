package shell

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned by Prompt when the user presses Ctrl-C.
var ErrAborted = stderrors.New("prompt aborted")

// LineReader reads one line of input per prompt. Prompt returns io.EOF when
// input ends (Ctrl-D) and ErrAborted when the current prompt is cancelled.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// terminalReader edits lines with liner.
type terminalReader struct {
	state       *liner.State
	historyFile string
}

// NewTerminalReader returns a liner-backed reader with tab completion and
// prompt history persisted to historyFile ("" or "none" disables it).
func NewTerminalReader(historyFile string, complete func(string) []string) LineReader {
	state := liner.NewLiner()

	// Enable Ctrl+C to abort current line
	state.SetCtrlCAborts(true)

	if complete != nil {
		state.SetCompleter(complete)
	}

	if historyFile == "none" {
		historyFile = ""
	}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}
	return &terminalReader{state: state, historyFile: historyFile}
}

// TerminalSupported reports whether line editing is available.
func TerminalSupported() bool {
	return liner.TerminalSupported()
}

func (r *terminalReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if stderrors.Is(err, liner.ErrPromptAborted) {
		return "", ErrAborted
	}
	return line, err
}

func (r *terminalReader) AppendHistory(line string) {
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
}

// Close saves the prompt history and restores the terminal.
func (r *terminalReader) Close() error {
	if r.historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(r.historyFile), 0755); err == nil {
			if f, err := os.Create(r.historyFile); err == nil {
				r.state.WriteHistory(f)
				f.Close()
			}
		}
	}
	return r.state.Close()
}

// scriptReader reads lines from a plain reader, for pipes and tests.
type scriptReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScriptReader returns a reader that echoes each prompt to out and
// reads the answer from in.
func NewScriptReader(in io.Reader, out io.Writer) LineReader {
	return &scriptReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *scriptReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		fmt.Fprintln(r.out)
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

func (r *scriptReader) AppendHistory(string) {}

func (r *scriptReader) Close() error { return nil }
