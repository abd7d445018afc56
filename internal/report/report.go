// Package report publishes step outputs.
//
// On a CI runner that exposes GITHUB_OUTPUT, outputs are appended to that
// file using the multi-line "name<<DELIMITER" syntax. Elsewhere they are
// printed to standard output.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// OutputFileEnv names the variable holding the runner's output file.
const OutputFileEnv = "GITHUB_OUTPUT"

// Output is one named step output.
type Output struct {
	Name  string
	Value string
}

// Writer publishes outputs.
type Writer struct {
	// Path is the output file. Empty means Stdout is used.
	Path   string
	Stdout io.Writer
	// NewDelimiter returns a heredoc delimiter; tests replace it.
	NewDelimiter func() string
}

// NewWriter returns a Writer configured from the environment.
func NewWriter() *Writer {
	return &Writer{
		Path:         os.Getenv(OutputFileEnv),
		Stdout:       os.Stdout,
		NewDelimiter: func() string { return "ghadelimiter_" + uuid.NewString() },
	}
}

// Write publishes outputs in order.
func (w *Writer) Write(outputs ...Output) error {
	if w.Path == "" {
		return w.print(outputs)
	}

	// #nosec G304 - the path is provided by the CI runner
	f, err := os.OpenFile(w.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	var b strings.Builder
	for _, o := range outputs {
		block, err := w.heredoc(o)
		if err != nil {
			_ = f.Close()
			return err
		}
		b.WriteString(block)
	}

	if _, err := io.WriteString(f, b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}

func (w *Writer) heredoc(o Output) (string, error) {
	delim := w.NewDelimiter()
	if strings.Contains(o.Name, delim) || strings.Contains(o.Value, delim) {
		return "", fmt.Errorf("output %s contains its delimiter", o.Name)
	}

	value := o.Value
	if !strings.HasSuffix(value, "\n") {
		value += "\n"
	}
	return fmt.Sprintf("%s<<%s\n%s%s\n", o.Name, delim, value, delim), nil
}

func (w *Writer) print(outputs []Output) error {
	out := w.Stdout
	if out == nil {
		out = os.Stdout
	}
	for _, o := range outputs {
		if o.Value == "" {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s:\n%s", o.Name, o.Value); err != nil {
			return fmt.Errorf("failed to print outputs: %w", err)
		}
		if !strings.HasSuffix(o.Value, "\n") {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return fmt.Errorf("failed to print outputs: %w", err)
			}
		}
	}
	return nil
}
