package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr"
)

// Host reports step outputs and failures to the GitHub Actions runner.
type Host struct {
	w          io.Writer
	outputFile string
}

type Option func(*Host)

// WithOutputFile sets the path of the file referred by GITHUB_OUTPUT.
func WithOutputFile(path string) Option {
	return func(x *Host) {
		x.outputFile = path
	}
}

// WithWriter sets the destination of workflow commands. Default is stdout.
func WithWriter(w io.Writer) Option {
	return func(x *Host) {
		x.w = w
	}
}

func New(options ...Option) *Host {
	x := &Host{w: os.Stdout}
	for _, opt := range options {
		opt(x)
	}
	return x
}

// SetOutput sets a step output. Without an output file it falls back to the
// deprecated set-output workflow command.
func (x *Host) SetOutput(name, value string) error {
	if x.outputFile == "" {
		_, err := fmt.Fprintf(x.w, "::set-output name=%s::%s\n", escapeProperty(name), escapeData(value))
		if err != nil {
			return goerr.Wrap(err, "failed to write set-output command")
		}
		return nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return goerr.New("unexpected delimiter in output").With("name", name)
	}

	f, err := os.OpenFile(x.outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open output file").With("path", x.outputFile)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter); err != nil {
		return goerr.Wrap(err, "failed to write output file").With("path", x.outputFile)
	}
	return nil
}

// SetFailed reports msg as an error annotation of the step.
func (x *Host) SetFailed(msg string) {
	fmt.Fprintf(x.w, "::error::%s\n", escapeData(msg))
}

func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}

func escapeProperty(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C").Replace(s)
}
