package host

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/indaco/csprojver/internal/core"
)

// ActionsHost talks to the GitHub Actions runner through INPUT_* variables,
// workflow commands on stdout and the $GITHUB_OUTPUT file.
type ActionsHost struct {
	out    io.Writer
	getenv func(string) string
	failed bool
}

// NewActionsHost returns an ActionsHost writing workflow commands to out.
func NewActionsHost(out io.Writer) *ActionsHost {
	if out == nil {
		out = os.Stdout
	}
	return &ActionsHost{out: out, getenv: os.Getenv}
}

func (h *ActionsHost) Input(name string) string {
	return strings.TrimSpace(h.getenv(inputEnvName(name)))
}

func (h *ActionsHost) Info(msg string) {
	fmt.Fprintln(h.out, msg)
}

func (h *ActionsHost) SetFailed(msg string) {
	h.failed = true
	fmt.Fprintf(h.out, "::error::%s\n", escapeData(msg))
}

func (h *ActionsHost) Failed() bool {
	return h.failed
}

// SetOutput appends name to the $GITHUB_OUTPUT file. Multi-line values use
// the heredoc form with a random delimiter. Without $GITHUB_OUTPUT the value
// is dropped.
func (h *ActionsHost) SetOutput(name, value string) error {
	path := h.getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	var entry string
	if strings.ContainsAny(value, "\r\n") {
		delimiter, err := newDelimiter()
		if err != nil {
			return err
		}
		entry = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		entry = fmt.Sprintf("%s=%s\n", name, value)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, core.PermOwnerRW)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT file %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write output %q: %w", name, err)
	}
	return nil
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func newDelimiter() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate output delimiter: %w", err)
	}
	return "ghadelimiter_" + hex.EncodeToString(buf), nil
}
