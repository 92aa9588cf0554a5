package host

import (
	"fmt"
	"io"
	"os"

	"github.com/indaco/csprojver/internal/printer"
)

// StaticHost serves inputs from a fixed map and prints status to the terminal.
// It is used when csprojver runs as a plain CLI.
type StaticHost struct {
	inputs  map[string]string
	outputs map[string]string
	failed  bool

	// Out receives status lines; Err receives failures.
	Out io.Writer
	Err io.Writer
}

// NewStaticHost returns a StaticHost over inputs.
func NewStaticHost(inputs map[string]string) *StaticHost {
	return &StaticHost{
		inputs:  inputs,
		outputs: make(map[string]string),
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
}

func (h *StaticHost) Input(name string) string {
	return h.inputs[name]
}

func (h *StaticHost) Info(msg string) {
	fmt.Fprintln(h.Out, printer.Success(msg))
}

func (h *StaticHost) SetFailed(msg string) {
	h.failed = true
	fmt.Fprintln(h.Err, printer.Error(msg))
}

func (h *StaticHost) Failed() bool {
	return h.failed
}

func (h *StaticHost) SetOutput(name, value string) error {
	h.outputs[name] = value
	return nil
}

// Output returns a value recorded by SetOutput.
func (h *StaticHost) Output(name string) (string, bool) {
	v, ok := h.outputs[name]
	return v, ok
}
