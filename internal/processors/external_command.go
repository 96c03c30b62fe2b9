package processors

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Default Graphviz binaries.
const (
	DefaultDotBinary   = "dot"
	DefaultNeatoBinary = "neato"
)

// ExecutionFailure is returned when an external command fails.
type ExecutionFailure struct {
	Command string
	Output  string
	Err     error
}

func (e *ExecutionFailure) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("executing %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("executing %s: %v: %s", e.Command, e.Err, e.Output)
}

func (e *ExecutionFailure) Unwrap() error {
	return e.Err
}

// ExternalCommandProcessor renders DOT files into images with a Graphviz
// layout binary.
type ExternalCommandProcessor struct {
	name   string
	binary string
}

// NewDotProcessor creates a processor running the dot layout. An empty binary
// runs DefaultDotBinary from the PATH.
func NewDotProcessor(binary string) *ExternalCommandProcessor {
	if binary == "" {
		binary = DefaultDotBinary
	}
	return &ExternalCommandProcessor{name: "dot", binary: binary}
}

// NewNeatoProcessor creates a processor running the neato layout. An empty
// binary runs DefaultNeatoBinary from the PATH.
func NewNeatoProcessor(binary string) *ExternalCommandProcessor {
	if binary == "" {
		binary = DefaultNeatoBinary
	}
	return &ExternalCommandProcessor{name: "neato", binary: binary}
}

// Name implements Processor.
func (p *ExternalCommandProcessor) Name() string { return p.name }

// AcceptedInputTypes implements Processor.
func (p *ExternalCommandProcessor) AcceptedInputTypes() []ContentType { return []ContentType{Dot} }

// OutputType implements Processor.
func (p *ExternalCommandProcessor) OutputType() ContentType { return PNG }

// Execute renders inputPath into outputPath in the given format.
func (p *ExternalCommandProcessor) Execute(ctx context.Context, inputPath, outputPath string, outputType ContentType) error {
	args := []string{"-T" + string(outputType), "-o", outputPath, inputPath}
	cmd := exec.CommandContext(ctx, p.binary, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return &ExecutionFailure{
			Command: p.binary + " " + strings.Join(args, " "),
			Output:  strings.TrimSpace(output.String()),
			Err:     err,
		}
	}
	return nil
}
