// Package actions wires finding, parsing, processing and saving into the
// commands phuml runs.
package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Benny93/phuml-go/internal/code"
	"github.com/Benny93/phuml-go/internal/parser"
)

// Phases reported to a ProgressCallback.
const (
	PhaseParsing    = "parsing"
	PhaseProcessing = "processing"
	PhaseSaving     = "saving"
)

// ProgressCallback is called with phase name and progress (0.0-1.0).
type ProgressCallback func(phase string, progress float64)

// Source is the code an action reads.
type Source struct {
	// Directory is the directory holding the source files.
	Directory string

	// Recursive also reads the subdirectories of Directory.
	Recursive bool
}

// action holds what every action shares.
type action struct {
	parser   *parser.CodeParser
	progress ProgressCallback
}

func (a action) report(phase string, progress float64) {
	if a.progress != nil {
		a.progress(phase, progress)
	}
}

// parse finds the source files and resolves them into a codebase.
func (a action) parse(ctx context.Context, source Source) (*code.Codebase, error) {
	a.report(PhaseParsing, 0.0)

	finder := parser.NewCodeFinder(a.parser.Traverser())
	if err := finder.AddDirectory(source.Directory, source.Recursive); err != nil {
		return nil, fmt.Errorf("finding code: %w", err)
	}

	codebase, err := a.parser.Parse(ctx, finder.Files())
	if err != nil {
		return nil, err
	}

	a.report(PhaseParsing, 1.0)
	return codebase, nil
}

// save writes content to path, creating its directory when needed.
func (a action) save(path string, content []byte) (err error) {
	a.report(PhaseSaving, 0.0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	a.report(PhaseSaving, 1.0)
	return nil
}
