// Package processors turns a codebase into the artifacts phuml produces: DOT
// text, statistics reports and images rendered by external Graphviz binaries.
package processors

import (
	"fmt"
	"slices"
	"strings"
)

// ContentType is the kind of content a processor consumes or produces.
type ContentType string

const (
	Code ContentType = "code"
	Dot  ContentType = "dot"
	PNG  ContentType = "png"
	Text ContentType = "text"
)

// Processor is one stage of a processing chain.
type Processor interface {
	// Name identifies the processor in errors and progress reports.
	Name() string

	// AcceptedInputTypes lists the content types the processor consumes.
	AcceptedInputTypes() []ContentType

	// OutputType is the content type the processor produces.
	OutputType() ContentType
}

// IncompatibleProcessorsError is returned when a processor cannot consume the
// output of the processor before it.
type IncompatibleProcessorsError struct {
	Previous string
	Next     string
	Output   ContentType
	Accepted []ContentType
}

func (e *IncompatibleProcessorsError) Error() string {
	accepted := make([]string, len(e.Accepted))
	for i, t := range e.Accepted {
		accepted[i] = string(t)
	}
	return fmt.Sprintf("processor %s produces %s but %s accepts only [%s]",
		e.Previous, e.Output, e.Next, strings.Join(accepted, ", "))
}

// Chain is a sequence of processors where every processor accepts the output
// of the one before it.
type Chain struct {
	processors []Processor
}

// NewChain validates the processors and returns them as a chain.
func NewChain(processors ...Processor) (*Chain, error) {
	for i := 1; i < len(processors); i++ {
		previous, next := processors[i-1], processors[i]
		if !slices.Contains(next.AcceptedInputTypes(), previous.OutputType()) {
			return nil, &IncompatibleProcessorsError{
				Previous: previous.Name(),
				Next:     next.Name(),
				Output:   previous.OutputType(),
				Accepted: next.AcceptedInputTypes(),
			}
		}
	}
	return &Chain{processors: processors}, nil
}

// Processors returns the processors in order.
func (c *Chain) Processors() []Processor {
	return c.processors
}

// OutputType returns the content type produced by the last processor.
func (c *Chain) OutputType() ContentType {
	if len(c.processors) == 0 {
		return ""
	}
	return c.processors[len(c.processors)-1].OutputType()
}
