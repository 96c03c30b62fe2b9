// Package mcp provides the MCP (Model Context Protocol) server for phUML.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Benny93/phuml-go/internal/actions"
	"github.com/Benny93/phuml-go/internal/parser"
	"github.com/Benny93/phuml-go/internal/processors"
	"github.com/Benny93/phuml-go/internal/templates"
)

const (
	serverName    = "phuml-go"
	serverVersion = "0.1.0"

	legendURI = "phuml://legend"
)

// Server represents the MCP server.
type Server struct {
	generator Generator
	server    *mcp.Server
}

// Generator produces the outputs exposed as tools.
type Generator interface {
	Dot(ctx context.Context, source actions.Source, withAssociations bool) (string, error)
	Statistics(ctx context.Context, source actions.Source) (processors.Statistics, error)
}

// dotInput are the arguments of phuml_dot.
type dotInput struct {
	Directory    string `json:"directory"`
	Recursive    bool   `json:"recursive"`
	Associations bool   `json:"associations"`
}

// statisticsInput are the arguments of phuml_statistics.
type statisticsInput struct {
	Directory string `json:"directory"`
	Recursive bool   `json:"recursive"`
	Format    string `json:"format"`
}

// NewServer creates a new MCP server with the phUML tools and resources
// registered.
func NewServer(generator Generator) *Server {
	s := &Server{
		generator: generator,
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	s.registerTools()
	s.registerResources()

	return s
}

// NewGenerator returns a Generator running the dot and statistics actions.
// Every call parses the sources again.
func NewGenerator(p *parser.CodeParser, renderer templates.Renderer) Generator {
	return &actionGenerator{parser: p, renderer: renderer}
}

type actionGenerator struct {
	parser   *parser.CodeParser
	renderer templates.Renderer
}

func (g *actionGenerator) Dot(ctx context.Context, source actions.Source, withAssociations bool) (string, error) {
	graphviz := processors.NewGraphvizProcessor(g.renderer, withAssociations)
	return actions.NewGenerateDotFile(g.parser, graphviz, nil).Dot(ctx, source)
}

func (g *actionGenerator) Statistics(ctx context.Context, source actions.Source) (processors.Statistics, error) {
	return actions.NewGenerateStatistics(g.parser, processors.NewStatisticsProcessor(), nil).Statistics(ctx, source)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "phuml_dot",
		Description: "Generate the Graphviz DOT class diagram of the PHP classes and interfaces in a directory.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"directory": {Type: "string", Description: "Directory holding the PHP sources"},
				"recursive": {Type: "boolean", Description: "Also read subdirectories"},
				"associations": {
					Type:        "boolean",
					Description: "Draw associations from typed attributes and constructor parameters",
					Default:     json.RawMessage("true"),
				},
			},
			Required: []string{"directory"},
		},
	}, s.dot)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "phuml_statistics",
		Description: "Count the classes, interfaces, attributes and methods of the PHP sources in a directory.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"directory": {Type: "string", Description: "Directory holding the PHP sources"},
				"recursive": {Type: "boolean", Description: "Also read subdirectories"},
				"format": {
					Type:        "string",
					Enum:        []any{"text", "json"},
					Description: "Report format",
					Default:     json.RawMessage(`"text"`),
				},
			},
			Required: []string{"directory"},
		},
	}, s.statistics)
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         legendURI,
		Name:        "legend",
		Title:       "Diagram Legend",
		Description: "How to read the nodes and edges of a generated diagram",
		MIMEType:    "text/plain",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: req.Params.URI, MIMEType: "text/plain", Text: getLegend()},
			},
		}, nil
	})
}

// Run serves the MCP protocol over newline-delimited JSON on stdin and stdout
// until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	if stdin == nil || stdout == nil {
		return errors.New("stdin and stdout must not be nil")
	}

	return s.server.Run(ctx, &mcp.IOTransport{
		Reader: io.NopCloser(stdin),
		Writer: nopWriteCloser{stdout},
	})
}

// Errors returned by tool handlers are reported to the client as tool
// results with isError set.

func (s *Server) dot(ctx context.Context, _ *mcp.CallToolRequest, in dotInput) (*mcp.CallToolResult, any, error) {
	source, err := sourceOf(in.Directory, in.Recursive)
	if err != nil {
		return nil, nil, err
	}

	dot, err := s.generator.Dot(ctx, source, in.Associations)
	if err != nil {
		return nil, nil, err
	}
	return textResult(dot), nil, nil
}

func (s *Server) statistics(ctx context.Context, _ *mcp.CallToolRequest, in statisticsInput) (*mcp.CallToolResult, any, error) {
	source, err := sourceOf(in.Directory, in.Recursive)
	if err != nil {
		return nil, nil, err
	}

	statistics, err := s.generator.Statistics(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	if in.Format == "json" {
		data, err := json.MarshalIndent(statistics, "", "  ")
		if err != nil {
			return nil, nil, fmt.Errorf("encoding result: %w", err)
		}
		return textResult(string(data)), nil, nil
	}
	return textResult(statistics.String()), nil, nil
}

func sourceOf(directory string, recursive bool) (actions.Source, error) {
	if directory == "" {
		return actions.Source{}, errors.New("directory is required")
	}
	return actions.Source{Directory: directory, Recursive: recursive}, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func getLegend() string {
	return `# phUML Diagram Legend

## Nodes
- Interfaces are numbered from 1, classes from 101, in the order they are first reached.
- An interface name is shown in italics.
- Each node lists constants, attributes and methods; constants and the constructor are in italics.
- Visibility prefixes: + public, # protected, - private.

## Edges
- Inheritance: empty arrowhead at the parent, solid line.
- Implementation: filled arrowhead at the interface, dashed line.
- Association: plain line from the referenced definition to the class holding the reference.
`
}

// nopWriteCloser leaves closing stdout to its owner.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
