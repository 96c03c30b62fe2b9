// phUML - UML class diagrams for PHP code.
//
// phUML reads PHP classes and interfaces and renders their structure and
// relationships as a Graphviz digraph, a PNG image or a statistics report.
package main

import (
	"fmt"
	"os"

	"github.com/Benny93/phuml-go/cmd"
)

func main() {
	cli := cmd.NewCLI()

	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
