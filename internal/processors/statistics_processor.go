package processors

import (
	"fmt"
	"strings"

	"github.com/Benny93/phuml-go/internal/code"
)

// VisibilityCount counts members per visibility.
type VisibilityCount struct {
	Private   int `json:"private"`
	Protected int `json:"protected"`
	Public    int `json:"public"`
}

// Total returns the number of members.
func (v VisibilityCount) Total() int {
	return v.Private + v.Protected + v.Public
}

func (v *VisibilityCount) add(m code.Modifier) {
	switch m {
	case code.Private:
		v.Private++
	case code.Protected:
		v.Protected++
	default:
		v.Public++
	}
}

// Statistics summarizes a codebase.
type Statistics struct {
	Classes            int             `json:"classes"`
	Interfaces         int             `json:"interfaces"`
	Attributes         VisibilityCount `json:"attributes"`
	TypedAttributes    int             `json:"typed_attributes"`
	Methods            VisibilityCount `json:"methods"`
	Parameters         int             `json:"parameters"`
	TypedParameters    int             `json:"typed_parameters"`
	Constants          int             `json:"constants"`
	AttributesPerClass float64         `json:"attributes_per_class"`
	MethodsPerClass    float64         `json:"methods_per_class"`
}

// CollectStatistics counts the definitions and members of a codebase.
// Interface methods are counted as public methods.
func CollectStatistics(codebase *code.Codebase) Statistics {
	var s Statistics

	for _, definition := range codebase.All() {
		s.Constants += len(definition.Constants())
		for _, method := range definition.Methods() {
			s.Methods.add(method.Modifier)
			for _, parameter := range method.Parameters {
				s.Parameters++
				if parameter.Type.IsPresent() {
					s.TypedParameters++
				}
			}
		}

		class, ok := definition.(*code.ClassDefinition)
		if !ok {
			s.Interfaces++
			continue
		}
		s.Classes++
		for _, attribute := range class.Attributes() {
			s.Attributes.add(attribute.Modifier)
			if attribute.Type.IsPresent() {
				s.TypedAttributes++
			}
		}
	}

	if s.Classes > 0 {
		s.AttributesPerClass = float64(s.Attributes.Total()) / float64(s.Classes)
		s.MethodsPerClass = float64(s.Methods.Total()) / float64(s.Classes)
	}
	return s
}

// String renders the statistics as a plain text report.
func (s Statistics) String() string {
	var b strings.Builder
	b.WriteString("phUML generated statistics\n")
	b.WriteString("==========================\n\n")
	b.WriteString("General statistics\n")
	b.WriteString("------------------\n\n")
	fmt.Fprintf(&b, "Classes:    %d\n", s.Classes)
	fmt.Fprintf(&b, "Interfaces: %d\n\n", s.Interfaces)
	fmt.Fprintf(&b, "Constants:  %d\n\n", s.Constants)
	fmt.Fprintf(&b, "Attributes: %d (%d are typed)\n", s.Attributes.Total(), s.TypedAttributes)
	writeVisibility(&b, s.Attributes)
	fmt.Fprintf(&b, "\nFunctions:  %d\n", s.Methods.Total())
	writeVisibility(&b, s.Methods)
	fmt.Fprintf(&b, "\nParameters: %d (%d are typed)\n\n", s.Parameters, s.TypedParameters)
	b.WriteString("Average statistics\n")
	b.WriteString("------------------\n\n")
	fmt.Fprintf(&b, "Attributes per class: %.2f\n", s.AttributesPerClass)
	fmt.Fprintf(&b, "Functions per class:  %.2f\n", s.MethodsPerClass)
	return b.String()
}

func writeVisibility(b *strings.Builder, v VisibilityCount) {
	fmt.Fprintf(b, "    * private:   %d\n", v.Private)
	fmt.Fprintf(b, "    * protected: %d\n", v.Protected)
	fmt.Fprintf(b, "    * public:    %d\n", v.Public)
}

// StatisticsProcessor turns a codebase into a statistics report.
type StatisticsProcessor struct{}

// NewStatisticsProcessor creates a statistics processor.
func NewStatisticsProcessor() *StatisticsProcessor {
	return &StatisticsProcessor{}
}

// Name implements Processor.
func (p *StatisticsProcessor) Name() string { return "statistics" }

// AcceptedInputTypes implements Processor.
func (p *StatisticsProcessor) AcceptedInputTypes() []ContentType { return []ContentType{Code} }

// OutputType implements Processor.
func (p *StatisticsProcessor) OutputType() ContentType { return Text }

// Process returns the statistics report of the codebase.
func (p *StatisticsProcessor) Process(codebase *code.Codebase) (string, error) {
	return CollectStatistics(codebase).String(), nil
}
