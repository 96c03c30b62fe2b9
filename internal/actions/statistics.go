package actions

import (
	"context"
	"fmt"

	"github.com/Benny93/phuml-go/internal/parser"
	"github.com/Benny93/phuml-go/internal/processors"
)

// GenerateStatistics writes a statistics report of a codebase.
type GenerateStatistics struct {
	action
	statistics *processors.StatisticsProcessor
}

// NewGenerateStatistics creates the action. progress may be nil.
func NewGenerateStatistics(p *parser.CodeParser, statistics *processors.StatisticsProcessor, progress ProgressCallback) *GenerateStatistics {
	return &GenerateStatistics{
		action:     action{parser: p, progress: progress},
		statistics: statistics,
	}
}

// Statistics returns the statistics of the source.
func (a *GenerateStatistics) Statistics(ctx context.Context, source Source) (processors.Statistics, error) {
	codebase, err := a.parse(ctx, source)
	if err != nil {
		return processors.Statistics{}, err
	}
	return processors.CollectStatistics(codebase), nil
}

// Generate writes the statistics report of the source to outputFile.
func (a *GenerateStatistics) Generate(ctx context.Context, source Source, outputFile string) error {
	codebase, err := a.parse(ctx, source)
	if err != nil {
		return err
	}

	a.report(PhaseProcessing, 0.0)
	report, err := a.statistics.Process(codebase)
	if err != nil {
		return fmt.Errorf("%s: %w", a.statistics.Name(), err)
	}
	a.report(PhaseProcessing, 1.0)

	return a.save(outputFile, []byte(report))
}
