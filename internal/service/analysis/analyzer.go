// internal/service/analysis/analyzer.go

package analysis

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"chezvous/internal/domain/report"
)

// AnalyzerConfig contains configuration for the neighborhood analyzer
type AnalyzerConfig struct {
	Model     string
	MaxTokens int64
}

// NeighborhoodAnalyzer implements report.Analyzer on top of the Anthropic
// Messages API.
type NeighborhoodAnalyzer struct {
	client Client
	config AnalyzerConfig
}

// NewNeighborhoodAnalyzer creates a new neighborhood analyzer
func NewNeighborhoodAnalyzer(client Client, config AnalyzerConfig) *NeighborhoodAnalyzer {
	if config.Model == "" {
		config.Model = "claude-haiku-4-5-20251001"
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 4096
	}

	return &NeighborhoodAnalyzer{
		client: client,
		config: config,
	}
}

// AnalyzeNeighborhood asks the model for a structured neighborhood analysis
// and parses the JSON it returns, tolerating markdown code fences.
func (a *NeighborhoodAnalyzer) AnalyzeNeighborhood(ctx context.Context, input report.NeighborhoodInput) (*report.Analysis, error) {
	prompt := buildNeighborhoodPrompt(input)

	resp, err := a.client.CreateMessage(ctx, MessageRequest{
		Model:     a.config.Model,
		MaxTokens: a.config.MaxTokens,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: neighborhood request")
	}

	var analysis report.Analysis
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &analysis); err != nil {
		return nil, eris.Wrap(err, "analysis: parse neighborhood response")
	}

	zap.L().Info("neighborhood analysis completed",
		zap.String("model", resp.Model),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	return &analysis, nil
}

// Compare asks the model to weigh two analyzed addresses against each other.
func (a *NeighborhoodAnalyzer) Compare(ctx context.Context, first, second *report.NeighborhoodReport) (*report.Comparison, error) {
	prompt := buildComparisonPrompt(first, second)

	resp, err := a.client.CreateMessage(ctx, MessageRequest{
		Model:     a.config.Model,
		MaxTokens: a.config.MaxTokens,
		Messages:  []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: comparison request")
	}

	var comparison report.Comparison
	if err := json.Unmarshal([]byte(extractJSON(resp.Text())), &comparison); err != nil {
		return nil, eris.Wrap(err, "analysis: parse comparison response")
	}

	return &comparison, nil
}
