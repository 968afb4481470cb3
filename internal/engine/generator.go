package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"outreach-agent/internal/domain"
)

// DefaultSequenceLength is used when a caller passes a non-positive length.
const DefaultSequenceLength = 3

// Generator is the entry point of the engine. It holds no per-call state and
// is safe for concurrent use when its Strategy is.
type Generator struct {
	strategy Strategy
	logger   *zap.Logger
}

func NewGenerator(strategy Strategy, logger *zap.Logger) (*Generator, error) {
	if strategy == nil {
		return nil, errors.New("engine: strategy must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("generation engine ready", zap.String("mode", string(strategy.Mode())))
	return &Generator{strategy: strategy, logger: logger}, nil
}

// Mode reports which path this Generator was built with.
func (g *Generator) Mode() Mode {
	return g.strategy.Mode()
}

// ComposePrompt exposes the live-path prompt for inspection.
func (g *Generator) ComposePrompt(profile domain.ProspectProfile, tov domain.TovConfig, companyContext string, sequenceLength int) string {
	return ComposePrompt(profile, tov, companyContext, normalizeLength(sequenceLength))
}

// Generate produces a sequence. It always returns a result; failures are
// reported with Success=false.
func (g *Generator) Generate(ctx context.Context, profile domain.ProspectProfile, tov domain.TovConfig, companyContext string, sequenceLength int) domain.GenerationResult {
	req := Request{
		Profile:        profile,
		Tov:            tov,
		CompanyContext: companyContext,
		SequenceLength: normalizeLength(sequenceLength),
	}
	if g.strategy.Mode() == ModeLive {
		if ce := g.logger.Check(zap.DebugLevel, "composed prompt"); ce != nil {
			ce.Write(zap.String("prompt", ComposePrompt(req.Profile, req.Tov, req.CompanyContext, req.SequenceLength)))
		}
	}

	res := g.strategy.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("mode", string(g.strategy.Mode())),
		zap.Bool("success", res.Success),
		zap.Int("sequenceLength", req.SequenceLength),
	}
	if !res.Success {
		g.logger.Warn("generation failed", append(fields, zap.String("error", res.Error))...)
		return res
	}
	if res.Usage != nil {
		fields = append(fields, zap.Int("promptTokens", res.Usage.PromptTokens), zap.Int("completionTokens", res.Usage.CompletionTokens))
	}
	if res.Cost != nil {
		fields = append(fields, zap.Float64("totalCost", res.Cost.TotalCost))
	}
	g.logger.Info("generation completed", fields...)
	return res
}

func normalizeLength(n int) int {
	if n <= 0 {
		return DefaultSequenceLength
	}
	return n
}
