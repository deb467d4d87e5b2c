package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector returns canned agent outputs without calling the upstream service.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Generate picks a canned response by looking at the system prompt's role line.
func (m *MockConnector) Generate(ctx context.Context, model, prompt, systemPrompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating via LLM", zap.String("model", model))

	var resp string
	switch {
	case strings.Contains(systemPrompt, "website planner"):
		resp = mockPlan
	case strings.Contains(systemPrompt, "copywriter"):
		resp = mockCopy
	default:
		resp = mockCode
	}

	ctxzap.Info(ctx, "[MOCK] generation finished", zap.Int("result_length", len(resp)))
	return resp, nil
}

const mockPlan = `# Website Plan (MOCK)

1. Layout: single page with sticky header, hero, features grid, testimonials and footer.
2. Sections: Hero, Features, Testimonials, CTA banner, Footer.
3. Components: App > Header, Hero, FeatureGrid > FeatureCard, Testimonials, Footer.
4. UX: one primary CTA above the fold, repeated at the bottom.

Recommend: use a warm color palette with generous whitespace
Consider: lazy-loading images below the fold`

const mockCopy = `Headline: Fresh from our oven to your table (MOCK)
Subheadline: Small-batch bread and pastries baked every morning.

Features:
- Baked daily: everything on the shelf was made today.
- Local flour: sourced from mills within 50 miles.

CTA: Order for pickup`

const mockCode = `import React from 'react';

interface HeroProps {
  headline: string;
  subheadline: string;
}

const Hero: React.FC<HeroProps> = ({ headline, subheadline }) => (
  <section>
    <h1>{headline}</h1>
    <p>{subheadline}</p>
  </section>
);

export default function App() {
  return <Hero headline="Fresh from our oven" subheadline="Baked every morning" />;
}`
